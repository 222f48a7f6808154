package main

import (
	"context"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/model"
	"inkwell/internal/pkg"
	"inkwell/internal/repository/mysql"
	"inkwell/internal/repository/redis"
	"inkwell/internal/router"
	"inkwell/internal/service"
)

func main() {
	cfg := config.Load()
	pkg.SetSessionSecret(cfg.SessionSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		log.Fatalf("mysql: %v", err)
	}

	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redis.Close()

	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
		&model.SocialOutbox{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Follow events drain to Kafka when brokers are configured,
	// otherwise to the log.
	sender := service.LogSender
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		defer producer.Close()
		sender = func(ctx context.Context, ob *model.SocialOutbox) error {
			return producer.Send(ctx, pkg.MakeKeyFromID(ob.UserID), []byte(ob.Payload))
		}
	}
	go service.NewOutboxRelayer(mysql.DB, sender).Run(ctx)

	r := router.InitRouter(mysql.DB, cfg)
	if err := r.Run(cfg.ServerPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
