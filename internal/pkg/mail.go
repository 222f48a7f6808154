package pkg

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether a mail host is configured; without one the
// caller skips sending entirely.
func (c SMTPConfig) Enabled() bool { return c.Host != "" }

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

func WelcomeEmailHTML(username string) string {
	return fmt.Sprintf(`<p>Hi <b>%s</b>,</p><p>Your account is ready. Publish your first post and follow authors you like to build your feed.</p>`, username)
}
