package service

import (
	"errors"
	"log"

	"inkwell/internal/form"
	"inkwell/internal/model"
	"inkwell/internal/pkg"
	"inkwell/internal/repository/mysql"
	rdb "inkwell/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	users    *mysql.UserRepository
	sessions *rdb.SessionRepository
	smtp     pkg.SMTPConfig
}

func NewUserService(db *gorm.DB, smtp pkg.SMTPConfig) *UserService {
	return &UserService{
		users:    &mysql.UserRepository{DB: db},
		sessions: &rdb.SessionRepository{},
		smtp:     smtp,
	}
}

// Signup creates the account from a validated form. The unique indexes
// on username and email back the pre-checks under concurrent signups.
func (s *UserService) Signup(f *form.SignupForm) (*model.User, error) {
	if _, err := s.users.FindByUsername(f.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(f.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username: f.Username,
		Password: string(hash),
		Email:    f.Email,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	if s.smtp.Enabled() {
		// Fire and forget; a failed welcome mail never fails the signup.
		go func(to, name string) {
			if err := pkg.SendEmail(s.smtp, to, "Welcome to Inkwell", pkg.WelcomeEmailHTML(name)); err != nil {
				log.Printf("welcome mail to %s failed: %v", to, err)
			}
		}(user.Email, user.Username)
	}
	return user, nil
}

// Login verifies credentials, mints the session token and stores it in
// redis as the single active session for the user.
func (s *UserService) Login(username, password string) (string, *model.User, error) {
	user, err := s.users.FindByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := pkg.GenerateSession(user.ID, user.Username)
	if err != nil {
		return "", nil, err
	}
	if err := s.sessions.Add(user.ID, token); err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) Logout(userID uint64) error {
	return s.sessions.Delete(userID)
}

func (s *UserService) GetByUsername(username string) (*model.User, error) {
	user, err := s.users.FindByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
