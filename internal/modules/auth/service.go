package auth

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/visapath/core/internal/models"
	"github.com/visapath/core/internal/pkg/clock"
	"github.com/visapath/core/internal/pkg/jwt"
)

var (
	ErrBadCredentials   = errors.New("invalid username or password")
	ErrOwnerRegistered  = errors.New("admin account already registered")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

const tokenTTL = 7 * 24 * time.Hour

type Service struct {
	db  *gorm.DB
	clk clock.Clock
}

func NewService(db *gorm.DB, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	return &Service{db: db, clk: clk}
}

// Login checks the password and issues a signed token. Failures are slowed
// down to blunt brute-force attempts.
func (s *Service) Login(username, password, ip string) (string, *models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(3 * time.Second)
			return "", nil, ErrBadCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		time.Sleep(3 * time.Second)
		return "", nil, ErrBadCredentials
	}

	token, err := jwt.Sign(u.ID, tokenTTL)
	if err != nil {
		return "", nil, err
	}

	now := s.clk.Now()
	s.db.Model(&u).Updates(map[string]any{
		"last_login_time": now,
		"last_login_ip":   ip,
	})
	u.LastLoginTime = &now
	u.LastLoginIP = ip
	return token, &u, nil
}

// Register creates the single admin account. Only the first registration
// succeeds, later ones are rejected.
func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	if len(dto.Password) < 8 {
		return nil, ErrPasswordTooShort
	}
	var count int64
	if err := s.db.Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrOwnerRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := dto.Name
	if name == "" {
		name = dto.Username
	}
	u := models.UserModel{Username: dto.Username, Password: string(hash), Name: name, Mail: dto.Mail}
	return &u, s.db.Create(&u).Error
}

// GetUser loads the account behind an authenticated request.
func (s *Service) GetUser(id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
