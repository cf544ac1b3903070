package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dt-hbtn/chordgen-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

var compareHash = bcrypt.CompareHashAndPassword

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// rejectUnknown spends one bcrypt comparison so a missing user costs as
// much as a wrong password
func rejectUnknown(password string) error {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("chordgen-unknown-user"), bcrypt.DefaultCost)
	})
	_ = compareHash(dummyHash, []byte(password))
	return ErrInvalidCredentials
}

// CredentialStore verifies a username/password pair
type CredentialStore interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// StaticCredentials checks passwords against bcrypt hashes loaded from config
type StaticCredentials struct {
	users map[string]string
}

func NewStaticCredentials(users map[string]string) *StaticCredentials {
	copied := make(map[string]string, len(users))
	for name, hash := range users {
		copied[name] = hash
	}
	return &StaticCredentials{users: copied}
}

func (s *StaticCredentials) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	hash, ok := s.users[username]
	if !ok {
		return nil, rejectUnknown(password)
	}
	if err := compareHash([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &models.User{Username: username, Password: hash, IsActive: true}, nil
}

// DBCredentials looks users up in the users table
type DBCredentials struct {
	db *gorm.DB
}

func NewDBCredentials(db *gorm.DB) *DBCredentials {
	return &DBCredentials{db: db}
}

func (s *DBCredentials) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, rejectUnknown(password)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.CheckPassword(password) || !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
