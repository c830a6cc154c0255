package service

import (
	"context"
	"errors"
	"strings"

	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"github.com/wahyusaputra/motorshop-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrGoogleAccount signals a password login against a Google-only account.
	ErrGoogleAccount = errors.New("account uses Google login")
)

type AuthService interface {
	Register(ctx context.Context, email, password, name, phone, address string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	GoogleLogin(ctx context.Context, googleID, email, name string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdateBasicProfile(ctx context.Context, id, name, phone, address string) (*model.User, error)
}

type authService struct {
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Register(ctx context.Context, email, password, name, phone, address string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, errors.New("email, password and name are required")
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashed := string(hash)
	u := &model.User{
		Email:    email,
		Password: &hashed,
		Name:     name,
		Phone:    phone,
		Address:  address,
		Role:     model.RoleCustomer,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.Password == nil {
		return nil, ErrGoogleAccount
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GoogleLogin resolves the user behind a verified Google identity: by Google
// id first, then by email (linking the Google id to an existing account),
// creating a fresh customer account otherwise.
func (s *authService) GoogleLogin(ctx context.Context, googleID, email, name string) (*model.User, error) {
	if googleID == "" || email == "" {
		return nil, errors.New("google id and email are required")
	}
	email = strings.ToLower(email)

	u, err := s.users.FindByGoogleID(ctx, googleID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	u, err = s.users.FindByEmail(ctx, email)
	if err == nil {
		u.GoogleID = &googleID
		if err := s.users.Update(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	u = &model.User{
		Email:    email,
		GoogleID: &googleID,
		Name:     name,
		Role:     model.RoleCustomer,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *authService) UpdateBasicProfile(ctx context.Context, id, name, phone, address string) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		u.Name = name
	}
	u.Phone = phone
	u.Address = address
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
