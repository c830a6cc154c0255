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

type UpdateProfileInput struct {
	Name            string
	Phone           string
	Address         string
	Province        string
	City            string
	District        string
	Village         string
	PostalCode      string
	CurrentPassword string
	NewPassword     string
}

type UserService interface {
	Profile(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*model.User, error)
	SetProfileImage(ctx context.Context, id, imagePath string) (*model.User, error)
	ListCustomers(ctx context.Context) ([]repository.CustomerRow, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Profile(ctx context.Context, id string) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*model.User, error) {
	u, err := s.Profile(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.NewPassword != "" {
		// Accounts created through Google login have no password yet and may
		// set one without a current password.
		if u.Password != nil {
			if in.CurrentPassword == "" {
				return nil, errors.New("current password is required")
			}
			if err := bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(in.CurrentPassword)); err != nil {
				return nil, ErrInvalidCredentials
			}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		u.Password = &hashed
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	u.Phone = in.Phone
	u.Address = in.Address
	u.Province = in.Province
	u.City = in.City
	u.District = in.District
	u.Village = in.Village
	u.PostalCode = in.PostalCode

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) SetProfileImage(ctx context.Context, id, imagePath string) (*model.User, error) {
	u, err := s.Profile(ctx, id)
	if err != nil {
		return nil, err
	}
	u.ProfileImage = &imagePath
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) ListCustomers(ctx context.Context) ([]repository.CustomerRow, error) {
	return s.users.ListCustomers(ctx)
}
