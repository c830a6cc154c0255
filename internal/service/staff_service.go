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

type StaffService interface {
	Register(ctx context.Context, email, password, name, phone string, role model.Role) (*model.User, error)
	List(ctx context.Context, role *model.Role) ([]model.User, error)
	Delete(ctx context.Context, id string) error
}

type staffService struct {
	users repository.UserRepository
}

func NewStaffService(users repository.UserRepository) StaffService {
	return &staffService{users: users}
}

func (s *staffService) Register(ctx context.Context, email, password, name, phone string, role model.Role) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, errors.New("email, password and name are required")
	}
	if !role.IsStaff() {
		return nil, errors.New("role must be CASHIER or DRIVER")
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
		Role:     role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *staffService) List(ctx context.Context, role *model.Role) ([]model.User, error) {
	if role != nil {
		if !role.IsStaff() {
			return nil, errors.New("role filter must be CASHIER or DRIVER")
		}
		return s.users.ListByRoles(ctx, *role)
	}
	return s.users.ListByRoles(ctx, model.RoleCashier, model.RoleDriver)
}

func (s *staffService) Delete(ctx context.Context, id string) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !u.Role.IsStaff() {
		return errors.New("only cashier or driver accounts can be removed")
	}
	return s.users.Delete(ctx, id)
}
