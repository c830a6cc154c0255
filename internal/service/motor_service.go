package service

import (
	"context"
	"errors"
	"strings"

	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"github.com/wahyusaputra/motorshop-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

type MotorInput struct {
	Name        string
	Brand       string
	Model       string
	Year        int
	Price       int64
	Stock       int
	Image       *string
	Description *string
}

type MotorService interface {
	Create(ctx context.Context, in MotorInput) (*model.Motor, error)
	Get(ctx context.Context, id string) (*model.Motor, error)
	Update(ctx context.Context, id string, in MotorInput) (*model.Motor, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter repository.MotorFilter) ([]model.Motor, error)
	Brands(ctx context.Context) ([]string, error)
}

type motorService struct {
	repo repository.MotorRepository
}

func NewMotorService(repo repository.MotorRepository) MotorService {
	return &motorService{repo: repo}
}

func (s *motorService) Create(ctx context.Context, in MotorInput) (*model.Motor, error) {
	if err := validateMotorInput(in); err != nil {
		return nil, err
	}
	m := &model.Motor{
		Name:        strings.TrimSpace(in.Name),
		Brand:       strings.TrimSpace(in.Brand),
		Model:       strings.TrimSpace(in.Model),
		Year:        in.Year,
		Price:       in.Price,
		Stock:       in.Stock,
		Image:       in.Image,
		Description: in.Description,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *motorService) Get(ctx context.Context, id string) (*model.Motor, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *motorService) Update(ctx context.Context, id string, in MotorInput) (*model.Motor, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateMotorInput(in); err != nil {
		return nil, err
	}
	m.Name = strings.TrimSpace(in.Name)
	m.Brand = strings.TrimSpace(in.Brand)
	m.Model = strings.TrimSpace(in.Model)
	m.Year = in.Year
	m.Price = in.Price
	m.Stock = in.Stock
	if in.Image != nil {
		m.Image = in.Image
	}
	if in.Description != nil {
		m.Description = in.Description
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *motorService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *motorService) List(ctx context.Context, filter repository.MotorFilter) ([]model.Motor, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

func (s *motorService) Brands(ctx context.Context) ([]string, error) {
	return s.repo.Brands(ctx)
}

func validateMotorInput(in MotorInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Brand) == "" || strings.TrimSpace(in.Model) == "" {
		return errors.New("name, brand and model are required")
	}
	if in.Year <= 0 {
		return errors.New("year is required")
	}
	if in.Price <= 0 {
		return errors.New("price must be positive")
	}
	if in.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	return nil
}
