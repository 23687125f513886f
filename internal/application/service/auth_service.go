package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	"github.com/sellwise/pos-api/internal/domain/repository"
	"github.com/sellwise/pos-api/pkg/apperror"
	"github.com/sellwise/pos-api/pkg/utils"
)

// AuthService handles cashier authentication
type AuthService struct {
	cashiers   repository.CashierRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(cashiers repository.CashierRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{cashiers: cashiers, jwtManager: jwtManager}
}

// RegisterInput represents the registration input
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new cashier account
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*entity.Cashier, error) {
	if input.Name == "" || input.Email == "" {
		return nil, apperror.NewValidationError("name and email are required")
	}
	if len(input.Password) < 8 {
		return nil, apperror.NewValidationError("password must be at least 8 characters")
	}

	existing, err := s.cashiers.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewAlreadyExistsError("cashier with email '%s' already exists", input.Email)
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	cashier := &entity.Cashier{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
	}
	if err := s.cashiers.Create(ctx, cashier); err != nil {
		return nil, err
	}
	return cashier, nil
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Cashier     *entity.Cashier
	AccessToken string
}

// Login authenticates a cashier and returns an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	cashier, err := s.cashiers.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if cashier == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, cashier.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(cashier.ID, cashier.Email)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Cashier:     cashier,
		AccessToken: token,
	}, nil
}

// GetCurrentCashier returns the authenticated cashier by id
func (s *AuthService) GetCurrentCashier(ctx context.Context, cashierID uuid.UUID) (*entity.Cashier, error) {
	cashier, err := s.cashiers.GetByID(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if cashier == nil {
		return nil, apperror.NewNotFoundError("Cashier", cashierID)
	}
	return cashier, nil
}
