package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
)

// CashierRepository defines the interface for cashier account operations
type CashierRepository interface {
	Create(ctx context.Context, cashier *entity.Cashier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Cashier, error)
	GetByEmail(ctx context.Context, email string) (*entity.Cashier, error)
}
