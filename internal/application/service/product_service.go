package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	"github.com/sellwise/pos-api/internal/domain/repository"
	"github.com/sellwise/pos-api/pkg/apperror"
	"github.com/sellwise/pos-api/pkg/pagination"
)

// ProductService manages the product catalog
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Create registers a new product. Names are unique across the catalog.
func (s *ProductService) Create(ctx context.Context, name string, price int64) (*entity.Product, error) {
	if name == "" {
		return nil, apperror.NewValidationError("product name is required")
	}
	if price < 0 {
		return nil, apperror.NewValidationError("product price cannot be negative")
	}

	existing, err := s.products.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewAlreadyExistsError("product with name '%s' already exists", name)
	}

	product := &entity.Product{
		Name:  name,
		Price: price,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get returns a product by id.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product", id)
	}
	return product, nil
}

// List returns a page of the catalog.
func (s *ProductService) List(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Product], error) {
	params.Validate()

	products, total, err := s.products.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(products, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
