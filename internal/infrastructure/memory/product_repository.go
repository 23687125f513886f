package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	domainRepo "github.com/sellwise/pos-api/internal/domain/repository"
	"github.com/sellwise/pos-api/pkg/pagination"
)

type productRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]entity.Product
}

// NewProductRepository creates an in-memory product repository
func NewProductRepository() domainRepo.ProductRepository {
	return &productRepository{products: make(map[uuid.UUID]entity.Product)}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = *product
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (r *productRepository) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, product := range r.products {
		if product.Name == name {
			p := product
			return &p, nil
		}
	}
	return nil, nil
}

func (r *productRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]entity.Product, 0, len(r.products))
	for _, product := range r.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})

	params.Validate()
	total := int64(len(products))

	start := params.Offset()
	if start > len(products) {
		start = len(products)
	}
	end := start + params.PerPage
	if end > len(products) {
		end = len(products)
	}

	return products[start:end], total, nil
}
