package catalog

import (
	"context"

	"github.com/garmsource/backend/internal/domain/catalog"
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/garmsource/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ProductService handles product business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
	}
}

// SetEventPublisher sets the event publisher for the audit trail
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	taken, err := s.productRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("DUPLICATE_PRODUCT_CODE", "Product code is already taken")
	}

	product, err := catalog.NewProduct(req.Code, req.Name, valueobject.NewMoney(req.UnitPrice), req.TaxPercentage, req.Stock)
	if err != nil {
		return nil, err
	}
	product.Category = req.Category
	product.Description = req.Description
	if err := product.SetReorderLevel(req.ReorderLevel); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByCode retrieves a product by its unique code
func (s *ProductService) GetByCode(ctx context.Context, code string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products matching the filter
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Category != nil {
		domainFilter.Filters["category"] = *filter.Category
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// ListLowStock retrieves active products at or below their reorder level
func (s *ProductService) ListLowStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	low := make([]catalog.Product, 0)
	for _, product := range products {
		if product.IsLowStock() {
			low = append(low, product)
		}
	}
	return ToProductResponses(low), nil
}

// Update updates a product's details and pricing
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	category := product.Category
	if req.Category != nil {
		category = *req.Category
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(name, category, description); err != nil {
		return nil, err
	}

	if req.UnitPrice != nil || req.TaxPercentage != nil {
		unitPrice := product.GetUnitPriceMoney()
		if req.UnitPrice != nil {
			unitPrice = valueobject.NewMoney(*req.UnitPrice)
		}
		taxPercentage := product.TaxPercentage
		if req.TaxPercentage != nil {
			taxPercentage = *req.TaxPercentage
		}
		if err := product.SetPricing(unitPrice, taxPercentage); err != nil {
			return nil, err
		}
	}

	if req.ReorderLevel != nil {
		if err := product.SetReorderLevel(*req.ReorderLevel); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// AdjustStock changes the stock level by a delta, never below zero
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.AdjustStock(req.Delta); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Activate marks a product as orderable
func (s *ProductService) Activate(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	return s.setActive(ctx, id, true)
}

// Deactivate marks a product as no longer orderable. Existing order
// lines keep their captured price and name.
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	return s.setActive(ctx, id, false)
}

func (s *ProductService) setActive(ctx context.Context, id uuid.UUID, active bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		product.Activate()
	} else {
		product.Deactivate()
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	product.AddDomainEvent(catalog.NewProductDeletedEvent(product))
	s.publishEvents(ctx, product)

	return nil
}

// publishEvents forwards the product's pending events to the audit
// trail and any other subscribers. Event delivery is best-effort.
func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range product.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	product.ClearDomainEvents()
}
