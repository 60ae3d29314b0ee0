package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ProductLifecycleService orchestrates product create/update/status-change
// operations. It owns no state; products are loaded, mutated in place and
// handed back to the repository within a single call.
type ProductLifecycleService struct {
	productRepo catalog.ProductRepository
	limits      catalog.Limits
}

// NewProductLifecycleService creates a new ProductLifecycleService
func NewProductLifecycleService(productRepo catalog.ProductRepository) *ProductLifecycleService {
	return &ProductLifecycleService{
		productRepo: productRepo,
		limits:      catalog.DefaultLimits(),
	}
}

// NewProductLifecycleServiceWithLimits creates a service with custom
// validation bounds
func NewProductLifecycleServiceWithLimits(productRepo catalog.ProductRepository, limits catalog.Limits) *ProductLifecycleService {
	return &ProductLifecycleService{
		productRepo: productRepo,
		limits:      limits,
	}
}

// Create creates a new product in Draft status
func (s *ProductLifecycleService) Create(ctx context.Context, storeID, actorID uuid.UUID, req CreateProductRequest) (*ProductResponse, []string, error) {
	var violations []string
	violations = append(violations, catalog.ValidateTitle(req.Title, s.limits)...)
	violations = append(violations, catalog.ValidatePrice(req.Price)...)
	violations = append(violations, catalog.ValidateStock(req.Stock)...)
	violations = append(violations, catalog.ValidateDescription(req.Description, s.limits)...)
	violations = append(violations, catalog.ValidateCategoryOptional(req.Category, s.limits)...)
	violations = append(violations, catalog.ValidateDimensions(req.Weight, req.Length, req.Width, req.Height, s.limits)...)
	violations = append(violations, catalog.ValidateSerialized("Shipping methods", req.ShippingMethods, s.limits)...)
	violations = append(violations, catalog.ValidateSerialized("Images", req.Images, s.limits)...)
	if len(violations) > 0 {
		return nil, violations, nil
	}

	product, err := catalog.NewProduct(storeID, actorID, req.Title, req.Price, req.Stock)
	if err != nil {
		return nil, nil, err
	}

	if req.Description != "" || req.Category != "" {
		if err := product.Update(req.Title, req.Description, req.Category, actorID); err != nil {
			return nil, nil, err
		}
	}
	if req.Weight != nil || req.Length != nil || req.Width != nil || req.Height != nil {
		if err := product.SetDimensions(req.Weight, req.Length, req.Width, req.Height, actorID); err != nil {
			return nil, nil, err
		}
	}
	if req.ShippingMethods != "" {
		if err := product.SetShippingMethods(req.ShippingMethods, actorID); err != nil {
			return nil, nil, err
		}
	}
	if req.Images != "" {
		if err := product.SetImages(req.Images, actorID); err != nil {
			return nil, nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, nil, err
	}

	response := ToProductResponse(product)
	return &response, nil, nil
}

// GetByID retrieves a product by ID within a store
func (s *ProductLifecycleService) GetByID(ctx context.Context, storeID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForStore(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves a page of products for a store
func (s *ProductLifecycleService) List(ctx context.Context, storeID uuid.UUID, filter ProductListFilter) ([]ProductListResponse, int64, error) {
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
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}

	var (
		products []catalog.Product
		err      error
	)
	if filter.Status != "" {
		status, perr := catalog.ParseStatus(filter.Status)
		if perr != nil {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", perr.Error())
		}
		products, err = s.productRepo.FindByStatus(ctx, storeID, status, domainFilter)
		// The count below sees the same predicate set; status enters it
		// through the filter map instead of the dedicated lookup.
		domainFilter.Filters["status"] = filter.Status
	} else {
		products, err = s.productRepo.FindAllForStore(ctx, storeID, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.CountForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductListResponses(products), total, nil
}

// CountByStatus returns per-status product counts for a store, plus a
// "total" entry summing them
func (s *ProductLifecycleService) CountByStatus(ctx context.Context, storeID uuid.UUID) (map[string]int64, error) {
	counts := make(map[string]int64)
	var total int64

	for _, status := range catalog.AllStatuses() {
		count, err := s.productRepo.CountByStatus(ctx, storeID, status)
		if err != nil {
			return nil, err
		}
		counts[string(status)] = count
		total += count
	}

	counts["total"] = total
	return counts, nil
}

// Delete permanently removes a product. Active products must leave the
// storefront first; every other status may be deleted.
func (s *ProductLifecycleService) Delete(ctx context.Context, storeID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByIDForStore(ctx, storeID, productID)
	if err != nil {
		return err
	}

	if product.IsActive() {
		return shared.NewDomainError("INVALID_STATUS", "Active products cannot be deleted; deactivate or archive first")
	}

	return s.productRepo.DeleteForStore(ctx, storeID, productID)
}

// Update updates a product's catalog fields. Field violations are returned
// as a list; when the product is Active the activation gate is re-checked
// against the prospective values so that an Active record can never be
// written into a state that would not pass activation.
func (s *ProductLifecycleService) Update(ctx context.Context, storeID, actorID, productID uuid.UUID, req UpdateProductRequest, adminOverride bool) (*ProductResponse, []string, error) {
	product, err := s.loadOwned(ctx, storeID, productID, adminOverride)
	if err != nil {
		return nil, nil, err
	}

	if product.IsArchived() {
		return nil, nil, shared.NewDomainError("ARCHIVED", "Cannot modify an archived product")
	}

	// Resolve the prospective field values and validate them all before
	// touching the aggregate, so that every applicable violation is reported.
	title := product.Title
	if req.Title != nil {
		title = *req.Title
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	category := product.Category
	if req.Category != nil {
		category = *req.Category
	}
	price := product.Price
	if req.Price != nil {
		price = *req.Price
	}
	stock := product.Stock
	if req.Stock != nil {
		stock = *req.Stock
	}
	weight, length, width, height := product.Weight, product.Length, product.Width, product.Height
	if req.Weight != nil {
		weight = req.Weight
	}
	if req.Length != nil {
		length = req.Length
	}
	if req.Width != nil {
		width = req.Width
	}
	if req.Height != nil {
		height = req.Height
	}
	shippingMethods := product.ShippingMethods
	if req.ShippingMethods != nil {
		shippingMethods = *req.ShippingMethods
	}
	images := product.Images
	if req.Images != nil {
		images = *req.Images
	}

	var violations []string
	violations = append(violations, catalog.ValidateTitle(title, s.limits)...)
	violations = append(violations, catalog.ValidatePrice(price)...)
	violations = append(violations, catalog.ValidateStock(stock)...)
	violations = append(violations, catalog.ValidateDescription(description, s.limits)...)
	violations = append(violations, catalog.ValidateCategoryOptional(category, s.limits)...)
	violations = append(violations, catalog.ValidateDimensions(weight, length, width, height, s.limits)...)
	violations = append(violations, catalog.ValidateSerialized("Shipping methods", shippingMethods, s.limits)...)
	violations = append(violations, catalog.ValidateSerialized("Images", images, s.limits)...)
	if len(violations) > 0 {
		return nil, violations, nil
	}

	if product.IsActive() {
		prospective := *product
		prospective.Title = title
		prospective.Description = description
		prospective.Category = category
		prospective.Price = price
		prospective.Stock = stock
		prospective.Images = images
		if gate := catalog.ActivationViolations(&prospective); len(gate) > 0 {
			return nil, gate, nil
		}
	}

	if err := product.Update(title, description, category, actorID); err != nil {
		return nil, nil, err
	}
	if req.Price != nil {
		if err := product.SetPrice(price, actorID); err != nil {
			return nil, nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(stock, actorID); err != nil {
			return nil, nil, err
		}
	}
	if req.Weight != nil || req.Length != nil || req.Width != nil || req.Height != nil {
		if err := product.SetDimensions(weight, length, width, height, actorID); err != nil {
			return nil, nil, err
		}
	}
	if req.ShippingMethods != nil {
		if err := product.SetShippingMethods(shippingMethods, actorID); err != nil {
			return nil, nil, err
		}
	}
	if req.Images != nil {
		if err := product.SetImages(images, actorID); err != nil {
			return nil, nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, nil, err
	}

	response := ToProductResponse(product)
	return &response, nil, nil
}

// ChangeStatus moves a product to a new lifecycle status. Transition
// violations are returned as a list; the product is only persisted when the
// transition is accepted.
func (s *ProductLifecycleService) ChangeStatus(ctx context.Context, storeID, actorID, productID uuid.UUID, requested catalog.ProductStatus, adminOverride bool) (*ProductResponse, []string, error) {
	if !requested.IsValid() {
		return nil, nil, shared.NewDomainError("INVALID_STATUS", "Unknown product status")
	}

	product, err := s.loadOwned(ctx, storeID, productID, adminOverride)
	if err != nil {
		return nil, nil, err
	}

	unchanged := requested == product.Status

	if violations := product.ChangeStatus(requested, actorID, adminOverride); len(violations) > 0 {
		return nil, violations, nil
	}

	// Accepted no-op: nothing to persist.
	if unchanged {
		response := ToProductResponse(product)
		return &response, nil, nil
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, nil, err
	}

	response := ToProductResponse(product)
	return &response, nil, nil
}

// Archive moves a product to the terminal Archived status
func (s *ProductLifecycleService) Archive(ctx context.Context, storeID, actorID, productID uuid.UUID, adminOverride bool) (*ProductResponse, []string, error) {
	return s.ChangeStatus(ctx, storeID, actorID, productID, catalog.StatusArchived, adminOverride)
}

// loadOwned loads a product and enforces store ownership. Admin callers may
// operate across stores.
func (s *ProductLifecycleService) loadOwned(ctx context.Context, storeID, productID uuid.UUID, adminOverride bool) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.BelongsTo(storeID) && !adminOverride {
		return nil, shared.ErrUnauthorized
	}
	return product, nil
}
