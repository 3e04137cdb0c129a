package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petstore-pos/internal/catalog"
	"petstore-pos/internal/catalog/dto"
	"petstore-pos/internal/model"
	"petstore-pos/internal/store"
)

type catalogUseCase struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewCatalogUseCase(products catalog.ProductRepository, categories catalog.CategoryRepository, log *zap.Logger) catalog.UseCase {
	return &catalogUseCase{
		products:   products,
		categories: categories,
		logger:     log,
		now:        time.Now,
	}
}

func (uc *catalogUseCase) AddProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := validateProductInput(input.Barcode, input.Name, input.Price, input.Cost, input.Stock); err != nil {
		return nil, err
	}

	existing, err := uc.products.FindByBarcode(ctx, input.Barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", catalog.ErrDuplicateBarcode, input.Barcode)
	}

	p := &model.Product{
		ID:        uuid.New().String(),
		Barcode:   input.Barcode,
		Name:      input.Name,
		Category:  categoryRef(input.Category),
		Price:     input.Price,
		Cost:      input.Cost,
		Stock:     input.Stock,
		Unit:      input.Unit,
		CreatedAt: uc.now(),
	}

	if err := uc.products.Save(ctx, p); err != nil {
		// The unique barcode index is the authoritative check; the
		// pre-fetch above only improves the message.
		if errors.Is(err, store.ErrConstraintViolation) {
			return nil, fmt.Errorf("%w: %s", catalog.ErrDuplicateBarcode, input.Barcode)
		}
		return nil, err
	}

	uc.logger.Info("product added",
		zap.String("id", p.ID),
		zap.String("barcode", p.Barcode),
		zap.String("name", p.Name))
	return p, nil
}

func (uc *catalogUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if input.ID == "" {
		return nil, fmt.Errorf("%w: product id is required", catalog.ErrInvalidInput)
	}
	if err := validateProductInput(input.Barcode, input.Name, input.Price, input.Cost, input.Stock); err != nil {
		return nil, err
	}

	// Save is an upsert; callers that need the product to exist must
	// fetch it first. Preserve createdAt when it does exist.
	createdAt := uc.now()
	if existing, err := uc.products.FindByID(ctx, input.ID); err != nil {
		return nil, err
	} else if existing != nil {
		createdAt = existing.CreatedAt
	}

	updatedAt := uc.now()
	p := &model.Product{
		ID:        input.ID,
		Barcode:   input.Barcode,
		Name:      input.Name,
		Category:  categoryRef(input.Category),
		Price:     input.Price,
		Cost:      input.Cost,
		Stock:     input.Stock,
		Unit:      input.Unit,
		CreatedAt: createdAt,
		UpdatedAt: &updatedAt,
	}

	if err := uc.products.Save(ctx, p); err != nil {
		if errors.Is(err, store.ErrConstraintViolation) {
			return nil, fmt.Errorf("%w: %s", catalog.ErrDuplicateBarcode, input.Barcode)
		}
		return nil, err
	}

	uc.logger.Info("product updated", zap.String("id", p.ID))
	return p, nil
}

func (uc *catalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	// No cascade: historical orders keep their denormalized item copies.
	return uc.products.Delete(ctx, id)
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return uc.products.FindByID(ctx, id)
}

func (uc *catalogUseCase) GetProductByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	return uc.products.FindByBarcode(ctx, barcode)
}

func (uc *catalogUseCase) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	return uc.products.FindAll(ctx)
}

// SearchProducts matches the query case-insensitively against name and
// category, and case-sensitively against barcode. All matches, no ranking.
func (uc *catalogUseCase) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	products, err := uc.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(query)
	matches := make([]model.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(p.Barcode, query) ||
			strings.Contains(strings.ToLower(p.CategoryName()), lower) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (uc *catalogUseCase) LowStockProducts(ctx context.Context, threshold int) ([]model.Product, error) {
	products, err := uc.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]model.Product, 0)
	for _, p := range products {
		if p.Stock <= threshold {
			low = append(low, p)
		}
	}
	return low, nil
}

func (uc *catalogUseCase) ImportProducts(ctx context.Context, rows []dto.ImportRow) (*dto.ImportReport, error) {
	report := &dto.ImportReport{Outcomes: make([]dto.RowOutcome, 0, len(rows))}

	for i, row := range rows {
		outcome := dto.RowOutcome{Row: i + 1, Barcode: row.Barcode}

		if row.Barcode == "" || row.Name == "" {
			outcome.Status = dto.RowSkipped
			outcome.Reason = "missing barcode or name"
			report.Skipped++
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}

		if row.Category != "" {
			if err := uc.ensureCategory(ctx, row.Category); err != nil {
				uc.logger.Warn("import: category not created",
					zap.String("category", row.Category), zap.Error(err))
			}
		}

		status, err := uc.upsertByBarcode(ctx, row)
		if err != nil {
			outcome.Status = dto.RowSkipped
			outcome.Reason = err.Error()
			report.Skipped++
		} else {
			outcome.Status = status
			if status == dto.RowCreated {
				report.Created++
			} else {
				report.Updated++
			}
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	uc.logger.Info("product import finished",
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("skipped", report.Skipped))
	return report, nil
}

func (uc *catalogUseCase) upsertByBarcode(ctx context.Context, row dto.ImportRow) (dto.RowStatus, error) {
	existing, err := uc.products.FindByBarcode(ctx, row.Barcode)
	if err != nil {
		return "", err
	}

	if existing != nil {
		updatedAt := uc.now()
		existing.Name = row.Name
		existing.Category = categoryRef(row.Category)
		existing.Price = row.Price
		existing.Cost = row.Cost
		existing.Stock = row.Stock
		existing.Unit = row.Unit
		existing.UpdatedAt = &updatedAt
		if err := uc.products.Save(ctx, existing); err != nil {
			return "", err
		}
		return dto.RowUpdated, nil
	}

	p := &model.Product{
		ID:        uuid.New().String(),
		Barcode:   row.Barcode,
		Name:      row.Name,
		Category:  categoryRef(row.Category),
		Price:     row.Price,
		Cost:      row.Cost,
		Stock:     row.Stock,
		Unit:      row.Unit,
		CreatedAt: uc.now(),
	}
	if err := uc.products.Save(ctx, p); err != nil {
		return "", err
	}
	return dto.RowCreated, nil
}

func (uc *catalogUseCase) ensureCategory(ctx context.Context, name string) error {
	existing, err := uc.categories.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return uc.categories.Save(ctx, &model.Category{ID: uuid.New().String(), Name: name})
}

func (uc *catalogUseCase) AddCategory(ctx context.Context, name string) (*model.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", catalog.ErrInvalidInput)
	}

	existing, err := uc.categories.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", catalog.ErrDuplicateCategory, name)
	}

	c := &model.Category{ID: uuid.New().String(), Name: name}
	if err := uc.categories.Save(ctx, c); err != nil {
		return nil, err
	}

	uc.logger.Info("category added", zap.String("id", c.ID), zap.String("name", c.Name))
	return c, nil
}

func (uc *catalogUseCase) GetAllCategories(ctx context.Context) ([]model.Category, error) {
	return uc.categories.FindAll(ctx)
}

func (uc *catalogUseCase) DeleteCategory(ctx context.Context, id string) error {
	// Products referencing the category keep its name as a dangling soft
	// reference, resolved at render time only.
	return uc.categories.Delete(ctx, id)
}

func validateProductInput(barcode, name string, price, cost float64, stock int) error {
	switch {
	case barcode == "":
		return fmt.Errorf("%w: barcode is required", catalog.ErrInvalidInput)
	case name == "":
		return fmt.Errorf("%w: name is required", catalog.ErrInvalidInput)
	case price < 0:
		return fmt.Errorf("%w: price must be non-negative", catalog.ErrInvalidInput)
	case cost < 0:
		return fmt.Errorf("%w: cost must be non-negative", catalog.ErrInvalidInput)
	case stock < 0:
		return fmt.Errorf("%w: stock must be non-negative", catalog.ErrInvalidInput)
	}
	return nil
}

func categoryRef(name string) *string {
	if name == "" {
		return nil
	}
	return &name
}
