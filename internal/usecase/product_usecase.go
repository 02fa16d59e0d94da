package usecase

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
	"vendeya/pkg/errors"
)

// ProductUseCase is the catalog: listing and search for everyone, CRUD
// for sellers. Ownership and role checks are server-authoritative; this
// layer only validates the form fields before the round trip.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	session     *SessionUseCase
	validate    *validator.Validate

	mu       sync.RWMutex
	products []entity.Product
	current  *entity.Product
	errMsg   string
}

func NewProductUseCase(productRepo repository.ProductRepository, session *SessionUseCase) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		session:     session,
		validate:    validator.New(),
	}
}

type ProductInput struct {
	Name        string  `validate:"required"`
	Description string  `validate:"max=5000"`
	Price       float64 `validate:"required,gt=0"`
	Stock       int     `validate:"gte=0"`
	CategoryID  int     `validate:"required,gt=0"`
	Image       []byte
	ImageName   string
}

func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) error {
	products, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		uc.setError(err)
		return err
	}
	uc.mu.Lock()
	uc.products = products
	uc.errMsg = ""
	uc.mu.Unlock()
	return nil
}

// ListMine lists the current seller's own products.
func (uc *ProductUseCase) ListMine(ctx context.Context) error {
	user := uc.session.User()
	if user == nil {
		return errors.Unauthorized("Inicia sesión para ver tus productos", nil)
	}
	return uc.List(ctx, repository.ProductFilter{SellerID: user.ID})
}

func (uc *ProductUseCase) Get(ctx context.Context, id int) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		uc.setError(err)
		return nil, err
	}
	uc.mu.Lock()
	uc.current = product
	uc.errMsg = ""
	uc.mu.Unlock()
	return product, nil
}

func (uc *ProductUseCase) Create(ctx context.Context, input ProductInput) (*entity.Product, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, errors.BadRequest("Datos del producto no válidos", err)
	}
	product, err := uc.productRepo.Create(ctx, payloadFromInput(input))
	if err != nil {
		uc.setError(err)
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) Update(ctx context.Context, id int, input ProductInput) (*entity.Product, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, errors.BadRequest("Datos del producto no válidos", err)
	}
	product, err := uc.productRepo.Update(ctx, id, payloadFromInput(input))
	if err != nil {
		uc.setError(err)
		return nil, err
	}
	uc.mu.Lock()
	if uc.current != nil && uc.current.ID == id {
		uc.current = product
	}
	uc.mu.Unlock()
	return product, nil
}

func (uc *ProductUseCase) Delete(ctx context.Context, id int) error {
	if err := uc.productRepo.Delete(ctx, id); err != nil {
		uc.setError(err)
		return err
	}
	uc.mu.Lock()
	kept := uc.products[:0]
	for _, product := range uc.products {
		if product.ID != id {
			kept = append(kept, product)
		}
	}
	uc.products = kept
	uc.mu.Unlock()
	return nil
}

func payloadFromInput(input ProductInput) repository.ProductPayload {
	return repository.ProductPayload{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
		Image:       input.Image,
		ImageName:   input.ImageName,
	}
}

func (uc *ProductUseCase) Products() []entity.Product {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	products := make([]entity.Product, len(uc.products))
	copy(products, uc.products)
	return products
}

func (uc *ProductUseCase) Error() string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.errMsg
}

func (uc *ProductUseCase) setError(err error) {
	uc.mu.Lock()
	uc.errMsg = errors.UserMessage(err)
	uc.mu.Unlock()
}
