package usecase

import (
	"context"
	"errors"
	"time"

	"kickstreet/internal/data/entity"
	"kickstreet/internal/data/repository"
	"kickstreet/internal/dto/request"
	"kickstreet/internal/dto/response"
	"kickstreet/pkg/storage"
	"kickstreet/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductService interface {
	Create(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.ProductUpdateRequest) (*response.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.ProductResponse, error)
	GetBySlug(ctx context.Context, slug string) (*response.ProductResponse, error)
	List(ctx context.Context, page request.PaginatedRequest, category, search string) (*response.PaginatedResponse[response.ProductResponse], error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, file any, folder string) (*response.UploadResponse, error)
}

type productService struct {
	repo       *repository.Repository
	newsletter NewsletterService
	deps       Deps
	log        *zap.Logger
}

func NewProductService(repo *repository.Repository, newsletter NewsletterService, deps Deps, log *zap.Logger) ProductService {
	return &productService{
		repo:       repo,
		newsletter: newsletter,
		deps:       deps,
		log:        log.With(zap.String("service", "product")),
	}
}

func (s *productService) Create(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := checkProductFields(req.Price, entity.Category(req.Category), req.Images); err != nil {
		return nil, err
	}

	brand := req.Brand
	if brand == "" {
		brand = entity.DefaultBrand
	}

	now := s.deps.Clock()
	product := &entity.Product{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Category:    entity.Category(req.Category),
		Brand:       brand,
		Sizes:       orEmpty(req.Sizes),
		Colors:      orEmpty(req.Colors),
		Stock:       req.Stock,
		Images:      req.Images,
		Ratings:     decimal.Zero,
	}
	if product.Slug == "" {
		return nil, errorf(ErrValidation, "name must contain letters or digits")
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errorf(ErrConflict, "a product named %q already exists", req.Name)
		}
		return nil, err
	}

	go s.announce(product)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) announce(product *entity.Product) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.newsletter.AnnounceProduct(ctx, product); err != nil {
		s.log.Warn("Failed to announce product", zap.Error(err), zap.String("product_id", product.ID.String()))
	}
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req *request.ProductUpdateRequest) (*response.ProductResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errorf(ErrNotFound, "product not found")
	}

	if req.Name != nil {
		product.Name = *req.Name
		product.Slug = utils.Slugify(*req.Name)
		if product.Slug == "" {
			return nil, errorf(ErrValidation, "name must contain letters or digits")
		}
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = entity.Category(*req.Category)
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Sizes != nil {
		product.Sizes = req.Sizes
	}
	if req.Colors != nil {
		product.Colors = req.Colors
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Images != nil {
		product.Images = req.Images
	}

	if err := checkProductFields(product.Price, product.Category, product.Images); err != nil {
		return nil, err
	}

	if err := s.repo.Product.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errorf(ErrConflict, "a product named %q already exists", product.Name)
		}
		return nil, err
	}
	product.UpdatedAt = s.deps.Clock()

	s.log.Info("Product updated", zap.String("id", id.String()))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*response.ProductResponse, error) {
	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errorf(ErrNotFound, "product not found")
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*response.ProductResponse, error) {
	product, err := s.repo.Product.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errorf(ErrNotFound, "product not found")
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, page request.PaginatedRequest, category, search string) (*response.PaginatedResponse[response.ProductResponse], error) {
	if category != "" && !entity.Category(category).Valid() {
		return nil, errorf(ErrValidation, "category must be one of: Men, Women, Children")
	}

	filter := repository.ProductFilter{
		Category: entity.Category(category),
		Search:   search,
		Limit:    page.Limit(),
		Offset:   page.Offset(),
	}

	products, err := s.repo.Product.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Product.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.ProductsToResponse(products), page.Page, page.Limit(), total), nil
}

// Delete removes the product row. Hosted images are cleaned up first; failures there are
// logged and do not stop the delete.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return errorf(ErrNotFound, "product not found")
	}

	for _, img := range product.Images {
		if err := s.deps.Images.DeleteByURL(ctx, img); err != nil {
			s.log.Warn("Failed to delete product image",
				zap.Error(err),
				zap.String("product_id", id.String()),
				zap.String("image", img),
			)
		}
	}

	if err := s.repo.Product.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Product deleted", zap.String("id", id.String()), zap.Int("images", len(product.Images)))
	return nil
}

func (s *productService) UploadImage(ctx context.Context, file any, folder string) (*response.UploadResponse, error) {
	switch folder {
	case "", storage.FolderProducts, storage.FolderSliders:
	default:
		return nil, errorf(ErrValidation, "folder must be %s or %s", storage.FolderProducts, storage.FolderSliders)
	}

	url, err := s.deps.Images.Upload(ctx, file, folder)
	if err != nil {
		return nil, errorf(ErrUpstream, "image upload failed")
	}
	return &response.UploadResponse{URL: url}, nil
}

func checkProductFields(price decimal.Decimal, category entity.Category, images []string) error {
	if len(images) == 0 {
		return errorf(ErrValidation, "at least one image is required")
	}
	if price.IsNegative() {
		return errorf(ErrValidation, "price cannot be negative")
	}
	if !category.Valid() {
		return errorf(ErrValidation, "category must be one of: Men, Women, Children")
	}
	return nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
