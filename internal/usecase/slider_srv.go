package usecase

import (
	"context"
	"fmt"

	"kickstreet/internal/data/entity"
	"kickstreet/internal/data/repository"
	"kickstreet/internal/dto/request"
	"kickstreet/internal/dto/response"
	"kickstreet/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SliderService interface {
	Create(ctx context.Context, req *request.SliderRequest) (*response.SliderResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.SliderResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.SliderUpdateRequest) (*response.SliderResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns the stored slides or, when there are none, slides built from the
	// latest products. Built slides are not stored.
	List(ctx context.Context, activeOnly bool) ([]response.SliderResponse, error)
	// QuickAdd stores slides built from the latest products, up to the cap.
	QuickAdd(ctx context.Context) ([]response.SliderResponse, error)
}

type sliderService struct {
	repo   *repository.Repository
	config *utils.Config
	deps   Deps
	log    *zap.Logger
}

func NewSliderService(repo *repository.Repository, config *utils.Config, deps Deps, log *zap.Logger) SliderService {
	return &sliderService{
		repo:   repo,
		config: config,
		deps:   deps,
		log:    log.With(zap.String("service", "slider")),
	}
}

func (s *sliderService) Create(ctx context.Context, req *request.SliderRequest) (*response.SliderResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	productID, err := s.checkProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	now := s.deps.Clock()
	slider := &entity.Slider{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Image:     req.Image,
		ProductID: productID,
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		IsActive:  true,
	}
	if req.IsActive != nil {
		slider.IsActive = *req.IsActive
	}

	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		count, err := s.lockAndCount(ctx, tx)
		if err != nil {
			return err
		}
		if count >= entity.MaxSliders {
			return errorf(ErrLimitExceeded, "maximum of %d sliders allowed, delete one first", entity.MaxSliders)
		}

		slider.DisplayOrder = count
		if req.DisplayOrder != nil {
			slider.DisplayOrder = *req.DisplayOrder
		}
		return tx.Slider.Create(ctx, slider)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Slider created", zap.String("id", slider.ID.String()))

	resp := response.SliderToResponse(slider)
	return &resp, nil
}

func (s *sliderService) lockAndCount(ctx context.Context, tx *repository.Repository) (int, error) {
	if err := tx.Slider.Lock(ctx); err != nil {
		return 0, err
	}
	return tx.Slider.Count(ctx)
}

func (s *sliderService) checkProduct(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, errorf(ErrValidation, "invalid product id")
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errorf(ErrNotFound, "product not found")
	}
	return &id, nil
}

func (s *sliderService) GetByID(ctx context.Context, id uuid.UUID) (*response.SliderResponse, error) {
	slider, err := s.repo.Slider.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slider == nil {
		return nil, errorf(ErrNotFound, "slider not found")
	}

	resp := response.SliderToResponse(slider)
	return &resp, nil
}

func (s *sliderService) Update(ctx context.Context, id uuid.UUID, req *request.SliderUpdateRequest) (*response.SliderResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	slider, err := s.repo.Slider.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slider == nil {
		return nil, errorf(ErrNotFound, "slider not found")
	}

	if req.ProductID != nil {
		productID, err := s.checkProduct(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}
		slider.ProductID = productID
	}
	if req.Image != nil {
		slider.Image = *req.Image
	}
	if req.Title != nil {
		slider.Title = *req.Title
	}
	if req.Subtitle != nil {
		slider.Subtitle = *req.Subtitle
	}
	if req.DisplayOrder != nil {
		slider.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		slider.IsActive = *req.IsActive
	}

	if err := s.repo.Slider.Update(ctx, slider); err != nil {
		return nil, err
	}
	slider.UpdatedAt = s.deps.Clock()

	resp := response.SliderToResponse(slider)
	return &resp, nil
}

func (s *sliderService) Delete(ctx context.Context, id uuid.UUID) error {
	slider, err := s.repo.Slider.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if slider == nil {
		return errorf(ErrNotFound, "slider not found")
	}

	if err := s.repo.Slider.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Slider deleted", zap.String("id", id.String()))
	return nil
}

func (s *sliderService) List(ctx context.Context, activeOnly bool) ([]response.SliderResponse, error) {
	sliders, err := s.repo.Slider.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	if len(sliders) > 0 {
		out := make([]response.SliderResponse, 0, len(sliders))
		for _, sl := range sliders {
			out = append(out, response.SliderToResponse(sl))
		}
		return out, nil
	}

	// with no stored slides at all the hero falls back to the newest products
	if activeOnly {
		total, err := s.repo.Slider.Count(ctx)
		if err != nil {
			return nil, err
		}
		if total > 0 {
			return []response.SliderResponse{}, nil
		}
	}

	products, err := s.repo.Product.Latest(ctx, entity.MaxSliders)
	if err != nil {
		return nil, err
	}

	out := make([]response.SliderResponse, 0, len(products))
	for _, sl := range s.fromProducts(products) {
		resp := response.SliderToResponse(sl)
		resp.ID = fmt.Sprintf("auto-%d", sl.DisplayOrder+1)
		resp.Auto = true
		out = append(out, resp)
	}
	return out, nil
}

func (s *sliderService) QuickAdd(ctx context.Context) ([]response.SliderResponse, error) {
	var created []*entity.Slider

	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		count, err := s.lockAndCount(ctx, tx)
		if err != nil {
			return err
		}

		room := entity.MaxSliders - count
		if room <= 0 {
			return errorf(ErrLimitExceeded, "maximum of %d sliders allowed, delete one first", entity.MaxSliders)
		}

		products, err := tx.Product.Latest(ctx, room)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return errorf(ErrNotFound, "no products to build sliders from")
		}

		for _, sl := range s.fromProducts(products) {
			sl.DisplayOrder += count
			if err := tx.Slider.Create(ctx, sl); err != nil {
				return err
			}
			created = append(created, sl)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Sliders quick-added", zap.Int("count", len(created)))

	out := make([]response.SliderResponse, 0, len(created))
	for _, sl := range created {
		out = append(out, response.SliderToResponse(sl))
	}
	return out, nil
}

// fromProducts builds one active slide per product that has an image.
func (s *sliderService) fromProducts(products []*entity.Product) []*entity.Slider {
	now := s.deps.Clock()
	out := make([]*entity.Slider, 0, len(products))

	for _, p := range products {
		if p.CoverImage() == "" {
			continue
		}
		productID := p.ID
		out = append(out, &entity.Slider{
			Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Image:        p.CoverImage(),
			ProductID:    &productID,
			Title:        p.Name,
			Subtitle:     formatPrice(s.config.Payment.Currency, p.Price.StringFixed(2)),
			DisplayOrder: len(out),
			IsActive:     true,
		})
	}
	return out
}
