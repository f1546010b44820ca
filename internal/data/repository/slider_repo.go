package repository

import (
	"context"
	"errors"
	"fmt"

	"kickstreet/internal/data/entity"
	"kickstreet/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SliderRepository interface {
	// Lock serialises writers that check the slide cap. Only meaningful inside a transaction.
	Lock(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, slider *entity.Slider) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Slider, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.Slider, error)
	Update(ctx context.Context, slider *entity.Slider) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sliderRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSliderRepository(db database.Querier, log *zap.Logger) SliderRepository {
	return &sliderRepository{
		db:  db,
		log: log.With(zap.String("repository", "slider")),
	}
}

const sliderColumns = `id, image, product_id, title, subtitle, display_order, is_active, created_at, updated_at`

func scanSlider(row pgx.Row) (*entity.Slider, error) {
	var s entity.Slider
	err := row.Scan(
		&s.ID,
		&s.Image,
		&s.ProductID,
		&s.Title,
		&s.Subtitle,
		&s.DisplayOrder,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sliderRepository) Lock(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `LOCK TABLE sliders IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		r.log.Error("Failed to lock sliders", zap.Error(err))
		return fmt.Errorf("lock sliders: %w", err)
	}
	return nil
}

func (r *sliderRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sliders`).Scan(&count); err != nil {
		r.log.Error("Failed to count sliders", zap.Error(err))
		return 0, fmt.Errorf("count sliders: %w", err)
	}
	return count, nil
}

func (r *sliderRepository) Create(ctx context.Context, slider *entity.Slider) error {
	query := `
		INSERT INTO sliders (id, image, product_id, title, subtitle, display_order,
		                     is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		slider.ID,
		slider.Image,
		slider.ProductID,
		slider.Title,
		slider.Subtitle,
		slider.DisplayOrder,
		slider.IsActive,
		slider.CreatedAt,
		slider.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create slider", zap.Error(err))
		return fmt.Errorf("create slider: %w", err)
	}
	return nil
}

func (r *sliderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slider, error) {
	query := `SELECT ` + sliderColumns + ` FROM sliders WHERE id = $1`

	slider, err := scanSlider(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find slider", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find slider %s: %w", id.String(), err)
	}
	return slider, nil
}

// FindAll orders by display order, then creation time.
func (r *sliderRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Slider, error) {
	query := `SELECT ` + sliderColumns + ` FROM sliders`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY display_order ASC, created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list sliders", zap.Error(err))
		return nil, fmt.Errorf("find all sliders: %w", err)
	}
	defer rows.Close()

	sliders := make([]*entity.Slider, 0)
	for rows.Next() {
		s, err := scanSlider(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slider row: %w", err)
		}
		sliders = append(sliders, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slider rows: %w", err)
	}
	return sliders, nil
}

func (r *sliderRepository) Update(ctx context.Context, slider *entity.Slider) error {
	query := `
		UPDATE sliders
		SET image = $2, product_id = $3, title = $4, subtitle = $5,
		    display_order = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		slider.ID,
		slider.Image,
		slider.ProductID,
		slider.Title,
		slider.Subtitle,
		slider.DisplayOrder,
		slider.IsActive,
	)
	if err != nil {
		r.log.Error("Failed to update slider", zap.Error(err), zap.String("id", slider.ID.String()))
		return fmt.Errorf("update slider %s: %w", slider.ID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("slider %s not found", slider.ID.String())
	}
	return nil
}

func (r *sliderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM sliders WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete slider", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete slider %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("slider %s not found", id.String())
	}
	return nil
}
