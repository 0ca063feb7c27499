package repository

import (
	"context"
	"time"

	"travia/internal/domain"

	"gorm.io/gorm"
)

type TestimonialRepository struct {
	db *gorm.DB
}

func NewTestimonialRepository(db *gorm.DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

type testimonialModel struct {
	ID           string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name         string    `gorm:"column:name"`
	Role         *string   `gorm:"column:role"`
	Content      string    `gorm:"column:content"`
	Rating       int       `gorm:"column:rating"`
	IsActive     bool      `gorm:"column:is_active"`
	DisplayOrder int       `gorm:"column:display_order"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (testimonialModel) TableName() string { return "testimonials" }

func toDomainTestimonial(m testimonialModel) *domain.Testimonial {
	return &domain.Testimonial{
		ID:           m.ID,
		Name:         m.Name,
		Role:         strOrEmpty(m.Role),
		Content:      m.Content,
		Rating:       m.Rating,
		IsActive:     m.IsActive,
		DisplayOrder: m.DisplayOrder,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *TestimonialRepository) ListActive(ctx context.Context) ([]domain.Testimonial, error) {
	var rows []testimonialModel
	tx := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Testimonial, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainTestimonial(m))
	}
	return out, nil
}

func (r *TestimonialRepository) AverageRating(ctx context.Context) (float64, error) {
	var avg *float64
	tx := r.db.WithContext(ctx).
		Model(&testimonialModel{}).
		Where("is_active = ?", true).
		Select("AVG(rating)").
		Scan(&avg)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
