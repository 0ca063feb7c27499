package repository

import (
	"context"
	"sort"
	"time"

	"travia/internal/domain"

	"gorm.io/gorm"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

type scheduleModel struct {
	ID         string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	RouteFrom  string    `gorm:"column:route_from"`
	RouteTo    string    `gorm:"column:route_to"`
	RouteVia   *string   `gorm:"column:route_via"`
	PickupTime string    `gorm:"column:pickup_time"`
	Price      int64     `gorm:"column:price"`
	Category   string    `gorm:"column:category"`
	IsActive   bool      `gorm:"column:is_active"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (scheduleModel) TableName() string { return "schedules" }

func toDomainSchedule(m scheduleModel) *domain.Schedule {
	return &domain.Schedule{
		ID:         m.ID,
		RouteFrom:  m.RouteFrom,
		RouteTo:    m.RouteTo,
		RouteVia:   strOrEmpty(m.RouteVia),
		PickupTime: m.PickupTime,
		Price:      m.Price,
		Category:   m.Category,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	var m scheduleModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSchedule(m), nil
}

// ListActive returns active schedules ordered by origin city. Empty filter
// values match everything.
func (r *ScheduleRepository) ListActive(ctx context.Context, from, to string) ([]domain.Schedule, error) {
	q := r.db.WithContext(ctx).
		Model(&scheduleModel{}).
		Where("is_active = ?", true).
		Order("route_from")
	if from != "" {
		q = q.Where("route_from = ?", from)
	}
	if to != "" {
		q = q.Where("route_to = ?", to)
	}

	var rows []scheduleModel
	if tx := q.Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Schedule, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainSchedule(m))
	}
	return out, nil
}

// Cities returns the sorted set of cities appearing as origin or destination
// of an active schedule.
func (r *ScheduleRepository) Cities(ctx context.Context) ([]string, error) {
	var froms, tos []string

	tx := r.db.WithContext(ctx).
		Model(&scheduleModel{}).
		Where("is_active = ?", true).
		Distinct().
		Pluck("route_from", &froms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	tx = r.db.WithContext(ctx).
		Model(&scheduleModel{}).
		Where("is_active = ?", true).
		Distinct().
		Pluck("route_to", &tos)
	if tx.Error != nil {
		return nil, tx.Error
	}

	seen := make(map[string]bool, len(froms)+len(tos))
	cities := make([]string, 0, len(froms)+len(tos))
	for _, c := range append(froms, tos...) {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		cities = append(cities, c)
	}
	sort.Strings(cities)
	return cities, nil
}

func (r *ScheduleRepository) CountCities(ctx context.Context) (int64, error) {
	cities, err := r.Cities(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(cities)), nil
}
