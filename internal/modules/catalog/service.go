package catalog

import (
	"context"

	"travia/internal/domain"
)

type ScheduleRepository interface {
	ListActive(ctx context.Context, from, to string) ([]domain.Schedule, error)
	Cities(ctx context.Context) ([]string, error)
}

type Service struct {
	schedules ScheduleRepository
}

func NewService(schedules ScheduleRepository) *Service {
	return &Service{schedules: schedules}
}

func (s *Service) SearchSchedules(ctx context.Context, from, to string) ([]domain.Schedule, error) {
	return s.schedules.ListActive(ctx, from, to)
}

func (s *Service) Cities(ctx context.Context) ([]string, error) {
	return s.schedules.Cities(ctx)
}
