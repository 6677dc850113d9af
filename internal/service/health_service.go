package service

import (
	"context"

	"eduplatform/internal/repository"
)

type HealthService interface {
	CheckDB(ctx context.Context) (int, error)
}

type healthService struct {
	healthRepo repository.HealthRepository
}

func NewHealthService(healthRepo repository.HealthRepository) HealthService {
	return &healthService{healthRepo: healthRepo}
}

func (s *healthService) CheckDB(ctx context.Context) (int, error) {
	return s.healthRepo.CountTablesDB(ctx)
}
