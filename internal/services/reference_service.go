package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/repositories"
)

// referenceService is the shared implementation behind every flat reference
// entity. One instance per entity type, all backed by the same repository shape.
type referenceService[T any] struct {
	repo   repositories.ReferenceRepository[T]
	logger *slog.Logger
	name   string
}

func NewReferenceService[T any](repo repositories.ReferenceRepository[T], logger *slog.Logger, name string) ReferenceService[T] {
	return &referenceService[T]{
		repo:   repo,
		logger: logger,
		name:   name,
	}
}

func (s *referenceService[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, translateRepositoryError(err)
	}

	s.logger.Info("reference record created", "entity", s.name)
	return entity, nil
}

func (s *referenceService[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepositoryError(err)
	}
	return entity, nil
}

func (s *referenceService[T]) Update(ctx context.Context, entity *T) (*T, error) {
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, translateRepositoryError(err)
	}

	s.logger.Info("reference record updated", "entity", s.name)
	return entity, nil
}

func (s *referenceService[T]) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateRepositoryError(err)
	}

	s.logger.Info("reference record deleted", "entity", s.name, "id", id)
	return nil
}

func (s *referenceService[T]) List(ctx context.Context, params models.ListParams) (*models.PaginatedResponse, error) {
	params = normalizeListParams(params)

	entities, total, err := s.repo.List(ctx, toListFilters(params))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.name, translateRepositoryError(err))
	}

	return models.NewPaginatedResponse(entities, total, params.Page, params.Size, len(entities)), nil
}
