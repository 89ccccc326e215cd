package service

import (
	"context"
	"fmt"

	"github.com/jask/domedeploy/internal/database/repository"
)

// CollectionService looks up deploy collections for the list pages.
type CollectionService struct {
	Collections *repository.CollectionRepo
}

func (s *CollectionService) List(ctx context.Context) ([]repository.Collection, error) {
	cols, err := s.Collections.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("collections: %w", err)
	}
	return cols, nil
}

// Get returns an error wrapping ErrNotFound when id is unknown.
func (s *CollectionService) Get(ctx context.Context, id string) (repository.Collection, error) {
	c, err := s.Collections.Get(ctx, id)
	if err != nil {
		return repository.Collection{}, fmt.Errorf("collection %s: %w", id, err)
	}
	if c == nil {
		return repository.Collection{}, fmt.Errorf("collection %s: %w", id, ErrNotFound)
	}
	return *c, nil
}
