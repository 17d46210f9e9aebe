package service

import (
	"context"

	"github.com/deppfellow/fellows-tracker/internal/model"
)

type FellowService struct {
	fellows FellowRepository
}

func NewFellowService(fellows FellowRepository) *FellowService {
	return &FellowService{fellows: fellows}
}

func (s *FellowService) List(ctx context.Context) ([]model.Fellow, error) {
	return s.fellows.List(ctx)
}

// FindByName returns the matching fellow as a one-element list, or an
// empty list when nobody has that name.
func (s *FellowService) FindByName(ctx context.Context, name string) ([]model.Fellow, error) {
	fellow, err := s.fellows.FindByName(ctx, name)
	if isNotFound(err) {
		return []model.Fellow{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []model.Fellow{*fellow}, nil
}

// Get answers a miss with a plain-text 404.
func (s *FellowService) Get(ctx context.Context, id int64) (*model.Fellow, error) {
	fellow, err := s.fellows.FindByID(ctx, id)
	if isNotFound(err) {
		return nil, noEntityWithID("fellow", id).AsText()
	}
	return fellow, err
}

func (s *FellowService) Create(ctx context.Context, name string) (*model.Fellow, error) {
	return s.fellows.Create(ctx, name)
}

// Rename answers a miss with a bare 404.
func (s *FellowService) Rename(ctx context.Context, id int64, name string) (*model.Fellow, error) {
	fellow, err := s.fellows.EditName(ctx, id, name)
	if isNotFound(err) {
		return nil, noEntityWithID("fellow", id).WithoutBody()
	}
	return fellow, err
}

// Delete removes the fellow and its posts. A miss is a bare 404.
func (s *FellowService) Delete(ctx context.Context, id int64) error {
	_, err := s.fellows.Delete(ctx, id)
	if isNotFound(err) {
		return noEntityWithID("fellow", id).WithoutBody()
	}
	return err
}
