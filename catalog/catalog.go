// Package catalog is the live catalog collaborator backing cart
// reconciliation and the favorites trackers. Absence of an id in a response
// means the record is gone (soft-deleted vehicles are excluded by the default
// gorm scope).
package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/dealerhub/portal-api/models"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) FetchProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (s *Service) FetchVehiclesByIDs(ctx context.Context, ids []uint) ([]models.Vehicle, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var vehicles []models.Vehicle
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&vehicles).Error
	return vehicles, err
}
