// Package variantrepo reads product variants and who supplies them.
package variantrepo

import (
	"context"

	"ordercycles/internal/core/domain/model/catalog"
	"ordercycles/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VariantDTO is the variants row. Only the columns order cycles rely on are mapped.
type VariantDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (VariantDTO) TableName() string {
	return "variants"
}

// GormVariantCatalog implements VariantCatalog using GORM.
type GormVariantCatalog struct {
	db *gorm.DB
}

func NewGormVariantCatalog(db *gorm.DB) *GormVariantCatalog {
	return &GormVariantCatalog{db: db}
}

// Find returns the existing variants among ids.
func (r *GormVariantCatalog) Find(ctx context.Context, ids []kernel.UUID) ([]*catalog.Variant, error) {
	if len(ids) == 0 {
		return []*catalog.Variant{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []VariantDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	variants := make([]*catalog.Variant, 0, len(dtos))
	for _, dto := range dtos {
		v, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, nil
}

func toDomain(dto VariantDTO) (*catalog.Variant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}
	return catalog.NewVariant(id, supplierID)
}
