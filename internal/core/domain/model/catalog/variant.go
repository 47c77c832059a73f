// Package catalog exposes the slice of the product catalog that order cycles
// care about: which enterprise supplies a given variant.
package catalog

import (
	"errors"

	"ordercycles/internal/core/domain/model/kernel"
)

// Variant is a sellable unit of a product, supplied by exactly one enterprise.
type Variant struct {
	id         kernel.UUID
	supplierID kernel.UUID
}

func NewVariant(id, supplierID kernel.UUID) (*Variant, error) {
	if err := errors.Join(id.Validate(), supplierID.Validate()); err != nil {
		return nil, err
	}
	return &Variant{id: id, supplierID: supplierID}, nil
}

func (v *Variant) ID() kernel.UUID { return v.id }
func (v *Variant) SupplierID() kernel.UUID { return v.supplierID }

// SuppliedBy reports whether enterpriseID produces the variant.
func (v *Variant) SuppliedBy(enterpriseID kernel.UUID) bool {
	return v.supplierID.IsEqual(enterpriseID)
}
