package ports

import (
	"context"

	"ordercycles/internal/core/domain/model/catalog"
	"ordercycles/internal/core/domain/model/enterprise"
	"ordercycles/internal/core/domain/model/kernel"
)

// EnterpriseDirectory reads enterprises and who manages them.
type EnterpriseDirectory interface {
	// ManagedBy returns the enterprises user owns or holds a role on.
	// Admins manage every enterprise.
	ManagedBy(ctx context.Context, user *enterprise.User) ([]*enterprise.Enterprise, error)

	// Find returns the enterprises among ids that exist. Missing ids are skipped.
	Find(ctx context.Context, ids []kernel.UUID) ([]*enterprise.Enterprise, error)
}

// UserRepository reads user accounts.
type UserRepository interface {
	// Get returns errs.ErrObjectNotFound for unknown users.
	Get(ctx context.Context, id kernel.UUID) (*enterprise.User, error)
}

// VariantCatalog reads variants and their suppliers.
type VariantCatalog interface {
	// Find returns the variants among ids that exist. Missing ids are skipped.
	Find(ctx context.Context, ids []kernel.UUID) ([]*catalog.Variant, error)
}
