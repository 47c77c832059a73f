package commands

import (
	"context"

	"ordercycles/internal/core/domain/model/catalog"
	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/ordercycle"
	"ordercycles/internal/core/domain/services"
	"ordercycles/internal/pkg/errs"
)

type referenceSource interface {
	DirectoryFactory
	CatalogFactory
}

// applyChanges runs the mutation pipeline on oc: filter the change set to
// scope, apply name and dates, then synchronize exchanges. All field errors
// are collected; a non-empty result means oc must not be persisted.
func applyChanges(
	ctx context.Context,
	uow referenceSource,
	scope services.Scope,
	oc *ordercycle.OrderCycle,
	changes ordercycle.ChangeSet,
) (errs.FieldErrors, error) {
	filtered := services.NewMutationFilter().Filter(scope, oc.CoordinatorID(), changes)

	var fields errs.FieldErrors
	fields.Merge(oc.ChangeDetails(filtered.Name, filtered.OrdersOpenAt, filtered.OrdersCloseAt))

	if !filtered.HasExchangeEdits() {
		return fields, nil
	}

	refs, err := loadReferences(ctx, uow, filtered)
	if err != nil {
		return nil, err
	}
	fields.Merge(services.NewExchangeSynchronizer().Sync(oc, scope, filtered, refs))
	return fields, nil
}

func loadReferences(ctx context.Context, uow referenceSource, changes ordercycle.ChangeSet) (services.ExchangeReferences, error) {
	enterpriseIDs, variantIDs := services.ReferencedIDs(changes)
	refs := services.ExchangeReferences{
		Enterprises: kernel.NewUUIDSet(),
		Variants:    make(map[kernel.UUID]*catalog.Variant, len(variantIDs)),
	}

	if len(enterpriseIDs) > 0 {
		found, err := uow.EnterpriseDirectory().Find(ctx, enterpriseIDs)
		if err != nil {
			return refs, err
		}
		for _, e := range found {
			refs.Enterprises[e.ID()] = struct{}{}
		}
	}

	if len(variantIDs) > 0 {
		found, err := uow.VariantCatalog().Find(ctx, variantIDs)
		if err != nil {
			return refs, err
		}
		for _, v := range found {
			refs.Variants[v.ID()] = v
		}
	}
	return refs, nil
}
