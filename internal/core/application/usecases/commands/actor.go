package commands

import (
	"context"
	"errors"

	"ordercycles/internal/core/domain/model/enterprise"
	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/pkg/errs"
)

// actor is the acting user together with the enterprises they manage.
type actor struct {
	user       *enterprise.User
	managed    []*enterprise.Enterprise
	managedIDs kernel.UUIDSet
}

// canManage reports whether the actor manages enterpriseID, admins included.
func (a actor) canManage(enterpriseID kernel.UUID) bool {
	return a.user.IsAdmin() || a.managedIDs.Contains(enterpriseID)
}

func loadActor(ctx context.Context, dir DirectoryFactory, userID kernel.UUID, action string) (actor, error) {
	user, err := dir.UserRepository().Get(ctx, userID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return actor{}, errs.NewAuthorizationError(action, MsgUnknownUser)
	}
	if err != nil {
		return actor{}, err
	}

	managed, err := dir.EnterpriseDirectory().ManagedBy(ctx, user)
	if err != nil {
		return actor{}, err
	}

	return actor{
		user:       user,
		managed:    managed,
		managedIDs: kernel.NewUUIDSet(enterprise.IDs(managed)...),
	}, nil
}
