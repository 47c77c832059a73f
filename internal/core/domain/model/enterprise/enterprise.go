package enterprise

import (
	"errors"
	"strings"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/pkg/errs"
	"ordercycles/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when an enterprise is created with a blank name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEnterpriseIsNotConstructed is returned when using a zero-value Enterprise.
	ErrEnterpriseIsNotConstructed = errors.New("Enterprise must be created via NewEnterprise or RestoreEnterprise")
)

// Enterprise is a business taking part in order cycles.
//
// Only distributors may coordinate an order cycle. Producers that merely
// supply goods have the flag unset.
type Enterprise struct {
	id            kernel.UUID
	name          string
	ownerID       kernel.UUID
	isDistributor bool
	guard         guard.ConstructorGuard
}

// NewEnterprise creates an enterprise owned by ownerID.
//
//	hub, err := enterprise.NewEnterprise(kernel.NewUUID(), "Green Hub", owner.ID(), true)
func NewEnterprise(id kernel.UUID, name string, ownerID kernel.UUID, isDistributor bool) (*Enterprise, error) {
	e := &Enterprise{
		isDistributor: isDistributor,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setName(name),
		e.setOwnerID(ownerID),
	); err != nil {
		return nil, err
	}
	return e, nil
}

// RestoreEnterprise rebuilds an enterprise loaded from storage.
func RestoreEnterprise(id kernel.UUID, name string, ownerID kernel.UUID, isDistributor bool) (*Enterprise, error) {
	return NewEnterprise(id, name, ownerID, isDistributor)
}

func (e *Enterprise) Validate() error {
	if e == nil {
		return ErrEnterpriseIsNotConstructed
	}
	return e.guard.Validate(ErrEnterpriseIsNotConstructed)
}

func (e *Enterprise) ID() kernel.UUID { return e.id }
func (e *Enterprise) Name() string { return e.name }
func (e *Enterprise) OwnerID() kernel.UUID { return e.ownerID }
func (e *Enterprise) IsDistributor() bool { return e.isDistributor }

// CanCoordinate reports whether the enterprise is eligible to coordinate an order cycle.
func (e *Enterprise) CanCoordinate() bool {
	return e.isDistributor
}

func (e *Enterprise) IsEqual(other *Enterprise) bool {
	return other != nil && e.id.IsEqual(other.id)
}

func (e *Enterprise) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Enterprise) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	e.name = name
	return nil
}

func (e *Enterprise) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner_id", err)
	}
	e.ownerID = ownerID
	return nil
}

// IDs collects the identifiers of enterprises.
func IDs(enterprises []*Enterprise) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(enterprises))
	for _, e := range enterprises {
		ids = append(ids, e.ID())
	}
	return ids
}
