package enterprise

import (
	"errors"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/pkg/errs"
)

// ErrEmailIsRequired is returned when a user is created without an email.
var ErrEmailIsRequired = errs.NewValueIsRequiredError("email")

// User is an account acting on order cycles. Admins manage every enterprise
// and are the only users allowed to trigger producer notifications.
type User struct {
	id    kernel.UUID
	email string
	admin bool
}

func NewUser(id kernel.UUID, email string, admin bool) (*User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, ErrEmailIsRequired
	}
	return &User{id: id, email: email, admin: admin}, nil
}

func (u *User) ID() kernel.UUID { return u.id }
func (u *User) Email() string { return u.email }
func (u *User) IsAdmin() bool { return u != nil && u.admin }

// Validate reports whether u is usable as an actor.
func (u *User) Validate() error {
	if u == nil {
		return errors.New("user is required")
	}
	return u.id.Validate()
}
