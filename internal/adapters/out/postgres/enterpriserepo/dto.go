// Package enterpriserepo reads enterprises, their managers and user accounts.
package enterpriserepo

import (
	"ordercycles/internal/core/domain/model/enterprise"
	"ordercycles/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EnterpriseDTO is the enterprises row.
type EnterpriseDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(255);not null"`
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	IsDistributor bool      `gorm:"not null;default:false"`
}

func (EnterpriseDTO) TableName() string {
	return "enterprises"
}

// EnterpriseRoleDTO grants a user management of an enterprise they do not own.
type EnterpriseRoleDTO struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	EnterpriseID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (EnterpriseRoleDTO) TableName() string {
	return "enterprise_roles"
}

// UserDTO is the users row.
type UserDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Admin bool      `gorm:"not null;default:false"`
}

func (UserDTO) TableName() string {
	return "users"
}

func enterpriseToDomain(dto EnterpriseDTO) (*enterprise.Enterprise, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	return enterprise.RestoreEnterprise(id, dto.Name, ownerID, dto.IsDistributor)
}

func userToDomain(dto UserDTO) (*enterprise.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return enterprise.NewUser(id, dto.Email, dto.Admin)
}

// enterprisesToDomain maps rows in order.
func enterprisesToDomain(dtos []EnterpriseDTO) ([]*enterprise.Enterprise, error) {
	enterprises := make([]*enterprise.Enterprise, 0, len(dtos))
	for _, dto := range dtos {
		e, err := enterpriseToDomain(dto)
		if err != nil {
			return nil, err
		}
		enterprises = append(enterprises, e)
	}
	return enterprises, nil
}

func rawIDs(ids []kernel.UUID) []uuid.UUID {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return raw
}
