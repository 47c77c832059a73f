package enterpriserepo

import (
	"context"
	"errors"

	"ordercycles/internal/core/domain/model/enterprise"
	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormEnterpriseDirectory implements EnterpriseDirectory using GORM.
type GormEnterpriseDirectory struct {
	db *gorm.DB
}

func NewGormEnterpriseDirectory(db *gorm.DB) *GormEnterpriseDirectory {
	return &GormEnterpriseDirectory{db: db}
}

// ManagedBy returns the enterprises user owns or holds a role on, ordered by
// name. Admins get every enterprise.
func (r *GormEnterpriseDirectory) ManagedBy(ctx context.Context, user *enterprise.User) ([]*enterprise.Enterprise, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&EnterpriseDTO{})
	if !user.IsAdmin() {
		userID := user.ID().Bytes()
		roles := r.db.Model(&EnterpriseRoleDTO{}).Select("enterprise_id").Where("user_id = ?", userID)
		query = query.Where("owner_id = ? OR id IN (?)", userID, roles)
	}

	var dtos []EnterpriseDTO
	if err := query.Order("name").Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return enterprisesToDomain(dtos)
}

// Find returns the existing enterprises among ids.
func (r *GormEnterpriseDirectory) Find(ctx context.Context, ids []kernel.UUID) ([]*enterprise.Enterprise, error) {
	if len(ids) == 0 {
		return []*enterprise.Enterprise{}, nil
	}

	var dtos []EnterpriseDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", rawIDs(ids)).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return enterprisesToDomain(dtos)
}

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Get retrieves a user by ID.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*enterprise.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, err
	}
	return userToDomain(dto)
}
