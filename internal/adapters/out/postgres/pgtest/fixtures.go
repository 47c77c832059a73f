package pgtest

import (
	"ordercycles/internal/adapters/out/postgres/enterpriserepo"
	"ordercycles/internal/adapters/out/postgres/orderrepo"
	"ordercycles/internal/adapters/out/postgres/schedulerepo"
	"ordercycles/internal/adapters/out/postgres/variantrepo"
	"ordercycles/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// InsertUser stores a user row and returns its id.
func InsertUser(db *gorm.DB, email string, admin bool) (kernel.UUID, error) {
	id := kernel.NewUUID()
	err := db.Create(&enterpriserepo.UserDTO{ID: id.Bytes(), Email: email, Admin: admin}).Error
	return id, err
}

// InsertEnterprise stores an enterprise owned by ownerID.
func InsertEnterprise(db *gorm.DB, name string, ownerID kernel.UUID, distributor bool) (kernel.UUID, error) {
	id := kernel.NewUUID()
	err := db.Create(&enterpriserepo.EnterpriseDTO{
		ID:            id.Bytes(),
		Name:          name,
		OwnerID:       ownerID.Bytes(),
		IsDistributor: distributor,
	}).Error
	return id, err
}

// InsertRole lets userID manage enterpriseID without owning it.
func InsertRole(db *gorm.DB, userID, enterpriseID kernel.UUID) error {
	return db.Create(&enterpriserepo.EnterpriseRoleDTO{
		UserID:       userID.Bytes(),
		EnterpriseID: enterpriseID.Bytes(),
	}).Error
}

// InsertVariant stores a variant supplied by supplierID.
func InsertVariant(db *gorm.DB, supplierID kernel.UUID) (kernel.UUID, error) {
	id := kernel.NewUUID()
	err := db.Create(&variantrepo.VariantDTO{ID: id.Bytes(), SupplierID: supplierID.Bytes()}).Error
	return id, err
}

// InsertOrder places an order in orderCycleID.
func InsertOrder(db *gorm.DB, orderCycleID kernel.UUID) error {
	return db.Create(&orderrepo.OrderDTO{ID: kernel.NewUUID().Bytes(), OrderCycleID: orderCycleID.Bytes()}).Error
}

// InsertSchedule stores a schedule linking the given order cycles.
func InsertSchedule(db *gorm.DB, name string, orderCycleIDs ...kernel.UUID) error {
	id := kernel.NewUUID()
	links := make([]schedulerepo.ScheduleOrderCycleDTO, 0, len(orderCycleIDs))
	for _, ocID := range orderCycleIDs {
		links = append(links, schedulerepo.ScheduleOrderCycleDTO{ScheduleID: id.Bytes(), OrderCycleID: ocID.Bytes()})
	}
	return db.Create(&schedulerepo.ScheduleDTO{ID: id.Bytes(), Name: name, OrderCycles: links}).Error
}
