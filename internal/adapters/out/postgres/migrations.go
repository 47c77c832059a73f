package postgres

import (
	"fmt"

	"ordercycles/internal/adapters/out/postgres/enterpriserepo"
	"ordercycles/internal/adapters/out/postgres/notificationrepo"
	"ordercycles/internal/adapters/out/postgres/ordercyclerepo"
	"ordercycles/internal/adapters/out/postgres/orderrepo"
	"ordercycles/internal/adapters/out/postgres/schedulerepo"
	"ordercycles/internal/adapters/out/postgres/variantrepo"

	"gorm.io/gorm"
)

// Models lists every table the service touches, parents first.
func Models() []any {
	return []any{
		&enterpriserepo.UserDTO{},
		&enterpriserepo.EnterpriseDTO{},
		&enterpriserepo.EnterpriseRoleDTO{},
		&variantrepo.VariantDTO{},
		&ordercyclerepo.OrderCycleDTO{},
		&ordercyclerepo.ExchangeDTO{},
		&ordercyclerepo.ExchangeVariantDTO{},
		&orderrepo.OrderDTO{},
		&schedulerepo.ScheduleDTO{},
		&schedulerepo.ScheduleOrderCycleDTO{},
		&notificationrepo.JobDTO{},
	}
}

// restrictingKey is a foreign key into order_cycles that must block deletes.
type restrictingKey struct {
	name   string
	model  any
	table  string
	column string
}

var restrictingKeys = []restrictingKey{
	{ordercyclerepo.FKOrdersOrderCycle, &orderrepo.OrderDTO{}, "orders", "order_cycle_id"},
	{ordercyclerepo.FKScheduleOrderCyclesOrderCycle, &schedulerepo.ScheduleOrderCycleDTO{}, "schedule_order_cycles", "order_cycle_id"},
}

// Migrate creates or updates the schema. Orders and schedule links reference
// order cycles with ON DELETE RESTRICT; the repository relies on those
// constraint names to tell the two conflicts apart.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, fk := range restrictingKeys {
		if db.Migrator().HasConstraint(fk.model, fk.name) {
			continue
		}
		err := db.Exec(fmt.Sprintf(
			"ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES order_cycles (id) ON DELETE RESTRICT",
			fk.table, fk.name, fk.column,
		)).Error
		if err != nil {
			return fmt.Errorf("add constraint %s: %w", fk.name, err)
		}
	}

	return nil
}
