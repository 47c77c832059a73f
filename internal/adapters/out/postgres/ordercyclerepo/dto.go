// Package ordercyclerepo persists order cycle aggregates: the cycle row,
// its exchanges and the variants each exchange carries.
package ordercyclerepo

import (
	"time"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/ordercycle"

	"github.com/google/uuid"
)

// OrderCycleDTO is the order_cycles row.
type OrderCycleDTO struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Name          string        `gorm:"type:varchar(255);not null"`
	OrdersOpenAt  *time.Time    `gorm:"type:timestamptz;index"`
	OrdersCloseAt *time.Time    `gorm:"type:timestamptz;index"`
	CoordinatorID uuid.UUID     `gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time     `gorm:"type:timestamptz;not null"`
	UpdatedAt     time.Time     `gorm:"type:timestamptz;not null"`
	Exchanges     []ExchangeDTO `gorm:"foreignKey:OrderCycleID;constraint:OnDelete:CASCADE"`
}

func (OrderCycleDTO) TableName() string {
	return "order_cycles"
}

// ExchangeDTO is one exchanges row. A cycle holds at most one exchange per
// sender, receiver and direction.
type ExchangeDTO struct {
	ID                   uuid.UUID            `gorm:"type:uuid;primaryKey"`
	OrderCycleID         uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_exchanges_edge,priority:1"`
	SenderID             uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_exchanges_edge,priority:2;index"`
	ReceiverID           uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_exchanges_edge,priority:3;index"`
	Incoming             bool                 `gorm:"not null;uniqueIndex:idx_exchanges_edge,priority:4"`
	ReceivalInstructions string               `gorm:"type:text;not null;default:''"`
	PickupTime           string               `gorm:"type:varchar(255);not null;default:''"`
	PickupInstructions   string               `gorm:"type:text;not null;default:''"`
	Variants             []ExchangeVariantDTO `gorm:"foreignKey:ExchangeID;constraint:OnDelete:CASCADE"`
}

func (ExchangeDTO) TableName() string {
	return "exchanges"
}

// ExchangeVariantDTO links a variant to an exchange.
type ExchangeVariantDTO struct {
	ExchangeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	VariantID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (ExchangeVariantDTO) TableName() string {
	return "exchange_variants"
}

// fromDomain maps the aggregate to rows. Variants are returned separately
// because they are replaced wholesale on every save.
func fromDomain(oc *ordercycle.OrderCycle) (OrderCycleDTO, []ExchangeDTO, []ExchangeVariantDTO) {
	cycleID := oc.ID().Bytes()

	exchanges := make([]ExchangeDTO, 0, len(oc.Exchanges()))
	variants := make([]ExchangeVariantDTO, 0)
	for _, ex := range oc.Exchanges() {
		exchangeID := ex.ID().Bytes()
		exchanges = append(exchanges, ExchangeDTO{
			ID:                   exchangeID,
			OrderCycleID:         cycleID,
			SenderID:             ex.SenderID().Bytes(),
			ReceiverID:           ex.ReceiverID().Bytes(),
			Incoming:             ex.IsIncoming(),
			ReceivalInstructions: ex.ReceivalInstructions(),
			PickupTime:           ex.PickupTime(),
			PickupInstructions:   ex.PickupInstructions(),
		})
		for _, variantID := range ex.VariantIDs() {
			variants = append(variants, ExchangeVariantDTO{
				ExchangeID: exchangeID,
				VariantID:  variantID.Bytes(),
			})
		}
	}

	return OrderCycleDTO{
		ID:            cycleID,
		Name:          oc.Name(),
		OrdersOpenAt:  oc.OrdersOpenAt(),
		OrdersCloseAt: oc.OrdersCloseAt(),
		CoordinatorID: oc.CoordinatorID().Bytes(),
	}, exchanges, variants
}

// toDomain rebuilds the aggregate from a row with preloaded exchanges and variants.
func toDomain(dto OrderCycleDTO) (*ordercycle.OrderCycle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	coordinatorID, err := kernel.UUIDFromBytes(dto.CoordinatorID[:])
	if err != nil {
		return nil, err
	}

	exchanges := make([]*ordercycle.Exchange, 0, len(dto.Exchanges))
	for _, exDTO := range dto.Exchanges {
		ex, exErr := exchangeToDomain(exDTO)
		if exErr != nil {
			return nil, exErr
		}
		exchanges = append(exchanges, ex)
	}

	return ordercycle.RestoreOrderCycle(id, dto.Name, coordinatorID, dto.OrdersOpenAt, dto.OrdersCloseAt, exchanges)
}

func exchangeToDomain(dto ExchangeDTO) (*ordercycle.Exchange, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.OrderCycleID, dto.SenderID, dto.ReceiverID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	variantIDs := make([]kernel.UUID, 0, len(dto.Variants))
	for _, v := range dto.Variants {
		variantID, err := kernel.UUIDFromBytes(v.VariantID[:])
		if err != nil {
			return nil, err
		}
		variantIDs = append(variantIDs, variantID)
	}

	return ordercycle.RestoreExchange(
		ids[0], ids[1], ids[2], ids[3],
		dto.Incoming,
		variantIDs,
		dto.ReceivalInstructions,
		dto.PickupTime,
		dto.PickupInstructions,
	)
}
