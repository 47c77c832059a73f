package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DefaultCloseWindow is how far back closed cycles stay listed when the
// caller gives no explicit bound.
const DefaultCloseWindow = 31 * 24 * time.Hour

// MsgUnknownUser is returned for actors with no account.
const MsgUnknownUser = "Unknown user"

// ListOrderCyclesQueryHandler reads the order cycle list with raw SQL.
//
// A user sees a cycle when they are an admin, when they manage its
// coordinator, or when they manage an enterprise taking part in one of its
// exchanges. Managing means owning the enterprise or holding a role on it.
type ListOrderCyclesQueryHandler struct {
	db          *gorm.DB
	clock       kernel.Clock
	closeWindow time.Duration
}

// NewListOrderCyclesQueryHandler creates the listing handler. A non-positive
// closeWindow falls back to DefaultCloseWindow.
func NewListOrderCyclesQueryHandler(db *gorm.DB, clock kernel.Clock, closeWindow time.Duration) ListOrderCyclesQueryHandler {
	if closeWindow <= 0 {
		closeWindow = DefaultCloseWindow
	}
	return ListOrderCyclesQueryHandler{db: db, clock: clock, closeWindow: closeWindow}
}

// Handle returns the visible cycles ordered by opening time, then name.
// Cycles without an opening time come last.
func (h ListOrderCyclesQueryHandler) Handle(
	ctx context.Context,
	query ListOrderCyclesQuery,
) ([]ListOrderCyclesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actorID := query.ActorID().Bytes()
	var admin bool
	err := h.db.WithContext(ctx).Raw(`SELECT admin FROM users WHERE id = ?`, actorID).Row().Scan(&admin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewAuthorizationError("list order cycles", MsgUnknownUser)
	}
	if err != nil {
		return nil, err
	}

	closeAfter := h.clock.Now().Add(-h.closeWindow)
	if query.CloseAfter() != nil {
		closeAfter = *query.CloseAfter()
	}

	excluded := make([]string, 0, len(query.IDNotIn()))
	for _, id := range query.IDNotIn() {
		excluded = append(excluded, id.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		WITH managed AS (
			SELECT id FROM enterprises WHERE owner_id = @actor
			UNION
			SELECT enterprise_id FROM enterprise_roles WHERE user_id = @actor
		)
		SELECT
			oc.id,
			oc.name,
			oc.orders_open_at,
			oc.orders_close_at,
			oc.coordinator_id,
			COALESCE(c.name, ''),
			(@admin OR oc.coordinator_id IN (SELECT id FROM managed)) AS editable
		FROM order_cycles oc
		LEFT JOIN enterprises c ON c.id = oc.coordinator_id
		WHERE (
			@admin
			OR oc.coordinator_id IN (SELECT id FROM managed)
			OR EXISTS (
				SELECT 1 FROM exchanges x
				WHERE x.order_cycle_id = oc.id
				AND (x.sender_id IN (SELECT id FROM managed) OR x.receiver_id IN (SELECT id FROM managed))
			)
		)
		AND (oc.orders_close_at > @close_after OR oc.orders_close_at IS NULL)
		AND oc.id <> ALL(CAST(@excluded AS uuid[]))
		ORDER BY oc.orders_open_at ASC NULLS LAST, oc.name, oc.id
	`, map[string]any{
		"actor":       actorID,
		"admin":       admin,
		"close_after": closeAfter,
		"excluded":    pq.Array(excluded),
	}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cycles := make([]ListOrderCyclesQueryResponse, 0)
	for rows.Next() {
		var (
			row                ListOrderCyclesQueryResponse
			id, coordinatorID  uuid.UUID
			openAt, closeAtRaw sql.NullTime
		)
		if err = rows.Scan(&id, &row.Name, &openAt, &closeAtRaw, &coordinatorID, &row.CoordinatorName, &row.Editable); err != nil {
			return nil, err
		}

		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if row.CoordinatorID, err = kernel.UUIDFromBytes(coordinatorID[:]); err != nil {
			return nil, err
		}
		row.OrdersOpenAt = nullTime(openAt)
		row.OrdersCloseAt = nullTime(closeAtRaw)
		cycles = append(cycles, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return cycles, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
