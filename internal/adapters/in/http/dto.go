package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ordercycles/internal/core/application/usecases/commands"
	"ordercycles/internal/core/application/usecases/queries"
	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/ordercycle"
	"ordercycles/internal/pkg/errs"
)

// timeLayouts are the timestamp forms accepted from clients, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format %q", s)
}

// NullableTime is a timestamp attribute that tells an absent key apart from
// an explicit null. Present is only set when the key appears in the body.
type NullableTime struct {
	Present bool
	Value   *time.Time
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Present = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		n.Value = nil
		return nil
	}

	t, err := parseTime(raw)
	if err != nil {
		return err
	}
	n.Value = &t
	return nil
}

func (n NullableTime) toOptional() ordercycle.OptionalTime {
	if !n.Present {
		return ordercycle.OptionalTime{}
	}
	if n.Value == nil {
		return ordercycle.ClearTime()
	}
	return ordercycle.SetTime(*n.Value)
}

// Flag accepts JSON booleans as well as the "1"/"true" strings sent by forms.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(data), `"`) {
	case "true", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

// ExchangeRequest is one exchange of an order cycle form.
type ExchangeRequest struct {
	EnterpriseID         string          `json:"enterprise_id"`
	Variants             map[string]bool `json:"variants"`
	ReceivalInstructions *string         `json:"receival_instructions"`
	PickupTime           *string         `json:"pickup_time"`
	PickupInstructions   *string         `json:"pickup_instructions"`
}

// OrderCycleAttributes is the order_cycle object of create and update requests.
// A missing exchange list leaves that direction alone; an empty one removes
// every exchange the user may edit.
type OrderCycleAttributes struct {
	Name              *string           `json:"name"`
	OrdersOpenAt      NullableTime      `json:"orders_open_at"`
	OrdersCloseAt     NullableTime      `json:"orders_close_at"`
	IncomingExchanges []ExchangeRequest `json:"incoming_exchanges"`
	OutgoingExchanges []ExchangeRequest `json:"outgoing_exchanges"`
}

func (a OrderCycleAttributes) toChangeSet() (ordercycle.ChangeSet, error) {
	incoming, err := toExchangeEdits("incoming_exchanges", a.IncomingExchanges)
	if err != nil {
		return ordercycle.ChangeSet{}, err
	}
	outgoing, err := toExchangeEdits("outgoing_exchanges", a.OutgoingExchanges)
	if err != nil {
		return ordercycle.ChangeSet{}, err
	}

	return ordercycle.ChangeSet{
		Name:              a.Name,
		OrdersOpenAt:      a.OrdersOpenAt.toOptional(),
		OrdersCloseAt:     a.OrdersCloseAt.toOptional(),
		IncomingExchanges: incoming,
		OutgoingExchanges: outgoing,
	}, nil
}

func toExchangeEdits(param string, requests []ExchangeRequest) ([]ordercycle.ExchangeEdit, error) {
	if requests == nil {
		return nil, nil
	}

	edits := make([]ordercycle.ExchangeEdit, 0, len(requests))
	for i, r := range requests {
		enterpriseID, err := kernel.UUIDFromString(r.EnterpriseID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("%s[%d].enterprise_id", param, i), err)
		}

		variants := make(map[kernel.UUID]bool, len(r.Variants))
		for rawID, included := range r.Variants {
			variantID, err := kernel.UUIDFromString(rawID)
			if err != nil {
				return nil, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("%s[%d].variants", param, i), err)
			}
			variants[variantID] = included
		}

		edits = append(edits, ordercycle.ExchangeEdit{
			EnterpriseID:         enterpriseID,
			Variants:             variants,
			ReceivalInstructions: r.ReceivalInstructions,
			PickupTime:           r.PickupTime,
			PickupInstructions:   r.PickupInstructions,
		})
	}
	return edits, nil
}

type CreateOrderCycleRequest struct {
	CoordinatorID *string              `json:"coordinator_id"`
	OrderCycle    OrderCycleAttributes `json:"order_cycle"`
}

type UpdateOrderCycleRequest struct {
	OrderCycle OrderCycleAttributes `json:"order_cycle"`
	Reloading  Flag                 `json:"reloading"`
}

// BulkRowRequest is one entry of order_cycle_set.collection_attributes.
type BulkRowRequest struct {
	ID            string       `json:"id"`
	Name          *string      `json:"name"`
	OrdersOpenAt  NullableTime `json:"orders_open_at"`
	OrdersCloseAt NullableTime `json:"orders_close_at"`
}

type BulkUpdateRequest struct {
	OrderCycleSet struct {
		CollectionAttributes map[string]BulkRowRequest `json:"collection_attributes"`
	} `json:"order_cycle_set"`
}

// MsgInvalidRowID is reported for a bulk row whose id is not a valid order cycle id.
const MsgInvalidRowID = "is not a valid order cycle id"

// toRows converts the submitted rows. Rows with a malformed id are left out
// and reported in rowErrors under their index, so the other rows still apply.
func (r BulkUpdateRequest) toRows() (rows map[string]commands.BulkRow, rowErrors map[string]errs.FieldErrors) {
	rows = make(map[string]commands.BulkRow, len(r.OrderCycleSet.CollectionAttributes))
	for index, row := range r.OrderCycleSet.CollectionAttributes {
		id, err := kernel.UUIDFromString(row.ID)
		if err != nil {
			if rowErrors == nil {
				rowErrors = make(map[string]errs.FieldErrors)
			}
			fields := rowErrors[index]
			fields.Add("id", MsgInvalidRowID)
			rowErrors[index] = fields
			continue
		}
		rows[index] = commands.BulkRow{
			OrderCycleID: id,
			Changes: ordercycle.ChangeSet{
				Name:          row.Name,
				OrdersOpenAt:  row.OrdersOpenAt.toOptional(),
				OrdersCloseAt: row.OrdersCloseAt.toOptional(),
			},
		}
	}
	return rows, rowErrors
}

// ResultResponse is the {success, errors} body of create and update.
type ResultResponse struct {
	Success bool             `json:"success"`
	Errors  errs.FieldErrors `json:"errors,omitempty"`
	ID      string           `json:"id,omitempty"`
	Notice  string           `json:"notice,omitempty"`
}

func newResultResponse(result commands.OrderCycleResult) ResultResponse {
	response := ResultResponse{
		Success: result.Success,
		Errors:  result.Errors,
		Notice:  result.Notice,
	}
	if result.Success && result.OrderCycleID.Validate() == nil {
		response.ID = result.OrderCycleID.String()
	}
	return response
}

type BulkUpdateResponse struct {
	Success bool                        `json:"success"`
	Errors  map[string]errs.FieldErrors `json:"errors,omitempty"`
}

// ErrorResponse carries either a message or a field map under "errors".
type ErrorResponse struct {
	Errors any `json:"errors"`
}

type OrderCycleRowResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	OrdersOpenAt    *time.Time `json:"orders_open_at"`
	OrdersCloseAt   *time.Time `json:"orders_close_at"`
	CoordinatorID   string     `json:"coordinator_id"`
	CoordinatorName string     `json:"coordinator_name"`
	Editable        bool       `json:"editable"`
}

func newOrderCycleRows(rows []queries.ListOrderCyclesQueryResponse) []OrderCycleRowResponse {
	response := make([]OrderCycleRowResponse, len(rows))
	for i, row := range rows {
		response[i] = OrderCycleRowResponse{
			ID:              row.ID.String(),
			Name:            row.Name,
			OrdersOpenAt:    row.OrdersOpenAt,
			OrdersCloseAt:   row.OrdersCloseAt,
			CoordinatorID:   row.CoordinatorID.String(),
			CoordinatorName: row.CoordinatorName,
			Editable:        row.Editable,
		}
	}
	return response
}

type CoordinatorOptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CoordinatorSelectionResponse struct {
	Coordinator       *CoordinatorOptionResponse  `json:"coordinator"`
	Candidates        []CoordinatorOptionResponse `json:"candidates"`
	SelectionRequired bool                        `json:"selection_required"`
}

func newCoordinatorSelection(r queries.SelectCoordinatorQueryResponse) CoordinatorSelectionResponse {
	response := CoordinatorSelectionResponse{
		Candidates:        make([]CoordinatorOptionResponse, len(r.Candidates)),
		SelectionRequired: r.SelectionRequired,
	}
	for i, c := range r.Candidates {
		response.Candidates[i] = CoordinatorOptionResponse{ID: c.ID.String(), Name: c.Name}
	}
	if r.Coordinator != nil {
		response.Coordinator = &CoordinatorOptionResponse{ID: r.Coordinator.ID.String(), Name: r.Coordinator.Name}
	}
	return response
}

// CoordinatorSelectionDeniedResponse is the 403 body of a refused
// coordinator, listing the enterprises the user may pick instead.
type CoordinatorSelectionDeniedResponse struct {
	Errors string `json:"errors"`
	CoordinatorSelectionResponse
}

type NotifyProducersResponse struct {
	Queued bool   `json:"queued"`
	JobID  string `json:"job_id,omitempty"`
}
