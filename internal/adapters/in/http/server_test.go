package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	httpadapter "ordercycles/internal/adapters/in/http"
	"ordercycles/internal/core/application/usecases/commands"
	"ordercycles/internal/core/application/usecases/queries"
	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/services"
	"ordercycles/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUpdateHandler struct{ mock.Mock }

func (m *MockUpdateHandler) Handle(ctx context.Context, cmd commands.UpdateOrderCycleCommand) (commands.OrderCycleResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.OrderCycleResult), args.Error(1)
}

type MockBulkUpdateHandler struct{ mock.Mock }

func (m *MockBulkUpdateHandler) Handle(ctx context.Context, cmd commands.BulkUpdateOrderCyclesCommand) (commands.BulkUpdateResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.BulkUpdateResult), args.Error(1)
}

type MockCreateHandler struct{ mock.Mock }

func (m *MockCreateHandler) Handle(ctx context.Context, cmd commands.CreateOrderCycleCommand) (commands.OrderCycleResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.OrderCycleResult), args.Error(1)
}

type MockDestroyHandler struct{ mock.Mock }

func (m *MockDestroyHandler) Handle(ctx context.Context, cmd commands.DestroyOrderCycleCommand) (commands.DestroyResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.DestroyResult), args.Error(1)
}

type MockNotifyHandler struct{ mock.Mock }

func (m *MockNotifyHandler) Handle(ctx context.Context, cmd commands.NotifyProducersCommand) (commands.NotifyProducersResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.NotifyProducersResult), args.Error(1)
}

type MockListHandler struct{ mock.Mock }

func (m *MockListHandler) Handle(ctx context.Context, query queries.ListOrderCyclesQuery) ([]queries.ListOrderCyclesQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.ListOrderCyclesQueryResponse), args.Error(1)
}

type MockSelectCoordinatorHandler struct{ mock.Mock }

func (m *MockSelectCoordinatorHandler) Handle(ctx context.Context, query queries.SelectCoordinatorQuery) (queries.SelectCoordinatorQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.SelectCoordinatorQueryResponse), args.Error(1)
}

type fixture struct {
	echo     *echo.Echo
	actorID  kernel.UUID
	update   *MockUpdateHandler
	bulk     *MockBulkUpdateHandler
	create   *MockCreateHandler
	destroy  *MockDestroyHandler
	notify   *MockNotifyHandler
	list     *MockListHandler
	selector *MockSelectCoordinatorHandler
	logs     *test.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	f := &fixture{
		echo:     echo.New(),
		actorID:  kernel.NewUUID(),
		update:   new(MockUpdateHandler),
		bulk:     new(MockBulkUpdateHandler),
		create:   new(MockCreateHandler),
		destroy:  new(MockDestroyHandler),
		notify:   new(MockNotifyHandler),
		list:     new(MockListHandler),
		selector: new(MockSelectCoordinatorHandler),
		logs:     hook,
	}

	server, err := httpadapter.NewServer(httpadapter.Handlers{
		Update:            f.update,
		BulkUpdate:        f.bulk,
		Create:            f.create,
		Destroy:           f.destroy,
		NotifyProducers:   f.notify,
		List:              f.list,
		SelectCoordinator: f.selector,
	}, httpadapter.NewMetrics(), logger)
	require.NoError(t, err)
	server.Register(f.echo)

	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(httpadapter.UserIDHeader, f.actorID.String())

	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func flash(t *testing.T, rec *httptest.ResponseRecorder, name string) string {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			value, err := url.QueryUnescape(cookie.Value)
			require.NoError(t, err)
			return value
		}
	}
	return ""
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestAdminRoutes_RequireUserHeader(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/admin/order_cycles", nil)
	rec := httptest.NewRecorder()

	f.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	f.list.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestListOrderCycles_PassesFiltersAndRendersRows(t *testing.T) {
	f := newFixture(t)
	excluded := kernel.NewUUID()
	rowID := kernel.NewUUID()
	coordinatorID := kernel.NewUUID()
	open := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	f.list.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrderCyclesQuery) bool {
		return q.ActorID() == f.actorID &&
			q.CloseAfter() != nil && q.CloseAfter().Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) &&
			len(q.IDNotIn()) == 1 && q.IDNotIn()[0] == excluded
	})).Return([]queries.ListOrderCyclesQueryResponse{{
		ID:              rowID,
		Name:            "Week 22",
		OrdersOpenAt:    &open,
		CoordinatorID:   coordinatorID,
		CoordinatorName: "Hub",
		Editable:        true,
	}}, nil)

	target := "/admin/order_cycles?" + url.Values{
		"q[orders_close_at_gt]": {"2024-05-01"},
		"q[id_not_in][]":        {excluded.String()},
	}.Encode()
	rec := f.do(http.MethodGet, target, "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, rowID.String(), rows[0]["id"])
	assert.Equal(t, "Hub", rows[0]["coordinator_name"])
	assert.Equal(t, true, rows[0]["editable"])
	assert.Nil(t, rows[0]["orders_close_at"])
	f.list.AssertExpectations(t)
}

func TestListOrderCycles_InvalidCloseAfter(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/admin/order_cycles?q%5Borders_close_at_gt%5D=yesterday", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.list.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestSelectCoordinator_ReturnsCandidates(t *testing.T) {
	f := newFixture(t)
	hubA, hubB := kernel.NewUUID(), kernel.NewUUID()
	f.selector.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.SelectCoordinatorQuery) bool {
		return q.CoordinatorID() == nil
	})).Return(queries.SelectCoordinatorQueryResponse{
		Candidates:        []queries.CoordinatorOption{{ID: hubA, Name: "A"}, {ID: hubB, Name: "B"}},
		SelectionRequired: true,
	}, nil)

	rec := f.do(http.MethodGet, "/admin/order_cycles/new", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["selection_required"])
	assert.Nil(t, body["coordinator"])
	assert.Len(t, body["candidates"], 2)
}

func TestSelectCoordinator_NotPermittedSetsFlashError(t *testing.T) {
	f := newFixture(t)
	requested := kernel.NewUUID()
	hub := kernel.NewUUID()
	f.selector.On("Handle", mock.Anything, mock.Anything).Return(
		queries.SelectCoordinatorQueryResponse{
			Candidates:        []queries.CoordinatorOption{{ID: hub, Name: "Hub"}},
			SelectionRequired: true,
		},
		errs.NewAuthorizationError("create order cycle", services.MsgCoordinatorNotPermitted),
	)

	rec := f.do(http.MethodGet, "/admin/order_cycles/new?coordinator_id="+requested.String(), "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, services.MsgCoordinatorNotPermitted, flash(t, rec, "flash_error"))
	body := decode(t, rec)
	assert.Equal(t, services.MsgCoordinatorNotPermitted, body["errors"])
	assert.Equal(t, true, body["selection_required"])
	assert.Equal(t, []any{map[string]any{"id": hub.String(), "name": "Hub"}}, body["candidates"])
}

func TestCreateOrderCycle_Success(t *testing.T) {
	f := newFixture(t)
	coordinatorID := kernel.NewUUID()
	createdID := kernel.NewUUID()
	f.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCycleCommand) bool {
		return cmd.Name() == "Week 1" &&
			cmd.CoordinatorID() != nil && *cmd.CoordinatorID() == coordinatorID &&
			cmd.OrdersOpenAt() != nil && cmd.OrdersCloseAt() == nil
	})).Return(commands.OrderCycleResult{Success: true, OrderCycleID: createdID, Notice: commands.NoticeCreated}, nil)

	body := `{"coordinator_id":"` + coordinatorID.String() + `","order_cycle":{"name":"Week 1","orders_open_at":"2024-06-01T09:00:00Z"}}`
	rec := f.do(http.MethodPost, "/admin/order_cycles", body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	response := decode(t, rec)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, createdID.String(), response["id"])
}

func TestCreateOrderCycle_ValidationErrors(t *testing.T) {
	f := newFixture(t)
	f.create.On("Handle", mock.Anything, mock.Anything).Return(commands.OrderCycleResult{
		Success: false,
		Errors:  errs.FieldErrors{"name": {"can't be blank"}},
	}, nil)

	rec := f.do(http.MethodPost, "/admin/order_cycles", `{"order_cycle":{}}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	response := decode(t, rec)
	assert.Equal(t, false, response["success"])
	assert.Contains(t, response["errors"], "name")
}

func TestUpdateOrderCycle_ReloadingSetsNotice(t *testing.T) {
	f := newFixture(t)
	ocID := kernel.NewUUID()
	f.update.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateOrderCycleCommand) bool {
		changes := cmd.Changes()
		return cmd.OrderCycleID() == ocID &&
			cmd.Reloading() &&
			changes.Name != nil && *changes.Name == "Renamed" &&
			!changes.OrdersOpenAt.Set &&
			changes.OrdersCloseAt.Set && changes.OrdersCloseAt.Value == nil &&
			changes.IncomingExchanges != nil && len(changes.IncomingExchanges) == 0 &&
			changes.OutgoingExchanges == nil
	})).Return(commands.OrderCycleResult{Success: true, OrderCycleID: ocID, Notice: commands.NoticeUpdated}, nil)

	body := `{"reloading":"1","order_cycle":{"name":"Renamed","orders_close_at":null,"incoming_exchanges":[]}}`
	rec := f.do(http.MethodPut, "/admin/order_cycles/"+ocID.String(), body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, commands.NoticeUpdated, flash(t, rec, "flash_notice"))
	f.update.AssertExpectations(t)
}

func TestUpdateOrderCycle_WithoutReloadingHasNoNotice(t *testing.T) {
	f := newFixture(t)
	ocID := kernel.NewUUID()
	f.update.On("Handle", mock.Anything, mock.Anything).Return(commands.OrderCycleResult{Success: true, OrderCycleID: ocID}, nil)

	rec := f.do(http.MethodPut, "/admin/order_cycles/"+ocID.String(), `{"order_cycle":{"name":"Renamed"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, flash(t, rec, "flash_notice"))
}

func TestUpdateOrderCycle_ExchangeEdits(t *testing.T) {
	f := newFixture(t)
	ocID := kernel.NewUUID()
	supplierID := kernel.NewUUID()
	variantID := kernel.NewUUID()
	f.update.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateOrderCycleCommand) bool {
		edits := cmd.Changes().IncomingExchanges
		return len(edits) == 1 &&
			edits[0].EnterpriseID == supplierID &&
			edits[0].Variants[variantID] &&
			edits[0].ReceivalInstructions != nil && *edits[0].ReceivalInstructions == "Back door"
	})).Return(commands.OrderCycleResult{Success: true, OrderCycleID: ocID}, nil)

	body := `{"order_cycle":{"incoming_exchanges":[{"enterprise_id":"` + supplierID.String() +
		`","variants":{"` + variantID.String() + `":true},"receival_instructions":"Back door"}]}}`
	rec := f.do(http.MethodPut, "/admin/order_cycles/"+ocID.String(), body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	f.update.AssertExpectations(t)
}

func TestUpdateOrderCycle_RejectedByAPIDescription(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPut, "/admin/order_cycles/"+kernel.NewUUID().String(), `{"order_cycle":{"incoming_exchanges":[{"variants":{}}]}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.update.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestUpdateOrderCycle_InvalidID(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPut, "/admin/order_cycles/not-a-uuid", `{"order_cycle":{}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderCycle_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		result commands.OrderCycleResult
		err    error
		status int
	}{
		{
			name:   "validation",
			result: commands.OrderCycleResult{Errors: errs.FieldErrors{"orders_close_at": {"must be after open"}}},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "not authorized",
			err:    errs.NewAuthorizationError("update order cycle", commands.MsgCannotUpdate),
			status: http.StatusForbidden,
		},
		{
			name:   "not found",
			err:    errs.NewObjectNotFoundError("order_cycle", "x"),
			status: http.StatusNotFound,
		},
		{
			name:   "unexpected",
			err:    assert.AnError,
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.update.On("Handle", mock.Anything, mock.Anything).Return(tt.result, tt.err)

			rec := f.do(http.MethodPut, "/admin/order_cycles/"+kernel.NewUUID().String(), `{"order_cycle":{"name":"x"}}`)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestBulkUpdate_NoData(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPut, "/admin/order_cycles/bulk_update", `{}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "no data supplied", decode(t, rec)["errors"])
	f.bulk.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestBulkUpdate_AppliesRows(t *testing.T) {
	f := newFixture(t)
	ocID := kernel.NewUUID()
	f.bulk.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.BulkUpdateOrderCyclesCommand) bool {
		row, ok := cmd.Row("0")
		return ok && row.OrderCycleID == ocID &&
			row.Changes.Name != nil && *row.Changes.Name == "Updated" &&
			row.Changes.OrdersOpenAt.Set && row.Changes.OrdersOpenAt.Value != nil
	})).Return(commands.BulkUpdateResult{Success: true, Updated: []string{"0"}}, nil)

	body := `{"order_cycle_set":{"collection_attributes":{"0":{"id":"` + ocID.String() +
		`","name":"Updated","orders_open_at":"2024-06-01 09:00"}}}}`
	rec := f.do(http.MethodPut, "/admin/order_cycles/bulk_update", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decode(t, rec)["success"])
	f.bulk.AssertExpectations(t)
}

func TestBulkUpdate_RowErrorsKeyedByIndex(t *testing.T) {
	f := newFixture(t)
	f.bulk.On("Handle", mock.Anything, mock.Anything).Return(commands.BulkUpdateResult{
		Success: false,
		Errors:  map[string]errs.FieldErrors{"3": {"orders_close_at": {"must be after open"}}},
	}, nil)

	body := `{"order_cycle_set":{"collection_attributes":{"3":{"id":"` + kernel.NewUUID().String() + `"}}}}`
	rec := f.do(http.MethodPut, "/admin/order_cycles/bulk_update", body)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	response := decode(t, rec)
	assert.Contains(t, response["errors"], "3")
}

func TestBulkUpdate_MalformedRowIDIsARowError(t *testing.T) {
	f := newFixture(t)
	ocID := kernel.NewUUID()
	f.bulk.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.BulkUpdateOrderCyclesCommand) bool {
		_, hasBad := cmd.Row("1")
		row, ok := cmd.Row("0")
		return ok && !hasBad && row.OrderCycleID == ocID
	})).Return(commands.BulkUpdateResult{Success: true, Updated: []string{"0"}}, nil).Once()

	body := `{"order_cycle_set":{"collection_attributes":{` +
		`"0":{"id":"` + ocID.String() + `","name":"Updated"},` +
		`"1":{"id":"not-an-id","name":"Other"}}}}`
	rec := f.do(http.MethodPut, "/admin/order_cycles/bulk_update", body)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	response := decode(t, rec)
	assert.Equal(t, false, response["success"])
	assert.Equal(t, map[string]any{"1": map[string]any{"id": []any{httpadapter.MsgInvalidRowID}}}, response["errors"])
	f.bulk.AssertExpectations(t)
}

func TestBulkUpdate_OnlyMalformedRows(t *testing.T) {
	f := newFixture(t)

	body := `{"order_cycle_set":{"collection_attributes":{"0":{"id":"nope"}}}}`
	rec := f.do(http.MethodPut, "/admin/order_cycles/bulk_update", body)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Contains(t, decode(t, rec)["errors"], "0")
	f.bulk.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestDestroy_RedirectsWithNotice(t *testing.T) {
	f := newFixture(t)
	ocID := kernel.NewUUID()
	f.destroy.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DestroyOrderCycleCommand) bool {
		return cmd.OrderCycleID() == ocID && cmd.ActorID() == f.actorID
	})).Return(commands.DestroyResult{Notice: `Order cycle "Week 1" has been removed.`}, nil)

	rec := f.do(http.MethodDelete, "/admin/order_cycles/"+ocID.String(), "")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, httpadapter.ListingPath, rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, `Order cycle "Week 1" has been removed.`, flash(t, rec, "flash_notice"))
}

func TestDestroy_DependentsRedirectWithError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"orders", services.OrdersPresentError(nil), services.MsgOrdersPresent},
		{"schedule", errs.NewDependencyConflictError(errs.ReasonSchedulePresent, services.MsgSchedulePresent), services.MsgSchedulePresent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.destroy.On("Handle", mock.Anything, mock.Anything).Return(commands.DestroyResult{}, tt.err)

			rec := f.do(http.MethodDelete, "/admin/order_cycles/"+kernel.NewUUID().String(), "")

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, httpadapter.ListingPath, rec.Header().Get(echo.HeaderLocation))
			assert.Equal(t, tt.msg, flash(t, rec, "flash_error"))
		})
	}
}

func TestDestroy_Forbidden(t *testing.T) {
	f := newFixture(t)
	f.destroy.On("Handle", mock.Anything, mock.Anything).Return(
		commands.DestroyResult{},
		errs.NewAuthorizationError("delete order cycle", commands.MsgCannotDelete),
	)

	rec := f.do(http.MethodDelete, "/admin/order_cycles/"+kernel.NewUUID().String(), "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, commands.MsgCannotDelete, decode(t, rec)["errors"])
}

func TestNotifyProducers_QueuesAndRedirects(t *testing.T) {
	f := newFixture(t)
	ocID := kernel.NewUUID()
	jobID := kernel.NewUUID()
	f.notify.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.NotifyProducersCommand) bool {
		return cmd.OrderCycleID() == ocID
	})).Return(commands.NotifyProducersResult{Queued: true, JobID: jobID, Notice: commands.NoticeProducersQueued}, nil)

	rec := f.do(http.MethodPost, "/admin/order_cycles/"+ocID.String()+"/notify_producers", "")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, httpadapter.ListingPath, rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, commands.NoticeProducersQueued, flash(t, rec, "flash_notice"))
	body := decode(t, rec)
	assert.Equal(t, true, body["queued"])
	assert.Equal(t, jobID.String(), body["job_id"])
}

func TestMetrics_CountsOperations(t *testing.T) {
	f := newFixture(t)
	f.destroy.On("Handle", mock.Anything, mock.Anything).Return(commands.DestroyResult{}, services.OrdersPresentError(nil))
	f.do(http.MethodDelete, "/admin/order_cycles/"+kernel.NewUUID().String(), "")

	rec := f.do(http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `order_cycles_operations_total{operation="destroy",outcome="conflict"} 1`)
}
