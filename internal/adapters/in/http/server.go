package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ordercycles/internal/core/application/usecases/commands"
	"ordercycles/internal/core/application/usecases/queries"
	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// ListingPath is where destroy and notify redirect to.
const ListingPath = "/admin/order_cycles"

// Operation labels used in metrics and logs.
const (
	opList       = "list"
	opSelect     = "select_coordinator"
	opCreate     = "create"
	opUpdate     = "update"
	opBulkUpdate = "bulk_update"
	opDestroy    = "destroy"
	opNotify     = "notify_producers"
)

type (
	UpdateOrderCycleHandler interface {
		Handle(ctx context.Context, command commands.UpdateOrderCycleCommand) (commands.OrderCycleResult, error)
	}
	BulkUpdateOrderCyclesHandler interface {
		Handle(ctx context.Context, command commands.BulkUpdateOrderCyclesCommand) (commands.BulkUpdateResult, error)
	}
	CreateOrderCycleHandler interface {
		Handle(ctx context.Context, command commands.CreateOrderCycleCommand) (commands.OrderCycleResult, error)
	}
	DestroyOrderCycleHandler interface {
		Handle(ctx context.Context, command commands.DestroyOrderCycleCommand) (commands.DestroyResult, error)
	}
	NotifyProducersHandler interface {
		Handle(ctx context.Context, command commands.NotifyProducersCommand) (commands.NotifyProducersResult, error)
	}
	ListOrderCyclesHandler interface {
		Handle(ctx context.Context, query queries.ListOrderCyclesQuery) ([]queries.ListOrderCyclesQueryResponse, error)
	}
	SelectCoordinatorHandler interface {
		Handle(ctx context.Context, query queries.SelectCoordinatorQuery) (queries.SelectCoordinatorQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	Update            UpdateOrderCycleHandler
	BulkUpdate        BulkUpdateOrderCyclesHandler
	Create            CreateOrderCycleHandler
	Destroy           DestroyOrderCycleHandler
	NotifyProducers   NotifyProducersHandler
	List              ListOrderCyclesHandler
	SelectCoordinator SelectCoordinatorHandler
}

// Server translates HTTP requests into commands and queries and their
// results back into JSON.
type Server struct {
	handlers  Handlers
	metrics   *Metrics
	validator echo.MiddlewareFunc
	logger    logrus.FieldLogger
}

// NewServer creates the HTTP server. It fails when the embedded API
// description cannot be loaded.
func NewServer(handlers Handlers, metrics *Metrics, logger logrus.FieldLogger) (*Server, error) {
	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return nil, err
	}

	return &Server{
		handlers:  handlers,
		metrics:   metrics,
		validator: validator,
		logger:    logger.WithField("component", "http_server"),
	}, nil
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.Use(s.metrics.Middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	admin := e.Group(ListingPath, ActorMiddleware(), s.validator)
	admin.GET("", s.ListOrderCycles)
	admin.GET("/new", s.SelectCoordinator)
	admin.POST("", s.CreateOrderCycle)
	admin.PUT("/bulk_update", s.BulkUpdateOrderCycles)
	admin.PUT("/:id", s.UpdateOrderCycle)
	admin.DELETE("/:id", s.DestroyOrderCycle)
	admin.POST("/:id/notify_producers", s.NotifyProducers)
}

// ListOrderCycles handles GET /admin/order_cycles.
func (s *Server) ListOrderCycles(c echo.Context) error {
	var closeAfter *time.Time
	if raw := c.QueryParam("q[orders_close_at_gt]"); raw != "" {
		t, err := parseTime(raw)
		if err != nil {
			return badRequest(c, "Invalid q[orders_close_at_gt]: "+err.Error())
		}
		closeAfter = &t
	}

	var rawIDs *[]string
	if err := runtime.BindQueryParameter("form", true, false, "q[id_not_in][]", c.QueryParams(), &rawIDs); err != nil {
		return badRequest(c, "Invalid q[id_not_in]: "+err.Error())
	}
	var idNotIn []kernel.UUID
	for _, raw := range deref(rawIDs) {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(c, "Invalid q[id_not_in]: "+err.Error())
		}
		idNotIn = append(idNotIn, id)
	}

	query, err := queries.NewListOrderCyclesQuery(actorFrom(c), closeAfter, idNotIn)
	if err != nil {
		return s.fail(c, opList, err)
	}

	rows, err := s.handlers.List.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, opList, err)
	}

	s.metrics.observe(opList, outcomeSuccess)
	return c.JSON(http.StatusOK, newOrderCycleRows(rows))
}

// SelectCoordinator handles GET /admin/order_cycles/new.
func (s *Server) SelectCoordinator(c echo.Context) error {
	var rawCoordinatorID *string
	if err := runtime.BindQueryParameter("form", true, false, "coordinator_id", c.QueryParams(), &rawCoordinatorID); err != nil {
		return badRequest(c, "Invalid coordinator_id: "+err.Error())
	}
	coordinatorID, err := optionalUUID(rawCoordinatorID)
	if err != nil {
		return badRequest(c, "Invalid coordinator_id: "+err.Error())
	}

	query, err := queries.NewSelectCoordinatorQuery(actorFrom(c), coordinatorID)
	if err != nil {
		return s.fail(c, opSelect, err)
	}

	response, err := s.handlers.SelectCoordinator.Handle(c.Request().Context(), query)
	if err != nil {
		var authErr *errs.AuthorizationError
		if !errors.As(err, &authErr) {
			return s.fail(c, opSelect, err)
		}
		setFlash(c, flashErrorCookie, authErr.Message)
		s.metrics.observe(opSelect, outcomeForbidden)
		return c.JSON(http.StatusForbidden, CoordinatorSelectionDeniedResponse{
			Errors:                       authErr.Message,
			CoordinatorSelectionResponse: newCoordinatorSelection(response),
		})
	}

	s.metrics.observe(opSelect, outcomeSuccess)
	return c.JSON(http.StatusOK, newCoordinatorSelection(response))
}

// CreateOrderCycle handles POST /admin/order_cycles.
func (s *Server) CreateOrderCycle(c echo.Context) error {
	var req CreateOrderCycleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	coordinatorID, err := optionalUUID(req.CoordinatorID)
	if err != nil {
		return badRequest(c, "Invalid coordinator_id: "+err.Error())
	}
	changes, err := req.OrderCycle.toChangeSet()
	if err != nil {
		return s.fail(c, opCreate, err)
	}

	name := ""
	if changes.Name != nil {
		name = *changes.Name
	}
	cmd, err := commands.NewCreateOrderCycleCommand(
		actorFrom(c),
		coordinatorID,
		name,
		changes.OrdersOpenAt.Value,
		changes.OrdersCloseAt.Value,
		changes.IncomingExchanges,
		changes.OutgoingExchanges,
	)
	if err != nil {
		return s.fail(c, opCreate, err)
	}

	result, err := s.handlers.Create.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, opCreate, err)
	}
	if !result.Success {
		s.metrics.observe(opCreate, outcomeInvalid)
		return c.JSON(http.StatusUnprocessableEntity, newResultResponse(result))
	}

	s.metrics.observe(opCreate, outcomeSuccess)
	return c.JSON(http.StatusCreated, newResultResponse(result))
}

// UpdateOrderCycle handles PUT /admin/order_cycles/:id.
func (s *Server) UpdateOrderCycle(c echo.Context) error {
	id, err := orderCycleID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req UpdateOrderCycleRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	changes, err := req.OrderCycle.toChangeSet()
	if err != nil {
		return s.fail(c, opUpdate, err)
	}

	cmd, err := commands.NewUpdateOrderCycleCommand(actorFrom(c), id, changes, bool(req.Reloading))
	if err != nil {
		return s.fail(c, opUpdate, err)
	}

	result, err := s.handlers.Update.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, opUpdate, err)
	}
	if !result.Success {
		s.metrics.observe(opUpdate, outcomeInvalid)
		return c.JSON(http.StatusUnprocessableEntity, newResultResponse(result))
	}

	if result.Notice != "" {
		setFlash(c, flashNoticeCookie, result.Notice)
	}
	s.metrics.observe(opUpdate, outcomeSuccess)
	return c.JSON(http.StatusOK, newResultResponse(result))
}

// BulkUpdateOrderCycles handles PUT /admin/order_cycles/bulk_update.
func (s *Server) BulkUpdateOrderCycles(c echo.Context) error {
	var req BulkUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	rows, rowErrors := req.toRows()
	response := BulkUpdateResponse{Success: len(rowErrors) == 0, Errors: rowErrors}

	if len(rows) > 0 || len(rowErrors) == 0 {
		cmd, err := commands.NewBulkUpdateOrderCyclesCommand(actorFrom(c), rows)
		if err != nil {
			return s.fail(c, opBulkUpdate, err)
		}

		result, err := s.handlers.BulkUpdate.Handle(c.Request().Context(), cmd)
		if err != nil {
			return s.fail(c, opBulkUpdate, err)
		}

		response.Success = response.Success && result.Success
		for index, fields := range result.Errors {
			if response.Errors == nil {
				response.Errors = make(map[string]errs.FieldErrors)
			}
			response.Errors[index] = fields
		}
	}

	if !response.Success {
		s.metrics.observe(opBulkUpdate, outcomeInvalid)
		return c.JSON(http.StatusUnprocessableEntity, response)
	}

	s.metrics.observe(opBulkUpdate, outcomeSuccess)
	return c.JSON(http.StatusOK, response)
}

// DestroyOrderCycle handles DELETE /admin/order_cycles/:id. Both success
// and a refusal because of orders or schedules redirect to the listing
// with a flash message.
func (s *Server) DestroyOrderCycle(c echo.Context) error {
	id, err := orderCycleID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewDestroyOrderCycleCommand(actorFrom(c), id)
	if err != nil {
		return s.fail(c, opDestroy, err)
	}

	result, err := s.handlers.Destroy.Handle(c.Request().Context(), cmd)
	var conflict *errs.DependencyConflictError
	if errors.As(err, &conflict) {
		s.metrics.observe(opDestroy, outcomeConflict)
		setFlash(c, flashErrorCookie, conflict.Message)
		return c.Redirect(http.StatusSeeOther, ListingPath)
	}
	if err != nil {
		return s.fail(c, opDestroy, err)
	}

	s.metrics.observe(opDestroy, outcomeSuccess)
	setFlash(c, flashNoticeCookie, result.Notice)
	return c.Redirect(http.StatusSeeOther, ListingPath)
}

// NotifyProducers handles POST /admin/order_cycles/:id/notify_producers.
func (s *Server) NotifyProducers(c echo.Context) error {
	id, err := orderCycleID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewNotifyProducersCommand(actorFrom(c), id)
	if err != nil {
		return s.fail(c, opNotify, err)
	}

	result, err := s.handlers.NotifyProducers.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, opNotify, err)
	}

	s.metrics.observe(opNotify, outcomeSuccess)
	setFlash(c, flashNoticeCookie, result.Notice)
	c.Response().Header().Set(echo.HeaderLocation, ListingPath)
	return c.JSON(http.StatusSeeOther, NotifyProducersResponse{
		Queued: result.Queued,
		JobID:  result.JobID.String(),
	})
}

func orderCycleID(c echo.Context) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, c.Param("id"), &raw)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("invalid order cycle id: %w", err)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("invalid order cycle id: %w", err)
	}
	return id, nil
}

func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func deref(values *[]string) []string {
	if values == nil {
		return nil
	}
	return *values
}
