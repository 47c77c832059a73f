package queries

import (
	"context"
	"errors"

	"ordercycles/internal/core/domain/model/enterprise"
	"ordercycles/internal/core/domain/services"
	"ordercycles/internal/core/ports"
	"ordercycles/internal/pkg/errs"
)

type (
	// DirectoryReader gives read access to users and enterprises.
	DirectoryReader interface {
		EnterpriseDirectory() ports.EnterpriseDirectory
		UserRepository() ports.UserRepository
	}

	// DirectoryReaderFactory creates directory readers. No transaction is
	// opened; the reads run against the connection pool.
	DirectoryReaderFactory interface {
		Create() DirectoryReader
	}
)

// SelectCoordinatorQueryHandler resolves which enterprise coordinates a new
// order cycle. Only distributors the user manages are eligible.
type SelectCoordinatorQueryHandler struct {
	factory  DirectoryReaderFactory
	resolver services.ScopeResolver
}

func NewSelectCoordinatorQueryHandler(factory DirectoryReaderFactory) SelectCoordinatorQueryHandler {
	return SelectCoordinatorQueryHandler{
		factory:  factory,
		resolver: services.NewScopeResolver(),
	}
}

// Handle returns the settled coordinator, or the candidates when the user
// manages several. A requested enterprise the user cannot coordinate with,
// or managing no distributor at all, is an *errs.AuthorizationError. A
// refused request still carries the candidates so the user can pick again.
func (h SelectCoordinatorQueryHandler) Handle(
	ctx context.Context,
	query SelectCoordinatorQuery,
) (SelectCoordinatorQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return SelectCoordinatorQueryResponse{}, err
	}

	dir := h.factory.Create()
	user, err := dir.UserRepository().Get(ctx, query.ActorID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return SelectCoordinatorQueryResponse{}, errs.NewAuthorizationError("create order cycle", MsgUnknownUser)
	}
	if err != nil {
		return SelectCoordinatorQueryResponse{}, err
	}

	managed, err := dir.EnterpriseDirectory().ManagedBy(ctx, user)
	if err != nil {
		return SelectCoordinatorQueryResponse{}, err
	}

	choice, err := h.resolver.ResolveCoordinator(managed, query.CoordinatorID())

	response := SelectCoordinatorQueryResponse{
		Candidates:        options(choice.Candidates),
		SelectionRequired: choice.SelectionRequired,
	}
	if choice.Coordinator != nil {
		opt := option(choice.Coordinator)
		response.Coordinator = &opt
	}
	return response, err
}

func option(e *enterprise.Enterprise) CoordinatorOption {
	return CoordinatorOption{ID: e.ID(), Name: e.Name()}
}

func options(enterprises []*enterprise.Enterprise) []CoordinatorOption {
	opts := make([]CoordinatorOption, 0, len(enterprises))
	for _, e := range enterprises {
		opts = append(opts, option(e))
	}
	return opts
}
