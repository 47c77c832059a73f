package services_test

import (
	"testing"
	"time"

	"ordercycles/internal/core/domain/model/enterprise"
	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/ordercycle"

	"github.com/stretchr/testify/require"
)

// cycleFixture is a cycle with one producer supplying the coordinator and
// one hub receiving from it, both carrying variant.
type cycleFixture struct {
	oc          *ordercycle.OrderCycle
	coordinator kernel.UUID
	producer    kernel.UUID
	hub         kernel.UUID
	variant     kernel.UUID
}

func newCycleFixture(t *testing.T) cycleFixture {
	t.Helper()
	f := cycleFixture{
		coordinator: kernel.NewUUID(),
		producer:    kernel.NewUUID(),
		hub:         kernel.NewUUID(),
		variant:     kernel.NewUUID(),
	}
	open := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	closeAt := open.Add(7 * 24 * time.Hour)
	id := kernel.NewUUID()

	in, err := ordercycle.RestoreExchange(kernel.NewUUID(), id, f.producer, f.coordinator, true, []kernel.UUID{f.variant}, "", "", "")
	require.NoError(t, err)
	out, err := ordercycle.RestoreExchange(kernel.NewUUID(), id, f.coordinator, f.hub, false, []kernel.UUID{f.variant}, "", "", "")
	require.NoError(t, err)

	f.oc, err = ordercycle.RestoreOrderCycle(id, "Week 18", f.coordinator, &open, &closeAt, []*ordercycle.Exchange{in, out})
	require.NoError(t, err)
	return f
}

func newUser(t *testing.T, admin bool) *enterprise.User {
	t.Helper()
	u, err := enterprise.NewUser(kernel.NewUUID(), "someone@example.com", admin)
	require.NoError(t, err)
	return u
}

func newEnterprise(t *testing.T, name string, distributor bool) *enterprise.Enterprise {
	t.Helper()
	e, err := enterprise.NewEnterprise(kernel.NewUUID(), name, kernel.NewUUID(), distributor)
	require.NoError(t, err)
	return e
}

func strPtr(s string) *string { return &s }
