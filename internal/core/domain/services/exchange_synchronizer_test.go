package services_test

import (
	"testing"

	"ordercycles/internal/core/domain/model/catalog"
	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/ordercycle"
	"ordercycles/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referencesFor(t *testing.T, f cycleFixture, extra ...kernel.UUID) services.ExchangeReferences {
	t.Helper()
	variant, err := catalog.NewVariant(f.variant, f.producer)
	require.NoError(t, err)

	return services.ExchangeReferences{
		Enterprises: kernel.NewUUIDSet(append([]kernel.UUID{f.coordinator, f.producer, f.hub}, extra...)...),
		Variants:    map[kernel.UUID]*catalog.Variant{f.variant: variant},
	}
}

func TestExchangeSynchronizer_Sync(t *testing.T) {
	sync := services.NewExchangeSynchronizer()

	t.Run("absent lists leave exchanges untouched", func(t *testing.T) {
		f := newCycleFixture(t)

		fields := sync.Sync(f.oc, services.FullScope(), ordercycle.ChangeSet{}, referencesFor(t, f))

		assert.True(t, fields.IsEmpty())
		assert.Len(t, f.oc.Exchanges(), 2)
	})

	t.Run("coordinator creates, updates and removes exchanges", func(t *testing.T) {
		f := newCycleFixture(t)
		newHub := kernel.NewUUID()
		changes := ordercycle.ChangeSet{
			IncomingExchanges: []ordercycle.ExchangeEdit{
				{EnterpriseID: f.producer, ReceivalInstructions: strPtr("Dock 3")},
			},
			OutgoingExchanges: []ordercycle.ExchangeEdit{
				{EnterpriseID: newHub, Variants: map[kernel.UUID]bool{f.variant: true}, PickupTime: strPtr("Sat 9am")},
			},
		}

		fields := sync.Sync(f.oc, services.FullScope(), changes, referencesFor(t, f, newHub))

		require.True(t, fields.IsEmpty(), fields.String())
		assert.Equal(t, "Dock 3", f.oc.ExchangeFor(true, f.producer).ReceivalInstructions())
		assert.Nil(t, f.oc.ExchangeFor(false, f.hub))
		created := f.oc.ExchangeFor(false, newHub)
		require.NotNil(t, created)
		assert.Equal(t, []kernel.UUID{f.variant}, created.VariantIDs())
		assert.Equal(t, "Sat 9am", created.PickupTime())
	})

	t.Run("producer edits its own exchange only", func(t *testing.T) {
		f := newCycleFixture(t)
		scope := services.NewScopeResolver().Resolve(newUser(t, false), kernel.NewUUIDSet(f.producer), f.oc)
		changes := ordercycle.ChangeSet{
			IncomingExchanges: []ordercycle.ExchangeEdit{
				{EnterpriseID: f.producer, ReceivalInstructions: strPtr("Back door")},
			},
			OutgoingExchanges: []ordercycle.ExchangeEdit{},
		}

		fields := sync.Sync(f.oc, scope, changes, referencesFor(t, f))

		require.True(t, fields.IsEmpty(), fields.String())
		assert.Equal(t, "Back door", f.oc.ExchangeFor(true, f.producer).ReceivalInstructions())
		hubExchange := f.oc.ExchangeFor(false, f.hub)
		require.NotNil(t, hubExchange, "outgoing exchange outside the scope must survive an empty list")
		assert.Equal(t, []kernel.UUID{f.variant}, hubExchange.VariantIDs())
	})

	t.Run("producer sending empty lists keeps its exchange", func(t *testing.T) {
		f := newCycleFixture(t)
		scope := services.NewScopeResolver().Resolve(newUser(t, false), kernel.NewUUIDSet(f.producer), f.oc)
		changes := ordercycle.ChangeSet{
			IncomingExchanges: []ordercycle.ExchangeEdit{},
			OutgoingExchanges: []ordercycle.ExchangeEdit{},
		}

		fields := sync.Sync(f.oc, scope, changes, referencesFor(t, f))

		require.True(t, fields.IsEmpty(), fields.String())
		producerExchange := f.oc.ExchangeFor(true, f.producer)
		require.NotNil(t, producerExchange)
		assert.Equal(t, []kernel.UUID{f.variant}, producerExchange.VariantIDs())
		assert.Equal(t, []kernel.UUID{f.variant}, f.oc.ExchangeFor(false, f.hub).VariantIDs())
	})

	t.Run("producer cannot withdraw a variant a hub still distributes", func(t *testing.T) {
		f := newCycleFixture(t)
		scope := services.NewScopeResolver().Resolve(newUser(t, false), kernel.NewUUIDSet(f.producer), f.oc)
		changes := ordercycle.ChangeSet{
			IncomingExchanges: []ordercycle.ExchangeEdit{
				{EnterpriseID: f.producer, Variants: map[kernel.UUID]bool{f.variant: false}},
			},
		}

		fields := sync.Sync(f.oc, scope, changes, referencesFor(t, f))

		assert.Equal(t,
			[]string{"variant " + f.variant.String() + " is still distributed to enterprise " + f.hub.String()},
			fields["incoming_exchanges[0]"])
		assert.Equal(t, []kernel.UUID{f.variant}, f.oc.ExchangeFor(true, f.producer).VariantIDs())
		assert.Equal(t, []kernel.UUID{f.variant}, f.oc.ExchangeFor(false, f.hub).VariantIDs())
	})

	t.Run("coordinator withdrawing a variant removes it from outgoing exchanges", func(t *testing.T) {
		f := newCycleFixture(t)
		changes := ordercycle.ChangeSet{
			IncomingExchanges: []ordercycle.ExchangeEdit{
				{EnterpriseID: f.producer, Variants: map[kernel.UUID]bool{f.variant: false}},
			},
		}

		fields := sync.Sync(f.oc, services.FullScope(), changes, referencesFor(t, f))

		require.True(t, fields.IsEmpty(), fields.String())
		assert.Empty(t, f.oc.ExchangeFor(true, f.producer).VariantIDs())
		hubExchange := f.oc.ExchangeFor(false, f.hub)
		require.NotNil(t, hubExchange)
		assert.Empty(t, hubExchange.VariantIDs())
	})

	t.Run("coordinator removing a supplier removes its variants downstream", func(t *testing.T) {
		f := newCycleFixture(t)

		fields := sync.Sync(f.oc, services.FullScope(), ordercycle.ChangeSet{IncomingExchanges: []ordercycle.ExchangeEdit{}}, referencesFor(t, f))

		require.True(t, fields.IsEmpty(), fields.String())
		assert.Empty(t, f.oc.IncomingExchanges())
		hubExchange := f.oc.ExchangeFor(false, f.hub)
		require.NotNil(t, hubExchange)
		assert.Empty(t, hubExchange.VariantIDs())
	})

	t.Run("a variant kept by another supplier stays downstream", func(t *testing.T) {
		f := newCycleFixture(t)
		secondFarm := kernel.NewUUID()
		second, err := ordercycle.RestoreExchange(kernel.NewUUID(), f.oc.ID(), secondFarm, f.coordinator, true, []kernel.UUID{f.variant}, "", "", "")
		require.NoError(t, err)
		require.NoError(t, f.oc.AddExchange(second))
		scope := services.NewScopeResolver().Resolve(newUser(t, false), kernel.NewUUIDSet(f.producer), f.oc)
		changes := ordercycle.ChangeSet{
			IncomingExchanges: []ordercycle.ExchangeEdit{
				{EnterpriseID: f.producer, Variants: map[kernel.UUID]bool{f.variant: false}},
			},
		}

		fields := sync.Sync(f.oc, scope, changes, referencesFor(t, f, secondFarm))

		require.True(t, fields.IsEmpty(), fields.String())
		assert.Empty(t, f.oc.ExchangeFor(true, f.producer).VariantIDs())
		assert.Equal(t, []kernel.UUID{f.variant}, f.oc.ExchangeFor(false, f.hub).VariantIDs())
	})

	t.Run("an empty list removes the editable exchanges of that direction", func(t *testing.T) {
		f := newCycleFixture(t)

		fields := sync.Sync(f.oc, services.FullScope(), ordercycle.ChangeSet{OutgoingExchanges: []ordercycle.ExchangeEdit{}}, referencesFor(t, f))

		assert.True(t, fields.IsEmpty())
		assert.Empty(t, f.oc.OutgoingExchanges())
		assert.Len(t, f.oc.IncomingExchanges(), 1)
	})

	t.Run("unknown enterprise and foreign variant are reported without changes", func(t *testing.T) {
		f := newCycleFixture(t)
		ghost := kernel.NewUUID()
		otherFarm := kernel.NewUUID()
		changes := ordercycle.ChangeSet{
			IncomingExchanges: []ordercycle.ExchangeEdit{
				{EnterpriseID: ghost},
				{EnterpriseID: otherFarm, Variants: map[kernel.UUID]bool{f.variant: true}},
			},
		}

		fields := sync.Sync(f.oc, services.FullScope(), changes, referencesFor(t, f, otherFarm))

		assert.Contains(t, fields, "incoming_exchanges[0]")
		assert.Contains(t, fields, "incoming_exchanges[1]")
		assert.NotNil(t, f.oc.ExchangeFor(true, f.producer))
		assert.Nil(t, f.oc.ExchangeFor(true, otherFarm))
	})

	t.Run("outgoing variants must be supplied into the cycle", func(t *testing.T) {
		f := newCycleFixture(t)
		changes := ordercycle.ChangeSet{
			IncomingExchanges: []ordercycle.ExchangeEdit{},
			OutgoingExchanges: []ordercycle.ExchangeEdit{
				{EnterpriseID: f.hub, Variants: map[kernel.UUID]bool{f.variant: true}},
			},
		}

		fields := sync.Sync(f.oc, services.FullScope(), changes, referencesFor(t, f))

		assert.Equal(t, []string{"variant " + f.variant.String() + " is not supplied to the order cycle"}, fields["outgoing_exchanges[0]"])
		assert.Len(t, f.oc.IncomingExchanges(), 1)
	})

	t.Run("duplicate enterprises are reported", func(t *testing.T) {
		f := newCycleFixture(t)
		changes := ordercycle.ChangeSet{
			OutgoingExchanges: []ordercycle.ExchangeEdit{{EnterpriseID: f.hub}, {EnterpriseID: f.hub}},
		}

		fields := sync.Sync(f.oc, services.FullScope(), changes, referencesFor(t, f))

		assert.Contains(t, fields, "outgoing_exchanges[1]")
	})

	t.Run("re-applying the same edits is idempotent", func(t *testing.T) {
		f := newCycleFixture(t)
		changes := ordercycle.ChangeSet{
			IncomingExchanges: []ordercycle.ExchangeEdit{
				{EnterpriseID: f.producer, Variants: map[kernel.UUID]bool{f.variant: true}},
			},
			OutgoingExchanges: []ordercycle.ExchangeEdit{
				{EnterpriseID: f.hub, Variants: map[kernel.UUID]bool{f.variant: true}},
			},
		}
		refs := referencesFor(t, f)

		require.True(t, sync.Sync(f.oc, services.FullScope(), changes, refs).IsEmpty())
		ids := f.oc.ExchangeIDs()
		require.True(t, sync.Sync(f.oc, services.FullScope(), changes, refs).IsEmpty())

		assert.Equal(t, ids, f.oc.ExchangeIDs())
		assert.Equal(t, []kernel.UUID{f.variant}, f.oc.ExchangeFor(false, f.hub).VariantIDs())
	})
}

func TestReferencedIDs(t *testing.T) {
	a, b, v := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	changes := ordercycle.ChangeSet{
		IncomingExchanges: []ordercycle.ExchangeEdit{{EnterpriseID: a, Variants: map[kernel.UUID]bool{v: true}}},
		OutgoingExchanges: []ordercycle.ExchangeEdit{{EnterpriseID: b, Variants: map[kernel.UUID]bool{v: false}}},
	}

	enterprises, variants := services.ReferencedIDs(changes)

	assert.ElementsMatch(t, []kernel.UUID{a, b}, enterprises)
	assert.Equal(t, []kernel.UUID{v}, variants)
}
