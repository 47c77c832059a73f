// Package ordercycle implements the Order Cycle aggregate and its Exchanges.
//
// An order cycle is a time-bounded window coordinated by one enterprise.
// Supplying enterprises send goods to the coordinator through incoming
// exchanges, and the coordinator distributes them to receiving enterprises
// through outgoing exchanges. Every exchange therefore has the coordinator on
// one side:
//
//	producer ──incoming──▶ coordinator ──outgoing──▶ hub
//
// Invariants enforced by the aggregate:
//   - the name is never blank
//   - orders_close_at is null or not before orders_open_at
//   - incoming exchanges are received by the coordinator, outgoing ones are sent by it
//   - at most one exchange exists per direction and participating enterprise
//
// ChangeDetails validates before mutating, so a rejected change leaves the
// aggregate exactly as it was.
//
// ChangeSet describes a requested mutation. It distinguishes absent fields
// from fields explicitly cleared, which is what lets callers strip fields an
// actor may not touch without changing the meaning of the rest.
package ordercycle
