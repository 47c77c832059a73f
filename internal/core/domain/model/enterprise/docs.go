// Package enterprise models the actors around an order cycle: the
// enterprises that supply, coordinate and distribute goods, and the users
// that manage them.
//
// Roles inside a particular order cycle are never stored here. Whether an
// enterprise acts as coordinator, producer or hub is derived from the cycle's
// exchanges at request time.
package enterprise
