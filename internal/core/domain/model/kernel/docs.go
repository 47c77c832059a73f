// Package kernel holds the primitives shared by every aggregate of the
// order cycle domain: identifiers, identifier sets and the injectable clock.
package kernel
