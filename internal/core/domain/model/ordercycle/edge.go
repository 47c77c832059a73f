package ordercycle

import "ordercycles/internal/core/domain/model/kernel"

// Edge is the directed sender→receiver pair of an exchange. Edges are
// comparable and are what permission scopes are expressed in.
type Edge struct {
	Sender   kernel.UUID
	Receiver kernel.UUID
}

// IncomingEdge is the supply leg from supplierID into the coordinator.
func IncomingEdge(supplierID, coordinatorID kernel.UUID) Edge {
	return Edge{Sender: supplierID, Receiver: coordinatorID}
}

// OutgoingEdge is the distribution leg from the coordinator to distributorID.
func OutgoingEdge(coordinatorID, distributorID kernel.UUID) Edge {
	return Edge{Sender: coordinatorID, Receiver: distributorID}
}

func (e Edge) String() string {
	return e.Sender.String() + "->" + e.Receiver.String()
}
