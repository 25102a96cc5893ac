// Package message defines the typed envelopes exchanged between nodes
// (spec.md §6): a message kind plus its kind-specific content. Wire
// serialization is explicitly out of scope (spec.md §1) — an Envelope is
// a logical, in-memory value, never marshaled.
package message

import "github.com/google/uuid"

// Kind enumerates every message kind in spec.md §6.
type Kind int

const (
	// Ping carries an opaque application payload, any node to any node.
	Ping Kind = iota

	// RibAddLink carries (a, b, cost) up toward the parent router.
	RibAddLink

	// RibAddOwnership carries (owner_router, node) up toward the parent router.
	RibAddOwnership

	// RibQueryNextHop carries (start, destination) up toward the parent
	// router; the response is (next_hop, distance).
	RibQueryNextHop

	// RibQueryNextMulticastHops carries a group name up toward the parent
	// router; the response is a list of next-hop nodes.
	RibQueryNextMulticastHops

	// AddMulticastGroup carries (name, lca, owner) up toward the parent router.
	AddMulticastGroup

	// ClientCreateMulticastGroup is sent by a client to its attachment router.
	ClientCreateMulticastGroup

	// ClientJoinMulticastGroup is sent by a client to its attachment router;
	// the response is the group's owner.
	ClientJoinMulticastGroup

	// RouterJoinMulticastGroup is sent by a router to its parent router; the
	// response is the group's owner.
	RouterJoinMulticastGroup

	// MulticastGroupTransferLCA is sent by the new LCA to the old LCA; the
	// response is (external_members, external_nodes, external_edges).
	MulticastGroupTransferLCA

	// MulticastGroupRequestCredentials is sent by a joiner to the group owner.
	MulticastGroupRequestCredentials

	// MulticastGroupSendCredentials is the owner's reply carrying an opaque
	// credential payload.
	MulticastGroupSendCredentials
)

func (k Kind) String() string {
	switch k {
	case Ping:
		return "PING"
	case RibAddLink:
		return "RIB_ADD_LINK"
	case RibAddOwnership:
		return "RIB_ADD_OWNERSHIP"
	case RibQueryNextHop:
		return "RIB_QUERY_NEXT_HOP"
	case RibQueryNextMulticastHops:
		return "RIB_QUERY_NEXT_MULTICAST_HOPS"
	case AddMulticastGroup:
		return "ADD_MULTICAST_GROUP"
	case ClientCreateMulticastGroup:
		return "CLIENT_CREATE_MULTICAST_GROUP"
	case ClientJoinMulticastGroup:
		return "CLIENT_JOIN_MULTICAST_GROUP"
	case RouterJoinMulticastGroup:
		return "ROUTER_JOIN_MULTICAST_GROUP"
	case MulticastGroupTransferLCA:
		return "MULTICAST_GROUP_TRANSFER_LCA"
	case MulticastGroupRequestCredentials:
		return "MULTICAST_GROUP_REQUEST_CREDENTIALS"
	case MulticastGroupSendCredentials:
		return "MULTICAST_GROUP_SEND_CREDENTIALS"
	default:
		return "UNKNOWN"
	}
}

// Envelope is the generic message value handed between receive_message /
// handle_message calls. Content holds a kind-specific payload type (see
// content.go); ID is a correlation identifier used purely for logging.
type Envelope struct {
	ID      string
	Kind    Kind
	Content any
}

// New builds an Envelope with a freshly generated correlation ID.
func New(kind Kind, content any) Envelope {
	return Envelope{
		ID:      uuid.NewString(),
		Kind:    kind,
		Content: content,
	}
}
