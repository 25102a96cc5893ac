package message

import "github.com/mikkelsvartveit/gdp-multicast-simulator/internal/graph"

// PingContent is the opaque payload carried by a PING message.
type PingContent struct {
	Payload any
}

// AddLinkContent is the payload of RIB_ADD_LINK.
type AddLinkContent struct {
	A    *graph.Node
	B    *graph.Node
	Cost int
}

// AddOwnershipContent is the payload of RIB_ADD_OWNERSHIP.
type AddOwnershipContent struct {
	OwnerRouter *graph.Node
	Node        *graph.Node
}

// QueryNextHopContent is the payload of RIB_QUERY_NEXT_HOP.
type QueryNextHopContent struct {
	Start       *graph.Node
	Destination *graph.Node
}

// QueryNextHopResult is the response to RIB_QUERY_NEXT_HOP.
type QueryNextHopResult struct {
	NextHop  *graph.Node
	Distance int
}

// QueryNextMulticastHopsContent is the payload of
// RIB_QUERY_NEXT_MULTICAST_HOPS.
type QueryNextMulticastHopsContent struct {
	Start *graph.Node
	Name  string
}

// AddMulticastGroupContent is the payload of ADD_MULTICAST_GROUP and
// CLIENT_CREATE_MULTICAST_GROUP.
type AddMulticastGroupContent struct {
	Name  string
	LCA   *graph.Node
	Owner *graph.Node
}

// JoinMulticastGroupContent is the payload of CLIENT_JOIN_MULTICAST_GROUP
// and ROUTER_JOIN_MULTICAST_GROUP.
type JoinMulticastGroupContent struct {
	Name          string
	JoiningRouter *graph.Node
}

// TransferLCAContent is the payload of MULTICAST_GROUP_TRANSFER_LCA.
type TransferLCAContent struct {
	Name string
}

// TransferLCAResult is the response to MULTICAST_GROUP_TRANSFER_LCA.
type TransferLCAResult struct {
	ExternalMembers []*graph.Node
	ExternalNodes   []*graph.Node
	ExternalEdges   []graph.Edge
}

// RequestCredentialsContent is the payload of
// MULTICAST_GROUP_REQUEST_CREDENTIALS.
type RequestCredentialsContent struct {
	Name   string
	Joiner *graph.Node
}

// SendCredentialsContent is the payload of MULTICAST_GROUP_SEND_CREDENTIALS.
type SendCredentialsContent struct {
	Name    string
	Payload any
}
