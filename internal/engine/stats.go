package engine

// Stats accumulates run-wide counters mirroring the bookkeeping
// original_source/multicast_evaluation.py performs over a simulation run
// (TOTAL_EDGE_WEIGHT, TOTAL_RECEIVED_MESSAGES): a feature the distilled
// spec.md dropped but SPEC_FULL.md §C reintroduces as additive, non-
// invariant-affecting instrumentation.
type Stats struct {
	// LinksAdded counts distinct add_neighbor calls (each symmetric pair
	// counted once, from the non-reverse call).
	LinksAdded int

	// TotalEdgeWeight sums the cost of every link added, once per
	// non-reverse add_neighbor call.
	TotalEdgeWeight int

	// MulticastMessagesDelivered counts successful handle_message
	// deliveries made via receive_multicast_message.
	MulticastMessagesDelivered int

	// MulticastHopsForwarded counts every handoff of a multicast message
	// from send_multicast_message to a next hop, including handoffs that
	// end in a delivery.
	MulticastHopsForwarded int
}
