package httpmachine

// NodeID identifies a decision point in the graph. The identifiers follow
// the canonical HTTP decision flowchart naming (column letter plus row
// number), so a trace of a traversal can be read against the chart.
type NodeID string

const (
	// nodeA3 is the OPTIONS terminal. It is not a decision: reaching it
	// ends the traversal with 204 and the resource's extra headers.
	nodeA3 NodeID = "a3_options"

	nodeB13 NodeID = "b13_service_available"
	nodeB12 NodeID = "b12_known_method"
	nodeB11 NodeID = "b11_uri_too_long"
	nodeB10 NodeID = "b10_method_allowed"
	nodeB9  NodeID = "b9_malformed_request"
	nodeB8  NodeID = "b8_authorized"
	nodeB7  NodeID = "b7_forbidden"
	nodeB6  NodeID = "b6_valid_content_headers"
	nodeB5  NodeID = "b5_known_content_type"
	nodeB4  NodeID = "b4_valid_entity_length"
	nodeB3  NodeID = "b3_is_options"

	nodeC3 NodeID = "c3_accept_exists"
	nodeC4 NodeID = "c4_media_type_available"
	nodeD4 NodeID = "d4_accept_language_exists"
	nodeD5 NodeID = "d5_language_available"
	nodeE5 NodeID = "e5_accept_charset_exists"
	nodeE6 NodeID = "e6_charset_available"
	nodeF6 NodeID = "f6_accept_encoding_exists"
	nodeF7 NodeID = "f7_encoding_available"

	nodeG7  NodeID = "g7_resource_exists"
	nodeG8  NodeID = "g8_if_match_exists"
	nodeG9  NodeID = "g9_if_match_star"
	nodeG11 NodeID = "g11_etag_in_if_match"
	nodeH7  NodeID = "h7_if_match_star"
	nodeH10 NodeID = "h10_if_unmodified_since_exists"
	nodeH11 NodeID = "h11_if_unmodified_since_valid"
	nodeH12 NodeID = "h12_modified_after_unmodified_since"

	nodeI4  NodeID = "i4_moved_permanently"
	nodeI7  NodeID = "i7_is_put"
	nodeI12 NodeID = "i12_if_none_match_exists"
	nodeI13 NodeID = "i13_if_none_match_star"
	nodeJ18 NodeID = "j18_is_get_or_head"
	nodeK5  NodeID = "k5_moved_permanently"
	nodeK7  NodeID = "k7_previously_existed"
	nodeK13 NodeID = "k13_etag_in_if_none_match"

	nodeL5  NodeID = "l5_moved_temporarily"
	nodeL7  NodeID = "l7_is_post"
	nodeL13 NodeID = "l13_if_modified_since_exists"
	nodeL14 NodeID = "l14_if_modified_since_valid"
	nodeL15 NodeID = "l15_if_modified_since_in_future"
	nodeL17 NodeID = "l17_modified_after_modified_since"

	nodeM5   NodeID = "m5_is_post"
	nodeM7   NodeID = "m7_allow_missing_post"
	nodeM16  NodeID = "m16_is_delete"
	nodeM20  NodeID = "m20_delete_resource"
	nodeM20B NodeID = "m20b_delete_completed"

	nodeN5  NodeID = "n5_allow_missing_post"
	nodeN11 NodeID = "n11_redirect"
	nodeN16 NodeID = "n16_is_post"

	nodeO14 NodeID = "o14_conflict"
	nodeO16 NodeID = "o16_is_put"
	nodeO18 NodeID = "o18_multiple_representations"
	nodeO20 NodeID = "o20_response_has_body"

	nodeP3  NodeID = "p3_conflict"
	nodeP11 NodeID = "p11_new_resource"
)

// edge is the target of one decision outcome: either the next decision
// node or a terminal status code. Exactly one of the two fields is set.
type edge struct {
	next   NodeID
	status int
}

func to(id NodeID) edge   { return edge{next: id} }
func end(status int) edge { return edge{status: status} }

func (e edge) terminal() bool { return e.status > 0 }

// decideFunc evaluates one decision against the current traversal state.
// Side effects (negotiation results, Allow and Location headers, body
// processing) happen here, exactly as the chart prescribes for the node.
type decideFunc func(cx *Context) (bool, error)

// node is a single decision: a predicate and its two outgoing edges.
type node struct {
	decide  decideFunc
	onTrue  edge
	onFalse edge
}
