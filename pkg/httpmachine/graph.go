package httpmachine

import (
	"errors"
	"fmt"
)

// terminalStatuses is the closed set of status codes a traversal may end
// with. A status override pointing outside this set is a resource bug and
// is reported as ErrInvalidTerminal.
var terminalStatuses = map[int]bool{
	200: true, 201: true, 202: true, 203: true, 204: true, 206: true,
	300: true, 301: true, 303: true, 304: true, 307: true,
	400: true, 401: true, 403: true, 404: true, 405: true, 406: true,
	409: true, 410: true, 411: true, 412: true, 413: true, 414: true,
	415: true, 416: true, 422: true,
	500: true, 501: true, 503: true,
}

// decisionGraph is the full HTTP decision table. It is immutable after
// package initialization and shared by every traversal.
//
// The layout mirrors the canonical flowchart: the B column screens the
// request, C through F negotiate content, G through L evaluate conditional
// headers, and M through P handle method processing and the response shape.
var decisionGraph = map[NodeID]node{
	nodeB13: {decideServiceAvailable, to(nodeB12), end(503)},
	nodeB12: {decideKnownMethod, to(nodeB11), end(501)},
	nodeB11: {decideURITooLong, end(414), to(nodeB10)},
	nodeB10: {decideMethodAllowed, to(nodeB9), end(405)},
	nodeB9:  {decideMalformed, end(400), to(nodeB8)},
	nodeB8:  {decideAuthorized, to(nodeB7), end(401)},
	nodeB7:  {decideForbidden, end(403), to(nodeB6)},
	nodeB6:  {decideValidContentHeaders, to(nodeB5), end(501)},
	nodeB5:  {decideKnownContentType, to(nodeB4), end(415)},
	nodeB4:  {decideValidEntityLength, to(nodeB3), end(413)},
	nodeB3:  {decideIsOptions, to(nodeA3), to(nodeC3)},

	nodeC3: {decideAcceptExists, to(nodeC4), to(nodeD4)},
	nodeC4: {decideMediaTypeAvailable, to(nodeD4), end(406)},
	nodeD4: {decideAcceptLanguageExists, to(nodeD5), to(nodeE5)},
	nodeD5: {decideLanguageAvailable, to(nodeE5), end(406)},
	nodeE5: {decideAcceptCharsetExists, to(nodeE6), to(nodeF6)},
	nodeE6: {decideCharsetAvailable, to(nodeF6), end(406)},
	nodeF6: {decideAcceptEncodingExists, to(nodeF7), to(nodeG7)},
	nodeF7: {decideEncodingAvailable, to(nodeG7), end(406)},

	nodeG7:  {decideResourceExists, to(nodeG8), to(nodeH7)},
	nodeG8:  {decideIfMatchExists, to(nodeG9), to(nodeH10)},
	nodeG9:  {decideIfMatchStar, to(nodeH10), to(nodeG11)},
	nodeG11: {decideETagInIfMatch, to(nodeH10), end(412)},
	nodeH7:  {decideIfMatchStar, end(412), to(nodeI7)},
	nodeH10: {decideIfUnmodifiedSinceExists, to(nodeH11), to(nodeI12)},
	nodeH11: {decideIfUnmodifiedSinceValid, to(nodeH12), to(nodeI12)},
	nodeH12: {decideModifiedAfterUnmodifiedSince, end(412), to(nodeI12)},

	nodeI4:  {decideMovedPermanently, end(301), to(nodeP3)},
	nodeI7:  {decidePutToMissing, to(nodeI4), to(nodeK7)},
	nodeI12: {decideIfNoneMatchExists, to(nodeI13), to(nodeL13)},
	nodeI13: {decideIfNoneMatchStar, to(nodeJ18), to(nodeK13)},
	nodeJ18: {decideIsGetOrHead, end(304), end(412)},
	nodeK5:  {decideMovedPermanently, end(301), to(nodeL5)},
	nodeK7:  {decidePreviouslyExisted, to(nodeK5), to(nodeL7)},
	nodeK13: {decideETagInIfNoneMatch, to(nodeJ18), to(nodeL13)},

	nodeL5:  {decideMovedTemporarily, end(307), to(nodeM5)},
	nodeL7:  {decideIsPost, to(nodeM7), end(404)},
	nodeL13: {decideIfModifiedSinceExists, to(nodeL14), to(nodeM16)},
	nodeL14: {decideIfModifiedSinceValid, to(nodeL15), to(nodeM16)},
	nodeL15: {decideIfModifiedSinceInFuture, to(nodeM16), to(nodeL17)},
	nodeL17: {decideModifiedAfterModifiedSince, to(nodeM16), end(304)},

	nodeM5:   {decideIsPost, to(nodeN5), end(410)},
	nodeM7:   {decideAllowMissingPost, to(nodeN11), end(404)},
	nodeM16:  {decideIsDelete, to(nodeM20), to(nodeN16)},
	nodeM20:  {decideDeleteResource, to(nodeM20B), end(500)},
	nodeM20B: {decideDeleteCompleted, to(nodeO20), end(202)},

	nodeN5:  {decideAllowMissingPost, to(nodeN11), end(410)},
	nodeN11: {decideRedirect, end(303), to(nodeP11)},
	nodeN16: {decideIsPost, to(nodeN11), to(nodeO16)},

	nodeO14: {decideConflict, end(409), to(nodeP11)},
	nodeO16: {decideIsPut, to(nodeO14), to(nodeO18)},
	nodeO18: {decideMultipleChoices, end(300), end(200)},
	nodeO20: {decideResponseHasBody, to(nodeO18), end(204)},

	nodeP3:  {decideConflict, end(409), to(nodeP11)},
	nodeP11: {decideNewResource, end(201), to(nodeO20)},
}

// entryNode is where every traversal begins.
const entryNode = nodeB13

func init() {
	if err := validateGraph(decisionGraph); err != nil {
		panic(fmt.Sprintf("httpmachine: decision graph is mis-configured: %v", err))
	}
}

// validateGraph checks the static decision table for structural defects.
// Multiple defects are joined together.
//
// Checks (in order):
//  1. The entry node must exist
//  2. Every edge must target an existing node, the OPTIONS terminal, or a
//     status in the terminal set
//  3. Every node must be reachable from the entry
//  4. The graph must be acyclic, so every traversal terminates
func validateGraph(g map[NodeID]node) error {
	var errs []error

	if _, ok := g[entryNode]; !ok {
		errs = append(errs, fmt.Errorf("%w: entry node %s", ErrUnknownNode, entryNode))
	}

	for id, n := range g {
		if n.decide == nil {
			errs = append(errs, fmt.Errorf("%w: node %s has no decision function", ErrUnknownNode, id))
		}
		for _, e := range []edge{n.onTrue, n.onFalse} {
			if e.terminal() {
				if !terminalStatuses[e.status] {
					errs = append(errs, fmt.Errorf("%w: node %s targets status %d", ErrInvalidTerminal, id, e.status))
				}
				continue
			}
			if e.next == nodeA3 {
				continue
			}
			if _, ok := g[e.next]; !ok {
				errs = append(errs, fmt.Errorf("%w: node %s targets %s", ErrUnknownNode, id, e.next))
			}
		}
	}

	// Reachability from the entry node.
	reachable := map[NodeID]bool{entryNode: true}
	queue := []NodeID{entryNode}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		n := g[current]
		for _, e := range []edge{n.onTrue, n.onFalse} {
			if e.terminal() || e.next == nodeA3 {
				continue
			}
			if !reachable[e.next] {
				reachable[e.next] = true
				queue = append(queue, e.next)
			}
		}
	}
	for id := range g {
		if !reachable[id] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnreachableNode, id))
		}
	}

	// Cycle detection via three-color depth-first search.
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := make(map[NodeID]int, len(g))
	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		color[id] = grey
		n := g[id]
		for _, e := range []edge{n.onTrue, n.onFalse} {
			if e.terminal() || e.next == nodeA3 {
				continue
			}
			switch color[e.next] {
			case grey:
				return fmt.Errorf("%w: back edge %s -> %s", ErrGraphCycle, id, e.next)
			case white:
				if err := visit(e.next); err != nil {
					return err
				}
			}
		}
		color[id] = black
		return nil
	}
	for id := range g {
		if color[id] == white {
			if err := visit(id); err != nil {
				errs = append(errs, err)
				break
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
