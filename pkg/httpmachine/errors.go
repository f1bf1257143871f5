package httpmachine

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph definition and validation.
var (
	// ErrUnknownNode indicates a transition references a node that is not
	// in the graph.
	ErrUnknownNode = errors.New("unknown decision node")

	// ErrUnreachableNode indicates a node has no path from the start node.
	ErrUnreachableNode = errors.New("unreachable decision node")

	// ErrGraphCycle indicates the decision graph contains a cycle.
	ErrGraphCycle = errors.New("decision graph contains a cycle")

	// ErrInvalidTerminal indicates a terminal status outside the fixed
	// terminal-status set.
	ErrInvalidTerminal = errors.New("terminal status outside the terminal set")
)

// Sentinel errors for traversal.
var (
	// ErrMaxTransitions indicates the traversal exceeded the transition
	// bound without reaching a terminal node.
	ErrMaxTransitions = errors.New("exceeded maximum graph transitions")

	// ErrNilResource indicates Run was called without a resource.
	ErrNilResource = errors.New("resource cannot be nil")

	// ErrNilRequest indicates Run was called without a request.
	ErrNilRequest = errors.New("request cannot be nil")
)

// StatusError is a forced terminal status returned from a capability query.
// The engine honors it by jumping straight to that terminal, bypassing the
// remaining nodes on the path.
type StatusError struct {
	// Status is the terminal status to produce.
	Status int
}

// ForceStatus returns an error that makes the engine terminate the traversal
// with the given status. The status must belong to the terminal-status set;
// anything else is treated as a resource fault and becomes a 500.
func ForceStatus(status int) error {
	return &StatusError{Status: status}
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("forced terminal status %d", e.Status)
}

// CapabilityError wraps a failure from a resource capability query.
// The traversal surfaces it as a 500 with the failure as opaque cause.
type CapabilityError struct {
	// Node is the decision node that asked the query.
	Node NodeID
	// Capability is the capability name, e.g. "resource_exists".
	Capability string
	// Err is the underlying error from the resource.
	Err error
}

// Error implements the error interface.
func (e *CapabilityError) Error() string {
	return fmt.Sprintf("capability %s at node %s: %v", e.Capability, e.Node, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// GraphError is an engine-internal fault: the traversal reached a node with
// no definition or failed to terminate. It indicates a defect in the graph,
// never client input, and is kept distinct from any client-visible status.
type GraphError struct {
	// Node is where the traversal stopped.
	Node NodeID
	// Err is the underlying fault.
	Err error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	return fmt.Sprintf("decision graph fault at node %s: %v", e.Node, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *GraphError) Unwrap() error {
	return e.Err
}

// CancellationError reports that the request context was cancelled between
// capability calls. No further capability methods were invoked.
type CancellationError struct {
	// Node is the decision node that was about to run a capability query.
	Node NodeID
	// Capability is the query that was about to be asked, if known.
	Capability string
	// Cause is context.Canceled or context.DeadlineExceeded.
	Cause error
}

// Error implements the error interface.
func (e *CancellationError) Error() string {
	if e.Capability != "" {
		return fmt.Sprintf("cancelled before capability %s at node %s: %v", e.Capability, e.Node, e.Cause)
	}
	return fmt.Sprintf("cancelled at node %s: %v", e.Node, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *CancellationError) Unwrap() error {
	return e.Cause
}
