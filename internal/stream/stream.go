// Package stream implements the progress-event sequence (C9):
// one event per completed pipeline node, in completion order, finite
// and non-restartable, with "router" always first and "aggregator"
// always last.
//
// Grounded on cmd/nerd/chat/model.go's Bubbletea tea.Msg/tea.Cmd
// event-as-message pattern, adapted from a TUI event loop to a plain
// buffered channel of Event values — rendering itself is out of scope,
// so no TUI library is pulled in here (see DESIGN.md).
package stream

// NodeKind identifies which pipeline node produced an event.
type NodeKind string

const (
	NodeRouter     NodeKind = "router"
	NodeAgent      NodeKind = "agent"
	NodeAggregator NodeKind = "aggregator"
)

// Event is one emitted progress event.
type Event struct {
	Node NodeKind
	// Name disambiguates Agent events (the agent's name); empty for
	// Router and Aggregator events.
	Name string
	// Update carries whatever partial state update the node produced:
	// for NodeRouter, []string (the routed agent list); for NodeAgent,
	// a review.AgentResult; for NodeAggregator, the final *review.State.
	Update any
}

// Driver is a single-consumer sequence of Events backed by a buffered
// channel; it is finite and not restartable.
type Driver struct {
	events chan Event
}

// NewDriver creates a Driver sized for the expected number of pipeline
// nodes (router + one per agent + aggregator); callers should size it
// to avoid blocking emitters, though Emit will block if the consumer
// falls behind an unbuffered/undersized channel.
func NewDriver(expectedNodes int) *Driver {
	if expectedNodes < 1 {
		expectedNodes = 1
	}
	return &Driver{events: make(chan Event, expectedNodes)}
}

// Emit publishes one event. Safe to call concurrently from multiple
// agent goroutines (the channel itself serializes sends); ordering
// across distinct agents is therefore completion order, not dispatch
// order.
func (d *Driver) Emit(e Event) {
	d.events <- e
}

// Close terminates the sequence; callers must call Close exactly once
// after the aggregator event has been emitted.
func (d *Driver) Close() {
	close(d.events)
}

// Events returns the receive-only channel consumers range over.
func (d *Driver) Events() <-chan Event {
	return d.events
}
