package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver_OrderingAndTermination(t *testing.T) {
	d := NewDriver(4)
	d.Emit(Event{Node: NodeRouter, Update: []string{"security", "style"}})
	d.Emit(Event{Node: NodeAgent, Name: "style", Update: "style-result"})
	d.Emit(Event{Node: NodeAgent, Name: "security", Update: "security-result"})
	d.Emit(Event{Node: NodeAggregator, Update: "final"})
	d.Close()

	var got []Event
	for e := range d.Events() {
		got = append(got, e)
	}

	require.Len(t, got, 4)
	assert.Equal(t, NodeRouter, got[0].Node, "router is always first")
	assert.Equal(t, NodeAggregator, got[len(got)-1].Node, "aggregator is always last")
}

func TestDriver_FiniteAfterClose(t *testing.T) {
	d := NewDriver(1)
	d.Emit(Event{Node: NodeAggregator})
	d.Close()

	count := 0
	for range d.Events() {
		count++
	}
	assert.Equal(t, 1, count)

	// The channel is closed; a second range yields nothing (not restartable).
	for range d.Events() {
		t.Fatal("events should not be replayed")
	}
}
