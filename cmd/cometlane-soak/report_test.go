package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/cometlane/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Frames:    120,
		Seed:      7,
		GameOvers: 2,
		Systems:   []ecs.SystemStats{{Name: "CometSystem", ExecutionCount: 120}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "**Frames:** 120 (2s of game time)")
	assert.Contains(t, out, "**Game overs:** 2")
	assert.Contains(t, out, "- CometSystem: avg 0s, max 0s over 120 runs")
}
