package proctable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() Snapshot {
	return Snapshot{
		100: {PID: 100, PPID: 1, CPUPercent: 1.0, ResidentKB: 100, ElapsedSeconds: 600, Command: "supervisor"},
		101: {PID: 101, PPID: 100, CPUPercent: 2.0, ResidentKB: 200, Command: "worker a"},
		102: {PID: 102, PPID: 100, CPUPercent: 4.0, ResidentKB: 400, Command: "worker b"},
		103: {PID: 103, PPID: 101, CPUPercent: 8.0, ResidentKB: 800, Command: "grandchild"},
		// Parent 999 is not in the snapshot; an orphaned ppid is not an error.
		500: {PID: 500, PPID: 999, CPUPercent: 16.0, ResidentKB: 1600, Command: "orphan"},
	}
}

func TestChildrenTransitive(t *testing.T) {
	snap := testSnapshot()
	assert.Equal(t, []int{101, 102, 103}, snap.Children(100))
	assert.Equal(t, []int{103}, snap.Children(101))
	assert.Empty(t, snap.Children(103))
	assert.Empty(t, snap.Children(4242))
}

func TestCPUPercentAggregation(t *testing.T) {
	snap := testSnapshot()

	own, ok := snap.CPUPercent(100, false)
	require.True(t, ok)
	assert.Equal(t, 1.0, own)

	tree, ok := snap.CPUPercent(100, true)
	require.True(t, ok)
	assert.Equal(t, 15.0, tree)

	// Aggregate equals own plus the sum over each present descendant.
	var sum float64
	for _, child := range snap.Children(100) {
		if v, ok := snap.CPUPercent(child, false); ok {
			sum += v
		}
	}
	assert.Equal(t, tree, own+sum)
}

func TestUsageAbsentPID(t *testing.T) {
	snap := testSnapshot()

	_, ok := snap.CPUPercent(4242, true)
	assert.False(t, ok)
	_, ok = snap.ResidentKB(4242, false)
	assert.False(t, ok)
	_, ok = snap.ElapsedSeconds(4242)
	assert.False(t, ok)
	_, ok = snap.Command(4242)
	assert.False(t, ok)
}

func TestResidentKBAggregation(t *testing.T) {
	snap := testSnapshot()
	tree, ok := snap.ResidentKB(100, true)
	require.True(t, ok)
	assert.Equal(t, 1500.0, tree)
}

func TestElapsedAndCommandLookups(t *testing.T) {
	snap := testSnapshot()

	secs, ok := snap.ElapsedSeconds(100)
	require.True(t, ok)
	assert.Equal(t, 600, secs)

	cmd, ok := snap.Command(101)
	require.True(t, ok)
	assert.Equal(t, "worker a", cmd)
}
