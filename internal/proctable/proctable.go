// Package proctable captures the OS process table via ps and answers
// usage queries about a process and its descendants. Listings are
// expensive (a full fork+exec), so one snapshot is memoized per
// supervision tick and must be invalidated explicitly at tick
// boundaries with Reset.
package proctable

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/zerogee00/bluepill/internal/metrics"
)

// Record is one row of the process table.
type Record struct {
	PID            int
	PPID           int
	CPUPercent     float64
	ResidentKB     float64
	ElapsedSeconds int
	// Command is the full command line, whitespace included.
	Command string
}

// Snapshot maps pid to its record, captured from a single ps invocation.
// A PPID may reference a pid absent from the same snapshot when the
// parent already exited; that is not an error.
type Snapshot map[int]Record

// Cache memoizes one Snapshot per tick. The listing and memoize step are
// serialized so concurrent queries never fork ps twice.
type Cache struct {
	mu   sync.Mutex
	snap Snapshot
	run  func(ctx context.Context) ([]byte, error)
}

// NewCache returns a cache backed by the real ps listing.
func NewCache() *Cache {
	return &Cache{run: listProcesses}
}

// Snapshot returns the memoized process table, capturing it on first use.
func (c *Cache) Snapshot(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap != nil {
		return c.snap, nil
	}
	out, err := c.run(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	c.snap = parseTable(out)
	return c.snap, nil
}

// Reset discards the memoized snapshot. Callers invoke it once per tick;
// the cache never invalidates itself.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

func listProcesses(ctx context.Context) ([]byte, error) {
	out, err := exec.CommandContext(ctx, "ps", "axo", "pid,ppid,pcpu,rss,etime,command").Output()
	if err != nil {
		return nil, err
	}
	metrics.IncProcessListings()
	return out, nil
}
