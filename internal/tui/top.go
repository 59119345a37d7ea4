// Package tui renders a live usage table for a process and its
// descendants, in the manner of top.
package tui

import (
	"context"
	"fmt"
	"time"

	units "github.com/docker/go-units"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/zerogee00/bluepill/internal/proctable"
)

const defaultRefresh = 2 * time.Second

// Top coordinates the interactive usage view backed by tview.
type Top struct {
	app     *tview.Application
	table   *tview.Table
	cache   *proctable.Cache
	root    int
	refresh time.Duration
}

// NewTop builds a usage view rooted at pid. A refresh of zero uses the
// default interval.
func NewTop(cache *proctable.Cache, pid int, refresh time.Duration) *Top {
	if refresh <= 0 {
		refresh = defaultRefresh
	}
	table := tview.NewTable().SetFixed(1, 0)
	table.SetBorder(true).SetTitle(fmt.Sprintf(" bluepill top (pid %d) ", pid))
	return &Top{
		app:     tview.NewApplication(),
		table:   table,
		cache:   cache,
		root:    pid,
		refresh: refresh,
	}
}

// Run blocks until the user quits or ctx is cancelled. Every refresh is
// one tick: the cache is reset, then queried once for all rows.
func (t *Top) Run(ctx context.Context) error {
	t.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			t.app.Stop()
			return nil
		}
		return event
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		ticker := time.NewTicker(t.refresh)
		defer ticker.Stop()

		t.redraw(ctx)
		for {
			select {
			case <-ctx.Done():
				t.app.Stop()
				return
			case <-ticker.C:
				t.cache.Reset()
				t.redraw(ctx)
			}
		}
	}()

	return t.app.SetRoot(t.table, true).Run()
}

func (t *Top) redraw(ctx context.Context) {
	snap, err := t.cache.Snapshot(ctx)
	if err != nil {
		return
	}
	rows := buildRows(snap, t.root)
	t.app.QueueUpdateDraw(func() {
		t.render(rows)
	})
}

type row struct {
	pid     int
	cpu     float64
	rss     float64
	elapsed int
	command string
}

// buildRows lists the root pid followed by its transitive descendants,
// skipping any that left the table since the snapshot was grouped.
func buildRows(snap proctable.Snapshot, root int) []row {
	pids := append([]int{root}, snap.Children(root)...)
	rows := make([]row, 0, len(pids))
	for _, pid := range pids {
		rec, ok := snap[pid]
		if !ok {
			continue
		}
		rows = append(rows, row{
			pid:     rec.PID,
			cpu:     rec.CPUPercent,
			rss:     rec.ResidentKB,
			elapsed: rec.ElapsedSeconds,
			command: rec.Command,
		})
	}
	return rows
}

func (t *Top) render(rows []row) {
	t.table.Clear()
	for col, header := range []string{"PID", "CPU%", "RSS", "UPTIME", "COMMAND"} {
		cell := tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false)
		t.table.SetCell(0, col, cell)
	}
	for i, r := range rows {
		t.table.SetCell(i+1, 0, tview.NewTableCell(fmt.Sprintf("%d", r.pid)))
		t.table.SetCell(i+1, 1, tview.NewTableCell(fmt.Sprintf("%.1f", r.cpu)))
		t.table.SetCell(i+1, 2, tview.NewTableCell(units.BytesSize(r.rss*1024)))
		t.table.SetCell(i+1, 3, tview.NewTableCell(formatUptime(r.elapsed)))
		t.table.SetCell(i+1, 4, tview.NewTableCell(r.command))
	}
}

func formatUptime(seconds int) string {
	return (time.Duration(seconds) * time.Second).String()
}
