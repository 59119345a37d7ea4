package proctable

import "sort"

// Children returns every transitive descendant of pid in the snapshot,
// sorted ascending. Missing pids and leaves yield an empty slice. The
// walk terminates because ppid chains end at init or at a parent that
// already left the table.
func (s Snapshot) Children(pid int) []int {
	byParent := make(map[int][]int, len(s))
	for _, rec := range s {
		byParent[rec.PPID] = append(byParent[rec.PPID], rec.PID)
	}

	var out []int
	queue := append([]int(nil), byParent[pid]...)
	for len(queue) > 0 {
		child := queue[0]
		queue = queue[1:]
		out = append(out, child)
		queue = append(queue, byParent[child]...)
	}
	sort.Ints(out)
	return out
}

// CPUPercent reports the cpu share of pid, optionally summed with every
// descendant still present in the snapshot. ok is false when pid itself
// is absent, which callers read as "process is gone".
func (s Snapshot) CPUPercent(pid int, includeChildren bool) (float64, bool) {
	return s.sum(pid, includeChildren, func(rec Record) float64 { return rec.CPUPercent })
}

// ResidentKB reports resident memory in kilobytes with the same
// aggregation policy as CPUPercent.
func (s Snapshot) ResidentKB(pid int, includeChildren bool) (float64, bool) {
	return s.sum(pid, includeChildren, func(rec Record) float64 { return rec.ResidentKB })
}

func (s Snapshot) sum(pid int, includeChildren bool, value func(Record) float64) (float64, bool) {
	rec, ok := s[pid]
	if !ok {
		return 0, false
	}
	total := value(rec)
	if includeChildren {
		for _, child := range s.Children(pid) {
			// A descendant that vanished between grouping and lookup
			// contributes zero, not an error.
			if childRec, ok := s[child]; ok {
				total += value(childRec)
			}
		}
	}
	return total, true
}

// ElapsedSeconds reports how long pid has been running.
func (s Snapshot) ElapsedSeconds(pid int) (int, bool) {
	rec, ok := s[pid]
	if !ok {
		return 0, false
	}
	return rec.ElapsedSeconds, true
}

// Command reports the full command line of pid.
func (s Snapshot) Command(pid int) (string, bool) {
	rec, ok := s[pid]
	if !ok {
		return "", false
	}
	return rec.Command, true
}
