package proctable

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"strings"
)

// parseTable parses ps output into a snapshot. Lines whose pid field does
// not parse (the header included) are discarded.
func parseTable(out []byte) Snapshot {
	snap := make(Snapshot)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		rec, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		snap[rec.PID] = rec
	}
	return snap
}

// parseLine splits the five leading fields by whitespace and keeps the
// remainder of the line, verbatim, as the command. Splitting the whole
// line would truncate commands that contain whitespace.
func parseLine(line string) (Record, bool) {
	rest := line
	next := func() string {
		rest = strings.TrimLeft(rest, " \t")
		i := strings.IndexAny(rest, " \t")
		if i < 0 {
			field := rest
			rest = ""
			return field
		}
		field := rest[:i]
		rest = rest[i:]
		return field
	}

	pid, err := strconv.Atoi(next())
	if err != nil || pid <= 0 {
		return Record{}, false
	}
	ppid, _ := strconv.Atoi(next())
	cpu, _ := strconv.ParseFloat(next(), 64)
	rss, _ := strconv.ParseFloat(next(), 64)
	elapsed := ParseElapsed(next())

	return Record{
		PID:            pid,
		PPID:           ppid,
		CPUPercent:     cpu,
		ResidentKB:     rss,
		ElapsedSeconds: elapsed,
		Command:        strings.TrimLeft(rest, " \t"),
	}, true
}

var elapsedPattern = regexp.MustCompile(`^(?:(?:(\d+)-)?(\d+):)?(\d+):(\d+)$`)

// ParseElapsed converts a ps etime field ([[dd-]hh:]mm:ss) to total
// seconds. A field that does not match the grammar parses to 0; the
// zero fallback is deliberately permissive rather than an error.
func ParseElapsed(s string) int {
	m := elapsedPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	days, _ := strconv.Atoi(m[1])
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	seconds, _ := strconv.Atoi(m[4])
	return ((days*24+hours)*60+minutes)*60 + seconds
}
