// Package pidfile reads and writes one-integer pid files.
package pidfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/zerogee00/bluepill/internal/logging"
)

// removeAttempts bounds retries of a permission-denied removal before
// the failure is downgraded to a warning.
const removeAttempts = 3

// Write stores pid as decimal text at path, truncating any previous
// content. Mode 0644, the file must be readable by monitoring tools.
func Write(path string, pid int) error {
	if err := os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	return nil
}

// Read parses the pid stored at path.
func Read(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read pid file: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("pid file %s does not contain a pid", path)
	}
	return pid, nil
}

// Remove deletes the pid file. A file that is already gone is fine; a
// permission error is retried a few times and then logged as a warning.
// Removal failures are never surfaced to callers.
func Remove(path string) {
	var err error
	for attempt := 0; attempt < removeAttempts; attempt++ {
		err = os.Remove(path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return
		}
		if !errors.Is(err, fs.ErrPermission) {
			break
		}
	}
	logging.Warn("failed to remove pid file", "path", path, "error", err)
}

// Probe verifies the calling identity can create the pid file, then
// removes the probe again. The daemonize worker runs this after its
// privilege drop so an unwritable pid file fails the attempt before a
// daemon exists.
func Probe(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("pid file %s not writable: %w", path, err)
	}
	f.Close()
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("pid file %s not removable: %w", path, err)
	}
	return nil
}
