//go:build !windows

package proctable

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Alive probes pid with the null signal. EPERM still proves existence
// (the process is there, we just may not signal it); only ESRCH means
// gone. Any other kernel error propagates, the probe makes a narrow
// existence claim and nothing more.
func Alive(pid int) (bool, error) {
	err := unix.Kill(pid, 0)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, unix.EPERM):
		return true, nil
	case errors.Is(err, unix.ESRCH):
		return false, nil
	default:
		return false, fmt.Errorf("signal pid %d: %w", pid, err)
	}
}
