//go:build !windows

package privdrop

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// Apply transitions the calling process to the resolved identity. It is
// a no-op unless the process runs as root; dropping privilege from an
// unprivileged process is meaningless and must be skipped, not
// attempted. The order is mandatory: group list, then gid, then uid
// last. After the uid drop the process typically cannot change gids.
func (id *Identity) Apply() error {
	if id == nil || os.Geteuid() != 0 {
		return nil
	}

	if groups := id.groupList(); len(groups) > 0 {
		gids := make([]int, len(groups))
		for i, g := range groups {
			gids[i] = int(g)
		}
		if err := unix.Setgroups(gids); err != nil {
			return fmt.Errorf("setgroups: %w", err)
		}
	}
	if id.hasGID {
		if err := unix.Setregid(int(id.GID), int(id.GID)); err != nil {
			return fmt.Errorf("setregid %d: %w", id.GID, err)
		}
	}
	if id.hasUID {
		if err := unix.Setreuid(int(id.UID), int(id.UID)); err != nil {
			return fmt.Errorf("setreuid %d: %w", id.UID, err)
		}
		if id.Home != "" {
			os.Setenv("HOME", id.Home)
		}
	}

	return nil
}

// Credential builds the fork-side drop for an exec.Cmd child: the kernel
// applies it between fork and exec, so the spawned generation starts
// life already under the target identity. Nil when no change is
// requested or the caller is not root.
func (id *Identity) Credential() *syscall.Credential {
	if id == nil || os.Geteuid() != 0 {
		return nil
	}
	if !id.hasUID && !id.hasGID && len(id.Groups) == 0 {
		return nil
	}

	cred := &syscall.Credential{
		Uid: uint32(os.Getuid()),
		Gid: uint32(os.Getgid()),
	}
	if id.hasUID {
		cred.Uid = id.UID
	}
	if id.hasGID {
		cred.Gid = id.GID
	}
	cred.Groups = append([]uint32(nil), id.groupList()...)
	return cred
}
