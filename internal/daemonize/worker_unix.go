//go:build !windows

package daemonize

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/zerogee00/bluepill/internal/pidfile"
	"github.com/zerogee00/bluepill/internal/spawn"
)

// RunWorker is generation 1: it decodes the request from req, prepares
// the environment the daemon must start in, spawns the target command
// in a second new session, and writes the daemon pid to the handoff
// pipe. Returning an error before the handoff write terminates this
// generation with nothing on the pipe; it never unwinds into caller
// control flow.
func RunWorker(req io.Reader, handoff *os.File) error {
	// The handoff descriptor arrived without close-on-exec. It must not
	// leak into the daemon, or generation 0 blocks until the daemon
	// itself exits instead of until this generation's handoff.
	unix.CloseOnExec(int(handoff.Fd()))

	var cfg Config
	if err := json.NewDecoder(req).Decode(&cfg); err != nil {
		return fmt.Errorf("decode daemonize request: %w", err)
	}

	argv, err := spawn.SplitCommand(cfg.Command)
	if err != nil {
		return err
	}

	// Resolve and assume the target identity before touching anything
	// on disk: the pid file check below must run as the daemon will.
	if !cfg.Privilege.Empty() && os.Geteuid() == 0 {
		id, err := cfg.Privilege.Resolve()
		if err != nil {
			return err
		}
		if err := id.Apply(); err != nil {
			return err
		}
	}

	// Fail the whole attempt now if the pid file cannot be created,
	// rather than daemonize into a state nothing can supervise.
	if cfg.PIDFile != "" {
		if err := pidfile.Probe(cfg.PIDFile); err != nil {
			return err
		}
	}

	stdio, err := cfg.Stdio.Open()
	if err != nil {
		return err
	}
	defer stdio.Close()

	daemon := exec.Command(argv[0], argv[1:]...)
	daemon.Dir = cfg.Dir
	daemon.Env = spawn.MergeEnv(cfg.Env)
	// Without a configured stdin source the daemon reads from the null
	// device.
	if stdio.Stdin != nil {
		daemon.Stdin = stdio.Stdin
	}
	if stdio.Stdout != nil {
		daemon.Stdout = stdio.Stdout
	} else {
		daemon.Stdout = os.Stdout
	}
	if stdio.Stderr != nil {
		daemon.Stderr = stdio.Stderr
	} else {
		daemon.Stderr = os.Stderr
	}
	// Second-level detach: the daemon leads its own session, fully
	// disassociated from the original caller.
	daemon.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := daemon.Start(); err != nil {
		return fmt.Errorf("start %q: %w", argv[0], err)
	}

	// The pid is final before anyone can observe it: record it, then
	// hand it off, then close the pipe so generation 0 unblocks.
	pid := daemon.Process.Pid
	if cfg.PIDFile != "" {
		if err := pidfile.Write(cfg.PIDFile, pid); err != nil {
			daemon.Process.Kill()
			return err
		}
	}
	if _, err := fmt.Fprintf(handoff, "%d", pid); err != nil {
		if cfg.PIDFile != "" {
			pidfile.Remove(cfg.PIDFile)
		}
		return fmt.Errorf("write pid handoff: %w", err)
	}
	if err := handoff.Close(); err != nil {
		return fmt.Errorf("close pid handoff: %w", err)
	}

	return daemon.Process.Release()
}
