//go:build !windows

// Package daemonize turns an external command into a detached daemon.
//
// The protocol runs across two generations linked by one anonymous
// pipe. Generation 0 (the caller) re-execs this binary as a detach
// worker with the pipe's write end on fd 3, then blocks reading the
// pipe. The worker drops privileges, verifies the pid file, applies
// stdio redirection, spawns the target command in its own session, and
// hands the final daemon pid back as decimal text. A worker that fails
// before the handoff writes nothing, so the caller reads EOF and treats
// the attempt as failed.
package daemonize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/zerogee00/bluepill/internal/metrics"
	"github.com/zerogee00/bluepill/internal/privdrop"
	"github.com/zerogee00/bluepill/internal/spawn"
)

// WorkerCommandName is the hidden CLI command implementing generation 1.
const WorkerCommandName = "__daemon-worker"

// HandoffFD is the worker-side descriptor of the pid handoff pipe.
const HandoffFD = 3

// ErrDaemonizeFailed reports a worker that terminated without handing
// back a daemon pid.
var ErrDaemonizeFailed = errors.New("daemonization failed")

// Config is the detach request sent to the worker generation.
type Config struct {
	Command   string             `json:"command"`
	Dir       string             `json:"dir,omitempty"`
	Env       map[string]string  `json:"env,omitempty"`
	PIDFile   string             `json:"pidFile,omitempty"`
	Privilege privdrop.Spec      `json:"privilege"`
	Stdio     spawn.Redirections `json:"stdio"`
}

// Daemonizer launches detach workers.
type Daemonizer struct {
	// WorkerArgv overrides the argv used to start generation 1.
	// Defaults to re-executing this binary with WorkerCommandName.
	WorkerArgv []string
}

// Daemonize detaches cfg.Command as a daemon and returns its pid.
func (d *Daemonizer) Daemonize(ctx context.Context, cfg Config) (pid int, err error) {
	defer func() { metrics.ObserveDaemonize(err) }()

	payload, err := json.Marshal(cfg)
	if err != nil {
		return 0, fmt.Errorf("encode daemonize request: %w", err)
	}

	argv := d.WorkerArgv
	if len(argv) == 0 {
		exe, err := os.Executable()
		if err != nil {
			return 0, fmt.Errorf("locate own binary: %w", err)
		}
		argv = []string{exe, WorkerCommandName}
	}

	r, w, err := os.Pipe()
	if err != nil {
		return 0, fmt.Errorf("create handoff pipe: %w", err)
	}
	defer r.Close()

	worker := exec.CommandContext(ctx, argv[0], argv[1:]...)
	worker.Stdin = bytes.NewReader(payload)
	worker.Stderr = os.Stderr
	worker.ExtraFiles = []*os.File{w}
	// New session: the worker and everything below it leave the
	// caller's process group and controlling terminal.
	worker.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := worker.Start(); err != nil {
		w.Close()
		return 0, fmt.Errorf("start detach worker: %w", err)
	}
	w.Close()

	// Reap asynchronously so the worker never lingers as a zombie while
	// we block on the pipe.
	go worker.Wait()

	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read pid handoff: %w", err)
	}
	pid, convErr := strconv.Atoi(strings.TrimSpace(string(data)))
	if convErr != nil || pid <= 0 {
		return 0, ErrDaemonizeFailed
	}
	return pid, nil
}
