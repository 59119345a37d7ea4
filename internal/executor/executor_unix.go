//go:build !windows

// Package executor runs a command to completion under a dropped
// identity and captures its output and exit status.
//
// The protocol spans three generations. Generation 0 re-execs this
// binary as an exec worker with a result pipe on fd 3 and reads the
// pipe to end-of-stream. The worker spawns the target command as
// generation 2 with the identity change applied between fork and exec,
// collects the entirety of its stdout and stderr, and writes one
// serialized Result back before exiting.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/zerogee00/bluepill/internal/metrics"
	"github.com/zerogee00/bluepill/internal/privdrop"
)

// WorkerCommandName is the hidden CLI command implementing generation 1.
const WorkerCommandName = "__exec-worker"

// ResultFD is the worker-side descriptor of the result pipe.
const ResultFD = 3

// Config is the execution request sent to the worker generation.
type Config struct {
	Command   string            `json:"command"`
	Dir       string            `json:"dir,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
	Privilege privdrop.Spec     `json:"privilege"`
}

// Executor launches exec workers.
type Executor struct {
	// WorkerArgv overrides the argv used to start generation 1.
	// Defaults to re-executing this binary with WorkerCommandName.
	WorkerArgv []string
}

// Execute runs cfg.Command to completion and returns its captured
// output and exit status. The returned Result is owned by the caller.
func (e *Executor) Execute(ctx context.Context, cfg Config) (res *Result, err error) {
	start := time.Now()
	defer func() { metrics.ObserveExec(time.Since(start), err) }()

	payload, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode exec request: %w", err)
	}

	argv := e.WorkerArgv
	if len(argv) == 0 {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("locate own binary: %w", err)
		}
		argv = []string{exe, WorkerCommandName}
	}

	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("create result pipe: %w", err)
	}
	defer r.Close()

	worker := exec.CommandContext(ctx, argv[0], argv[1:]...)
	worker.Stdin = bytes.NewReader(payload)
	worker.Stderr = os.Stderr
	worker.ExtraFiles = []*os.File{w}
	worker.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := worker.Start(); err != nil {
		w.Close()
		return nil, fmt.Errorf("start exec worker: %w", err)
	}
	w.Close()

	data, readErr := io.ReadAll(r)
	waitErr := worker.Wait()
	if readErr != nil {
		return nil, fmt.Errorf("read result pipe: %w", readErr)
	}
	if waitErr != nil {
		return nil, fmt.Errorf("exec worker: %w", waitErr)
	}

	return DecodeResult(data)
}
