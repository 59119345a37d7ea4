//go:build !windows

package executor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/zerogee00/bluepill/internal/spawn"
)

// preExecExitCode is the distinguished status a generation 2 that never
// reached its image replacement reports, shell convention for "command
// not runnable".
const preExecExitCode = 127

// RunWorker is generation 1: it decodes the request from req, runs the
// target command as generation 2 with the identity drop applied by the
// kernel between fork and exec, captures the whole of its stdout and
// stderr, and writes one serialized Result to the result pipe.
func RunWorker(req io.Reader, result *os.File) error {
	unix.CloseOnExec(int(result.Fd()))

	var cfg Config
	if err := json.NewDecoder(req).Decode(&cfg); err != nil {
		return fmt.Errorf("decode exec request: %w", err)
	}

	res := runCommand(cfg)

	if err := EncodeResult(result, res); err != nil {
		return err
	}
	if err := result.Close(); err != nil {
		return fmt.Errorf("close result pipe: %w", err)
	}
	return nil
}

func runCommand(cfg Config) *Result {
	argv, err := spawn.SplitCommand(cfg.Command)
	if err != nil {
		return preExecFailure(err)
	}

	env := spawn.MergeEnv(cfg.Env)
	var cred *syscall.Credential
	if !cfg.Privilege.Empty() && os.Geteuid() == 0 {
		id, err := cfg.Privilege.Resolve()
		if err != nil {
			return preExecFailure(err)
		}
		cred = id.Credential()
		if cred != nil && id.Home != "" {
			env = append(env, "HOME="+id.Home)
		}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = env
	cmd.Stdin = nil // null source
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if cred != nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{Credential: cred}
	}

	exitCode := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			// Generation 2 never reached its exec. Report on the
			// captured stderr channel so the diagnostic travels inside
			// the result rather than as an unstructured fault.
			fmt.Fprintf(&stderr, "bluepill: %v\n", err)
			exitCode = preExecExitCode
		}
	}

	return &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: exitCode,
	}
}

func preExecFailure(err error) *Result {
	return &Result{
		Stderr:   []byte(fmt.Sprintf("bluepill: %v\n", err)),
		ExitCode: preExecExitCode,
	}
}
