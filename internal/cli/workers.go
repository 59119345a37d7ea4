package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/zerogee00/bluepill/internal/daemonize"
	"github.com/zerogee00/bluepill/internal/executor"
)

// The worker commands are the later generations of the spawning
// protocols. They are started only by this binary re-executing itself,
// read their request from stdin, and report back on the pipe inherited
// on fd 3.

func newDaemonWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:    daemonize.WorkerCommandName,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handoff := os.NewFile(daemonize.HandoffFD, "handoff")
			if handoff == nil {
				return errors.New("pid handoff pipe unavailable on fd 3")
			}
			return daemonize.RunWorker(os.Stdin, handoff)
		},
	}
}

func newExecWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:    executor.WorkerCommandName,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := os.NewFile(executor.ResultFD, "result")
			if result == nil {
				return errors.New("result pipe unavailable on fd 3")
			}
			return executor.RunWorker(os.Stdin, result)
		},
	}
}
