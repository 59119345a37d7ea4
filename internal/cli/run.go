package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zerogee00/bluepill/internal/executor"
	"github.com/zerogee00/bluepill/internal/privdrop"
)

func newRunCmd(ctx *context) *cobra.Command {
	var user, group, dir string
	var groups []string

	cmd := &cobra.Command{
		Use:   "run <program|command>",
		Short: "Run a command to completion, relaying output and exit status",
		Long: `Run executes a declared program, or a literal command string when the
argument matches no program, blocking until it exits. Stdout and stderr
are captured in full and relayed; the command string is word-split with
quoting respected and never handed to a shell.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := executor.Config{
				Command: args[0],
				Dir:     dir,
				Privilege: privdrop.Spec{
					User:   user,
					Group:  group,
					Groups: groups,
				},
			}
			if p, err := ctx.program(args[0]); err == nil {
				cfg.Command = p.Command
				cfg.Dir = p.Dir
				cfg.Env = p.Env
				cfg.Privilege = p.Privilege
			}

			e := &executor.Executor{}
			res, err := e.Execute(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}

			cmd.OutOrStdout().Write(res.Stdout)
			cmd.ErrOrStderr().Write(res.Stderr)
			if res.ExitCode != 0 {
				return fmt.Errorf("command exited with status %d", res.ExitCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Run as this user")
	cmd.Flags().StringVar(&group, "group", "", "Run with this primary group")
	cmd.Flags().StringSliceVar(&groups, "groups", nil, "Supplementary groups")
	cmd.Flags().StringVar(&dir, "dir", "", "Working directory")

	return cmd
}
