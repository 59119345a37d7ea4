package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zerogee00/bluepill/internal/daemonize"
	"github.com/zerogee00/bluepill/internal/logging"
)

func newDaemonizeCmd(ctx *context) *cobra.Command {
	return &cobra.Command{
		Use:   "daemonize <program>",
		Short: "Detach a declared program as a daemon and print its pid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.program(args[0])
			if err != nil {
				return err
			}

			d := &daemonize.Daemonizer{}
			pid, err := d.Daemonize(cmd.Context(), daemonize.Config{
				Command:   p.Command,
				Dir:       p.Dir,
				Env:       p.Env,
				PIDFile:   p.PIDFile,
				Privilege: p.Privilege,
				Stdio:     p.Stdio,
			})
			if err != nil {
				return fmt.Errorf("daemonize %s: %w", args[0], err)
			}

			logging.Debug("program detached", "program", args[0], "pid", pid)
			fmt.Fprintln(cmd.OutOrStdout(), pid)
			return nil
		},
	}
}
