package cli

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zerogee00/bluepill/internal/proctable"
	"github.com/zerogee00/bluepill/internal/tui"
)

func newTopCmd(ctx *context) *cobra.Command {
	var refresh time.Duration

	cmd := &cobra.Command{
		Use:   "top <program|pid>",
		Short: "Watch live usage of a process tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("top requires an interactive terminal")
			}

			pid, err := ctx.resolvePID(args[0])
			if err != nil {
				return err
			}

			return tui.NewTop(proctable.NewCache(), pid, refresh).Run(cmd.Context())
		},
	}

	cmd.Flags().DurationVar(&refresh, "refresh", 2*time.Second, "Refresh interval")

	return cmd
}
