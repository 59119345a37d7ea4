package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	units "github.com/docker/go-units"

	"github.com/zerogee00/bluepill/internal/proctable"
)

func newStatusCmd(ctx *context) *cobra.Command {
	var withChildren bool

	cmd := &cobra.Command{
		Use:   "status <program|pid>",
		Short: "Report liveness and resource usage for a process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := ctx.resolvePID(args[0])
			if err != nil {
				return err
			}

			alive, err := proctable.Alive(pid)
			if err != nil {
				return err
			}

			cache := proctable.NewCache()
			snap, err := cache.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PID\tALIVE\tCPU%\tRSS\tUPTIME\tCOMMAND")

			cpu, rss, uptime, command := "-", "-", "-", "-"
			if v, ok := snap.CPUPercent(pid, withChildren); ok {
				cpu = fmt.Sprintf("%.1f", v)
			}
			if v, ok := snap.ResidentKB(pid, withChildren); ok {
				rss = units.BytesSize(v * 1024)
			}
			if v, ok := snap.ElapsedSeconds(pid); ok {
				uptime = (time.Duration(v) * time.Second).String()
			}
			if v, ok := snap.Command(pid); ok {
				command = v
			}

			fmt.Fprintf(w, "%d\t%t\t%s\t%s\t%s\t%s\n", pid, alive, cpu, rss, uptime, command)
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&withChildren, "with-children", false, "Aggregate usage across all descendants")

	return cmd
}
