package cli

import (
	stdcontext "context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zerogee00/bluepill/internal/config"
	"github.com/zerogee00/bluepill/internal/logging"
	"github.com/zerogee00/bluepill/internal/pidfile"
)

func NewRootCmd() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *context) {
	var configFile string
	var verbose bool
	var logJSON bool

	root := &cobra.Command{
		Use:   "bluepill",
		Short: "Daemonize, supervise and measure OS processes",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(logging.Options{Verbose: verbose, JSONFormat: logJSON})
			return nil
		},
	}

	root.PersistentFlags().
		StringVarP(&configFile, "file", "f", "bluepill.yaml", "Path to program manifest")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON records")

	ctx := &context{configFile: &configFile}
	root.AddCommand(newDaemonizeCmd(ctx))
	root.AddCommand(newRunCmd(ctx))
	root.AddCommand(newStatusCmd(ctx))
	root.AddCommand(newTopCmd(ctx))
	root.AddCommand(newDaemonWorkerCmd())
	root.AddCommand(newExecWorkerCmd())

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root, ctx
}

// Execute runs the CLI entrypoint.
func Execute() {
	ctx, stop := signal.NotifyContext(stdcontext.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	root.SetContext(ctx)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type context struct {
	configFile *string
}

func (c *context) loadConfig() (*config.File, error) {
	return config.Load(*c.configFile)
}

func (c *context) program(name string) (*config.Program, error) {
	doc, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return doc.Program(name)
}

// resolvePID turns a numeric argument into a pid directly, and a
// program name into the pid stored in that program's pid file.
func (c *context) resolvePID(arg string) (int, error) {
	if pid, err := strconv.Atoi(arg); err == nil {
		if pid <= 0 {
			return 0, fmt.Errorf("invalid pid %q", arg)
		}
		return pid, nil
	}

	p, err := c.program(arg)
	if err != nil {
		return 0, err
	}
	if p.PIDFile == "" {
		return 0, fmt.Errorf("program %q declares no pid file", arg)
	}
	return pidfile.Read(p.PIDFile)
}
