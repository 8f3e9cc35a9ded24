package terminal

import (
	"io"
	"os"

	"github.com/de-tools/claims-report/pkg/runtime/terminal/commands"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	setup      commands.Setup
	configPath string
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Setup  commands.Setup
	Output io.Writer
	Errors io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Errors == nil {
		opts.Errors = os.Stderr
	}

	cli := &CLI{setup: opts.Setup}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	cli.rootCmd.SetErr(opts.Errors)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "claims",
		Short:         "Delivery claims report tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "",
		"Path to the config file (default is ./claims.yaml)")

	cmd.AddCommand(commands.NewReportCmd(&cli.configPath, cli.setup))
	cmd.AddCommand(commands.NewModesCmd())
	cmd.AddCommand(commands.NewStatusesCmd())

	return cmd
}
