package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/hmap/cmd/perf"
	"github.com/ValentinKolb/hmap/cmd/shell"
	"github.com/ValentinKolb/hmap/cmd/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command, without a subcommand it starts the shell
	RootCmd = &cobra.Command{
		Use:   "hmap",
		Short: "fixed capacity hash table with a command shell",
		Long: fmt.Sprintf(`hmap (v%s)

A fixed capacity hash table with separate chaining, written in Go.
Without a subcommand an interactive shell on a new table is started.`, Version),
		PersistentPreRunE: setup,
		RunE:              shell.Run,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of hmap",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hmap v%s\n", Version)
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(shell.ShellCmd)
	RootCmd.AddCommand(perf.PerfCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupTableFlags(RootCmd)
	RootCmd.Flags().AddFlagSet(shell.ShellCmd.Flags())
}

// setup binds the flags of the executed command and configures the loggers
func setup(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	if err := util.InitLoggers(viper.GetString("log-level")); err != nil {
		return err
	}

	if capacity := util.GetCapacity(); capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d", capacity)
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
