package shell

import (
	"fmt"

	"github.com/ValentinKolb/hmap/cmd/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// ShellCmd starts the interactive shell
	ShellCmd = &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell on a new hash table",
		Long: `Start an interactive shell on a new, empty hash table.
Commands are read line by line from stdin until EOF (or -q).
Type -h inside the shell for a list of commands.`,
		PreRunE: processShellConfig,
		RunE:    Run,
	}
)

func init() {
	key := "prompt"
	ShellCmd.Flags().String(key, "> ", util.WrapString("Prompt printed before every command"))
}

func processShellConfig(cmd *cobra.Command, _ []string) error {
	return util.BindCommandFlags(cmd)
}

// Run starts a shell on stdin/stdout using the configured capacity
func Run(cmd *cobra.Command, _ []string) error {
	capacity := util.GetCapacity()

	s, err := util.NewStore(capacity)
	if err != nil {
		return fmt.Errorf("creating table with capacity %d: %w", capacity, err)
	}
	defer s.Close()

	log.Infof("started shell with %d buckets", capacity)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Hash Table Shell")
	fmt.Fprintln(out, "Help\t-h\tList of all commands.")

	prompt := "> "
	if viper.IsSet("prompt") {
		prompt = viper.GetString("prompt")
	}

	session := NewSession(s, cmd.InOrStdin(), out, cmd.ErrOrStderr(), prompt)
	if err := session.Run(); err != nil {
		return err
	}

	fmt.Fprintln(out, "Exiting.")
	return nil
}
