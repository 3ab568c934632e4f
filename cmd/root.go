package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/mathdrill/internal/config"
)

var errNotTerminal = errors.New("mathdrill needs an interactive terminal")

var rootCmd = &cobra.Command{
	Use:   "mathdrill",
	Short: "Arithmetic drill in the terminal",
	Long:  "Mathdrill shows one arithmetic exercise at a time and grades each answer on the spot.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errNotTerminal
		}
		return runApp(cmd, cfg)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides MATHDRILL_CONFIG env var)")
	rootCmd.Flags().String("op", "", "Start drilling this operation right away (addition, subtraction, multiplication, division)")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves settings with --op and --config taking priority
// over the environment and the config file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var flags config.Flags
	flags.ConfigPath, _ = cmd.Flags().GetString("config")
	flags.Operation, _ = cmd.Flags().GetString("op")
	return config.Load(flags)
}
