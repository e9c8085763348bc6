package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/cursorkit/internal/app"
)

const (
	keyConfig   = "config"
	keyLogLevel = "log_level"
)

// newRootCmd builds the command tree. Flags and CURSORKIT_* variables
// are resolved through one viper instance per tree.
func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CURSORKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "cursorkit",
		Short: "Multi-cursor editing commands for plain text files",
		Long: `cursorkit runs multi-cursor selection and editing commands against a file
and prints the resulting text, selections and edit journal as JSON.`,
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "config file (TOML or YAML)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = v.BindPFlag(keyConfig, root.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag(keyLogLevel, root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newRunCmd(v), newListCmd(v))
	return root
}

// openApp builds the application from the resolved flags.
func openApp(cmd *cobra.Command, v *viper.Viper) (*app.Application, error) {
	return app.New(app.Options{
		ConfigPath: v.GetString(keyConfig),
		LogLevel:   v.GetString(keyLogLevel),
		LogOutput:  cmd.ErrOrStderr(),
	})
}
