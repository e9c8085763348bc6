package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tidwall/match"
)

func newListCmd(v *viper.Viper) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available commands",
		Long: `List every command name, including configured chains and script commands.

Examples:
  cursorkit list
  cursorkit list --filter 'cursors_*'
  cursorkit list --filter '*soft*'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer application.Close()

			out := cmd.OutOrStdout()
			for _, name := range application.Commands() {
				if filter != "" && !match.Match(name, filter) {
					continue
				}
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only names matching this glob (* and ?)")
	return cmd
}
