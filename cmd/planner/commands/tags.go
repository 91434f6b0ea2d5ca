package commands

import (
	"github.com/spf13/cobra"
)

var TagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the numbered interest tags and known regions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		printTags(cmd.OutOrStdout())
	},
}
