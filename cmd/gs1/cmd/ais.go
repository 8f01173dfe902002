package cmd

import (
	"github.com/spf13/cobra"
)

// aisCmd represents the ais command
var aisCmd = &cobra.Command{
	Use:   "ais",
	Short: "List the Application Identifiers the decoder knows",
	Long: `List the effective AI table: the standard table plus any AIs added or
overridden by the configuration file.

Examples:
  gs1 ais
  gs1 ais -o yaml > ais.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := container.GetParser()
		if err != nil {
			return err
		}
		return outputSpecs(cmd.OutOrStdout(), container.GetConfig().Output.Format, p.Registry())
	},
}

func init() {
	rootCmd.AddCommand(aisCmd)
}
