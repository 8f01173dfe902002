package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ssargent/gs1kit/pkg/parser"
	"github.com/ssargent/gs1kit/pkg/tokenizer"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <payload>...",
	Short: "Decode one or more GS1 payloads",
	Long: `Decode GS1 payloads given on the command line.

Payloads in parenthesis notation are used as is. For concatenated payloads
the GS separator can be typed as <GS> (see --separator-alias).

Examples:
  gs1 parse "(01)09501101530003(17)251231(10)ABC123"
  gs1 parse --mode strict "<GS>01095011015300031725123110ABC123"
  gs1 parse -o json "(01)09501101530003" "(00)106141411234567897"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alias, _ := cmd.Flags().GetString("separator-alias")

		p, err := container.GetParser()
		if err != nil {
			return err
		}

		results := make([]*parser.Result, 0, len(args))
		failed := 0
		for i, arg := range args {
			result, err := p.Parse(expandSeparator(arg, alias))
			if err != nil {
				failed++
				cmd.PrintErrf("payload %d: %v\n", i+1, err)
				continue
			}
			results = append(results, result)
		}

		format := container.GetConfig().Output.Format
		if err := outputResults(cmd.OutOrStdout(), format, p.Registry(), results); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d payloads failed to parse", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().String("separator-alias", "<GS>", "Text replaced by the GS separator before parsing (empty disables)")
}

// expandSeparator replaces the printable alias of the GS separator
func expandSeparator(payload, alias string) string {
	if alias == "" {
		return payload
	}
	return strings.ReplaceAll(payload, alias, string(tokenizer.Separator))
}
