package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/gs1kit/pkg/checkdigit"
)

// checkDigitCmd represents the check-digit command
var checkDigitCmd = &cobra.Command{
	Use:   "check-digit <digits>",
	Short: "Compute or verify a GS1 mod-10 check digit",
	Long: `Compute the GS1 mod-10 check digit of a digit string, or verify the
final digit of a complete number with --validate. --append prints the
complete number instead of the digit alone.

Examples:
  gs1 check-digit 0950110153000
  gs1 check-digit --append 10614141123456789
  gs1 check-digit --validate 09501101530003`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		validate, _ := cmd.Flags().GetBool("validate")
		appendDigit, _ := cmd.Flags().GetBool("append")
		digits := args[0]

		if validate {
			ok, err := checkdigit.Validate(digits)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("invalid check digit in %s", digits)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		}

		if appendDigit {
			number, err := checkdigit.Append(digits)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), number)
			return nil
		}

		digit, err := checkdigit.Calculate(digits)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), digit)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkDigitCmd)

	checkDigitCmd.Flags().Bool("validate", false, "Verify the last digit instead of computing one")
	checkDigitCmd.Flags().Bool("append", false, "Print the digits followed by their check digit")
	checkDigitCmd.MarkFlagsMutuallyExclusive("validate", "append")
}
