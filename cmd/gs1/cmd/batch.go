package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/ssargent/gs1kit/pkg/gs1err"
	"github.com/ssargent/gs1kit/pkg/parser"
)

// batchLine is the JSON record written for every input line
type batchLine struct {
	Line     int            `json:"line"`
	Payload  string         `json:"payload"`
	Result   *parser.Result `json:"result,omitempty"`
	Error    string         `json:"error,omitempty"`
	Kind     string         `json:"kind,omitempty"`
	AI       string         `json:"ai,omitempty"`
	Position *int           `json:"position,omitempty"`
}

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [file|-]",
	Short: "Decode one payload per line",
	Long: `Decode a file of payloads, one per line, and write one JSON object per
line to stdout. Blank lines are skipped. Reads stdin when the file is "-"
or omitted.

Examples:
  gs1 batch scans.txt
  cat scans.txt | gs1 batch --mode strict --metrics`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alias, _ := cmd.Flags().GetString("separator-alias")
		dumpMetrics, _ := cmd.Flags().GetBool("metrics")

		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open batch file: %w", err)
			}
			defer f.Close()
			in = f
		}

		p, err := container.GetParser()
		if err != nil {
			return err
		}
		logger, err := container.GetLogger()
		if err != nil {
			return err
		}

		total, failed, err := runBatch(in, cmd.OutOrStdout(), p, alias)
		if err != nil {
			return err
		}
		logger.Info("batch complete", slog.Int("payloads", total), slog.Int("failed", failed))

		if dumpMetrics {
			if err := writeMetrics(cmd.ErrOrStderr()); err != nil {
				return fmt.Errorf("failed to write metrics: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("separator-alias", "<GS>", "Text replaced by the GS separator before parsing (empty disables)")
	batchCmd.Flags().Bool("metrics", false, "Write parse metrics in prometheus text format to stderr when done")
}

// runBatch parses every non-blank line of in and writes one JSON record per
// payload to out
func runBatch(in io.Reader, out io.Writer, p *parser.Parser, alias string) (int, int, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	encoder := json.NewEncoder(out)

	total, failed, lineNo := 0, 0, 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		total++

		payload := expandSeparator(line, alias)
		record := batchLine{Line: lineNo, Payload: payload}

		result, err := p.Parse(payload)
		if err != nil {
			failed++
			record.Error = err.Error()
			record.Kind = gs1err.KindOf(err).String()
			var gerr *gs1err.Error
			if errors.As(err, &gerr) {
				record.AI = gerr.AI
				if gerr.Pos >= 0 {
					pos := gerr.Pos
					record.Position = &pos
				}
			}
		} else {
			record.Result = result
		}

		if err := encoder.Encode(record); err != nil {
			return total, failed, fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return total, failed, fmt.Errorf("failed to read batch input: %w", err)
	}

	return total, failed, nil
}

// writeMetrics dumps the container's metrics registry in text exposition format
func writeMetrics(w io.Writer) error {
	families, err := container.GetMetricsRegistry().Gather()
	if err != nil {
		return err
	}

	encoder := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := encoder.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
