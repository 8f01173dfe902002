package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ssargent/gs1kit/pkg/ai"
	"github.com/ssargent/gs1kit/pkg/parser"
	"gopkg.in/yaml.v3"
)

// outputResults displays decoded payloads
func outputResults(w io.Writer, format string, reg *ai.Registry, results []*parser.Result) error {
	switch format {
	case "json":
		return outputResultsJSON(w, results)
	case "yaml":
		return outputResultsYAML(w, results)
	default:
		return outputResultsTable(w, reg, results)
	}
}

// outputResultsTable displays each payload as a table of its fields
func outputResultsTable(w io.Writer, reg *ai.Registry, results []*parser.Result) error {
	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "AI\tTITLE\tTYPE\tVALUE")
		for _, e := range result.Elements() {
			title := ""
			if spec, ok := reg.Find(e.Code); ok {
				title = spec.Title
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Code, title, e.Value.Kind(), e.Value)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// outputResultsJSON displays each payload as an indented JSON object
func outputResultsJSON(w io.Writer, results []*parser.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	for _, result := range results {
		if err := encoder.Encode(result); err != nil {
			return err
		}
	}
	return nil
}

// outputResultsYAML displays the payloads as a stream of YAML documents
func outputResultsYAML(w io.Writer, results []*parser.Result) error {
	encoder := yaml.NewEncoder(w)
	for _, result := range results {
		if err := encoder.Encode(result); err != nil {
			return err
		}
	}
	return encoder.Close()
}

// specRow is the JSON rendering of a registry entry
type specRow struct {
	Code       string `json:"code"`
	Title      string `json:"title"`
	Format     string `json:"format"`
	CheckDigit bool   `json:"check_digit"`
	Decoder    string `json:"decoder"`
}

// outputSpecs displays the AI table
func outputSpecs(w io.Writer, format string, reg *ai.Registry) error {
	switch format {
	case "yaml":
		encoder := yaml.NewEncoder(w)
		if err := encoder.Encode(reg); err != nil {
			return err
		}
		return encoder.Close()
	case "json":
		rows := make([]specRow, 0, reg.Len())
		for _, s := range reg.Specs() {
			rows = append(rows, specRow{
				Code:       s.Code,
				Title:      s.Title,
				Format:     s.FormatString(),
				CheckDigit: s.CheckDigit,
				Decoder:    s.Decoder.String(),
			})
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AI\tFORMAT\tCHECK\tDECODER\tTITLE")
	for _, s := range reg.Specs() {
		check := ""
		if s.CheckDigit {
			check = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.Code, s.FormatString(), check, s.Decoder, s.Title)
	}
	return tw.Flush()
}
