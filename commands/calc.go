// Package commands holds the CLI subcommands registered on the PocketBase
// root command.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"budgettool/budget"
	"budgettool/services"
)

type calcResult struct {
	Document budget.Document `json:"document"`
	Totals   budget.Totals   `json:"totals"`
	Issues   []budget.Issue  `json:"issues"`
}

// NewCalcCommand returns the "calc" command, which reads a budget document
// from a JSON file (or stdin when the path is "-"), normalizes it and prints
// the totals as JSON or the CSV export.
func NewCalcCommand(letterhead services.Letterhead) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "calc <file.json>",
		Short: "Compute the totals of a budget document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			doc := budget.NormalizeDocument(raw)
			totals := budget.ComputeTotals(doc)

			switch format {
			case "json":
				issues := budget.Validate(doc)
				if issues == nil {
					issues = []budget.Issue{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(calcResult{Document: doc, Totals: totals, Issues: issues})
			case "csv":
				out, err := services.GenerateCSV(services.BuildExportData(doc, totals, letterhead))
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			return fmt.Errorf("unsupported format %q (use json or csv)", format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or csv")
	return cmd
}

func readDocument(stdin io.Reader, path string) (any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return raw, nil
}
