package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/carson-networks/spend-analytics/internal/analytics"
	"github.com/carson-networks/spend-analytics/internal/storage/transaction"
)

// Report is the output of the analyze command.
type Report struct {
	Summary  analytics.SummaryResult `json:"summary"`
	Trends   *analytics.TrendResult  `json:"trends"`
	Insights []string                `json:"insights"`
}

func newAnalyzeCommand() *cobra.Command {
	var currency string

	cmd := &cobra.Command{
		Use:   "analyze <file.json|->",
		Short: "Print summary, trends and insights for a transactions file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return runAnalyze(cmd.OutOrStdout(), raw, currency)
		},
	}

	cmd.Flags().StringVar(&currency, "currency", analytics.DefaultCurrencySymbol, "currency symbol used in insights")

	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return raw, nil
}

func runAnalyze(out io.Writer, raw []byte, currency string) error {
	batch, err := transaction.ParseBatch(raw)
	if err != nil {
		return err
	}

	report := Report{
		Summary:  analytics.Summarize(batch.Transactions),
		Insights: analytics.GenerateInsights(batch.Transactions, currency),
	}

	trends, err := analytics.MonthlyTrends(batch.Transactions)
	if err != nil {
		return fmt.Errorf("computing trends: %w", err)
	}
	report.Trends = trends

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(report)
}
