package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// significanceLevel is the p-value below which a correlation is marked significant.
const significanceLevel = 0.05

// WriteValidationResults outputs the correlations, dispatching based on the output format configured.
func WriteValidationResults(result schema.ValidationResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON validation")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForValidation(w, result)
		}, "Wrote CSV validation")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeValidationTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote validation table")
	}
}

// writeCSVResultsForValidation writes one row per metric with full precision values.
func writeCSVResultsForValidation(w io.Writer, result schema.ValidationResult) error {
	header := []string{"indicator", "metric", "coefficient", "p_value", "n", "defined"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range result.Correlations {
			row := []string{
				string(result.Indicator),
				c.Metric,
				strconv.FormatFloat(c.Coefficient, 'g', -1, 64),
				strconv.FormatFloat(c.PValue, 'g', -1, 64),
				strconv.Itoa(c.N),
				strconv.FormatBool(c.Defined),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeValidationTable prints the correlation table of one indicator.
func writeValidationTable(w io.Writer, result schema.ValidationResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Spearman", "P-Value", "Significant"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	_, green, _ := colorFuncs(cfg)
	var data [][]string
	for _, c := range result.Correlations {
		if !c.Defined {
			data = append(data, []string{c.Metric, "n/a", "n/a", "-"})
			continue
		}
		significant := "no"
		if c.PValue < significanceLevel {
			significant = green("yes")
		}
		data = append(data, []string{c.Metric, fmtFloat(c.Coefficient), fmt.Sprintf("%.4f", c.PValue), significant})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	n := 0
	if len(result.Correlations) > 0 {
		n = result.Correlations[0].N
	}
	if _, err := fmt.Fprintf(w, "Validated %s of version %s over %d classes\n", result.Indicator, result.Version, n); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
