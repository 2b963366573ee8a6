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

// WriteComparisonResults outputs the comparison, dispatching based on the output format configured.
func WriteComparisonResults(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON comparison")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForComparison(w, result, fmtFloat)
		}, "Wrote CSV comparison")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote comparison table")
	}
}

// formatDelta renders a signed change with an arrow for its direction, colored green
// when it improves the indicator and red when it regresses.
func formatDelta(cfg *contract.Config, ind schema.Indicator, delta float64) string {
	red, green, yellow := colorFuncs(cfg)
	if delta == 0 {
		return yellow(fmt.Sprintf("%.*f", cfg.Precision, 0.0))
	}

	var text string
	if delta > 0 {
		// Explicitly add + sign
		text = fmt.Sprintf("+%.*f ▲", cfg.Precision, delta)
	} else {
		text = fmt.Sprintf("%.*f ▼", cfg.Precision, delta)
	}
	if (delta < 0) == schema.LowerIsBetter(ind) {
		return green(text)
	}
	return red(text)
}

// writeComparisonTable writes the per-class deltas and the summary.
func writeComparisonTable(w io.Writer, result schema.ComparisonResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Path", "Before", "After", "Delta", "Status"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	pathWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	for i, d := range result.Details {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(d.Path, pathWidth),
			fmtFloat(d.Before),
			fmtFloat(d.After),
			formatDelta(cfg, d.Indicator, d.Delta),
			string(d.Status),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := result.Summary
	if _, err := fmt.Fprintf(w, "Showing top %d changes in %s (%s → %s)\n", len(result.Details), cfg.Indicator, s.BaseVersion, s.TargetVersion); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Root delta: %s\n", formatDelta(cfg, cfg.Indicator, s.RootDelta.Get(cfg.Indicator))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "New classes: %d, Removed classes: %d, Modified classes: %d (improved: %d, regressed: %d)\n",
		s.TotalNewClasses, s.TotalRemovedClasses, s.TotalModifiedClasses, s.TotalImproved, s.TotalRegressed); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForComparison writes the comparison details to CSV.
func writeCSVResultsForComparison(w io.Writer, result schema.ComparisonResult, fmtFloat func(float64) string) error {
	header := []string{"rank", "path", "indicator", "before", "after", "delta", "improved", "status"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, d := range result.Details {
			row := []string{
				strconv.Itoa(i + 1),
				d.Path,
				string(d.Indicator),
				fmtFloat(d.Before),
				fmtFloat(d.After),
				fmtFloat(d.Delta),
				strconv.FormatBool(d.Improved),
				string(d.Status),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
