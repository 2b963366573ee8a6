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

// WriteTrendResults outputs the trend points, dispatching based on the output format configured.
func WriteTrendResults(result schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON trend results")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForTrend(w, result, fmtFloat)
		}, "Wrote CSV trend results")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendTable(w, result, cfg, fmtFloat, intFmt, duration)
		}, "Wrote trend table")
	}
}

// writeCSVResultsForTrend writes one row per version with its root totals.
func writeCSVResultsForTrend(w io.Writer, result schema.TrendResult, fmtFloat func(float64) string) error {
	header := []string{"version", "classes"}
	for _, ind := range schema.AllIndicators {
		header = append(header, string(ind))
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range result.Points {
			rec := []string{p.Version, strconv.Itoa(p.Classes)}
			for _, ind := range schema.AllIndicators {
				rec = append(rec, fmtFloat(p.Get(ind)))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeTrendTable prints the root totals of every version, with the change of the
// configured indicator against the previous version.
func writeTrendTable(w io.Writer, result schema.TrendResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := append([]string{"Version", "Classes"}, indicatorHeaders()...)
	headers = append(headers, "Δ "+string(cfg.Indicator))
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, p := range result.Points {
		row := []string{p.Version, fmt.Sprintf(intFmt, p.Classes)}
		for _, ind := range schema.AllIndicators {
			row = append(row, fmtFloat(p.Get(ind)))
		}
		delta := "-"
		if i > 0 {
			delta = formatDelta(cfg, cfg.Indicator, p.Get(cfg.Indicator)-result.Points[i-1].Get(cfg.Indicator))
		}
		data = append(data, append(row, delta))
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing %d versions of %s\n", len(result.Points), result.Project); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
