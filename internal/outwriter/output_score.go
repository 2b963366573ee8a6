package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/internal/parquet"
	"github.com/huangsam/codequal/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// jsonScore is the JSON document of a scored version.
type jsonScore struct {
	Project string                      `json:"project"`
	Version string                      `json:"version"`
	Tree    *schema.HierarchyNode       `json:"tree"`
	Smells  schema.SmellSummary         `json:"smells"`
	Classes []schema.EnrichedClassScore `json:"classes"`
}

// WriteScoreResults outputs the ranked classes, dispatching based on the output format configured.
func WriteScoreResults(result *schema.ScoreResult, ranked []schema.EnrichedClassScore, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForScore(w, result, ranked)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForScore(w, ranked, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.ConvertClassScores(result.Project, result.Version, ranked))
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreTable(w, result, ranked, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeJSONResultsForScore writes the tree, smells and ranked classes as one document.
func writeJSONResultsForScore(w io.Writer, result *schema.ScoreResult, ranked []schema.EnrichedClassScore) error {
	return writeJSON(w, jsonScore{
		Project: result.Project,
		Version: result.Version,
		Tree:    result.Tree,
		Smells:  result.Smells,
		Classes: ranked,
	})
}

// writeCSVResultsForScore writes one row per ranked class with all six indicators.
func writeCSVResultsForScore(w io.Writer, ranked []schema.EnrichedClassScore, fmtFloat func(float64) string) error {
	header := []string{"rank", "path", "long_name", "label"}
	for _, ind := range schema.AllIndicators {
		header = append(header, string(ind))
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range ranked {
			rec := []string{strconv.Itoa(c.Rank), c.Path, c.LongName, c.Label}
			for _, ind := range schema.AllIndicators {
				rec = append(rec, fmtFloat(c.Get(ind)))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeScoreTable generates and writes the human-readable table.
func writeScoreTable(w io.Writer, result *schema.ScoreResult, ranked []schema.EnrichedClassScore, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Rank", "Path"}
	if cfg.Detail {
		headers = append(headers, indicatorHeaders()...)
	} else {
		headers = append(headers, string(cfg.Indicator))
	}
	headers = append(headers, "Label")
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	pathWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	for _, c := range ranked {
		row := []string{strconv.Itoa(c.Rank), contract.TruncatePath(c.Path, pathWidth)}
		if cfg.Detail {
			for _, ind := range schema.AllIndicators {
				row = append(row, fmtFloat(c.Get(ind)))
			}
		} else {
			row = append(row, fmtFloat(c.Get(cfg.Indicator)))
		}
		label := c.Label
		if cfg.UseColors {
			label = contract.GetColorLabel(c.Maintainability)
		}
		data = append(data, append(row, label))
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing top %d of %d classes (%s total: %s)\n",
		len(ranked), len(result.Classes), cfg.Indicator, fmtFloat(result.Tree.Get(cfg.Indicator))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Smells: duplicate=%s, long parameter=%s, long method=%s, lazy=%s, large=%s\n",
		fmtFloat(result.Smells.DuplicateCode), fmtFloat(result.Smells.LongParameter), fmtFloat(result.Smells.LongMethod),
		fmtFloat(result.Smells.LazyClass), fmtFloat(result.Smells.LargeClass)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
