package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/internal/parquet"
)

// ExportAnalysis writes every scoring run and class score of the store to two
// Parquet files next to outputFile.
func ExportAnalysis(store contract.AnalysisStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("analysis store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total scoring runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total class records: %d\n", status.TableSizes[classScoresTable])

	runs, err := store.GetAllScoringRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve scoring runs: %w", err)
	}
	scores, err := store.GetAllClassScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve class scores: %w", err)
	}

	parquetRuns := parquet.ConvertScoringRunRecords(runs)
	parquetScores := parquet.ConvertClassScoreRecords(scores)

	runsFile := outputFile + ".scoring_runs.parquet"
	if err := parquet.WriteScoringRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write scoring runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d scoring runs to: %s\n", len(parquetRuns), runsFile)

	scoresFile := outputFile + ".class_scores.parquet"
	if err := parquet.WriteClassScoresParquet(parquetScores, scoresFile); err != nil {
		return fmt.Errorf("failed to write class scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d class score records to: %s\n", len(parquetScores), scoresFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be read with DuckDB, Pandas (via pyarrow) or Apache Spark.")
	return nil
}
