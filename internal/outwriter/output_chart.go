package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
)

// errParquetUnsupported is returned by outputs that have no columnar form.
var errParquetUnsupported = errors.New("parquet output is only supported for the class table of the score command")

// WriteChartResults outputs the single-indicator tree, dispatching based on the output format configured.
func WriteChartResults(chart schema.ChartNode, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, chart)
		}, "Wrote JSON chart")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForChart(w, chart)
		}, "Wrote CSV chart")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		fmtFloat, _ := createFormatters(cfg.Precision)
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeChartTree(w, chart, fmtFloat)
		}, "Wrote chart")
	}
}

// chartItem is one node of a pre-order chart walk.
type chartItem struct {
	node  *schema.ChartNode
	depth int
}

// walkChart visits the chart in pre-order without recursion.
func walkChart(root *schema.ChartNode, fn func(n *schema.ChartNode, depth int) error) error {
	stack := []chartItem{{root, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := fn(it.node, it.depth); err != nil {
			return err
		}
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, chartItem{&it.node.Children[i], it.depth + 1})
		}
	}
	return nil
}

// writeCSVResultsForChart flattens the chart into name, depth and value rows.
func writeCSVResultsForChart(w io.Writer, chart schema.ChartNode) error {
	return writeCSVWithHeader(w, []string{"name", "depth", "value"}, func(cw *csv.Writer) error {
		return walkChart(&chart, func(n *schema.ChartNode, depth int) error {
			return cw.Write([]string{n.Name, strconv.Itoa(depth), strconv.FormatFloat(n.Value, 'f', -1, 64)})
		})
	})
}

// writeChartTree prints the chart as an indented tree.
func writeChartTree(w io.Writer, chart schema.ChartNode, fmtFloat func(float64) string) error {
	return walkChart(&chart, func(n *schema.ChartNode, depth int) error {
		name := n.Name
		if depth > 0 {
			name = name[strings.LastIndex(name, "/")+1:]
		}
		_, err := fmt.Fprintf(w, "%s%s: %s\n", strings.Repeat("  ", depth), name, fmtFloat(n.Value))
		return err
	})
}
