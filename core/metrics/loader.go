package metrics

import (
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/huangsam/codequal/internal/contract"
)

// Required columns of the class table.
var classColumns = []string{
	"LongName", "Path", "Name",
	"WMC", "NOA", "NOC", "NOP", "NOD", "DIT", "CC", "CLLC", "LOC", "LLOC",
	"NM", "NLM", "CBO", "NA", "NPM", "LCOM5", "RFC", "NOI", "NII", "CLOC",
}

// Required columns of the method table.
var methodColumns = []string{"LongName", "NUMPAR", "NL", "LOC", "McCC", "CLOC"}

// Load reads the class table, method table and violation source of one version.
// A missing or malformed source aborts the load with a *contract.DataNotFoundError.
func Load(dir, name string) (*Version, error) {
	src := SourcesFor(dir, name)

	classes, err := loadClasses(src.Class)
	if err != nil {
		return nil, err
	}
	methods, err := loadMethods(src.Method)
	if err != nil {
		return nil, err
	}
	violations, err := loadViolations(src.Violations)
	if err != nil {
		return nil, err
	}

	return NewVersion(dir, name, classes, methods, violations), nil
}

// csvTable is a header-indexed view over CSV records.
type csvTable struct {
	path    string
	columns map[string]int
	records [][]string
}

func readCSV(path string, required []string) (*csvTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &contract.DataNotFoundError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("missing header")
		}
		return nil, &contract.DataNotFoundError{Path: path, Err: err}
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, seen := columns[h]; !seen {
			columns[h] = i
		}
	}
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			return nil, &contract.DataNotFoundError{Path: path, Err: fmt.Errorf("missing column %q", col)}
		}
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, &contract.DataNotFoundError{Path: path, Err: err}
	}
	return &csvTable{path: path, columns: columns, records: records}, nil
}

// cell returns the trimmed value of a column, or "" for short records.
func (t *csvTable) cell(rec []string, col string) string {
	i := t.columns[col]
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// float parses a numeric column. An empty cell reads as zero.
func (t *csvTable) float(rec []string, row int, col string) (float64, error) {
	s := t.cell(rec, col)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &contract.DataNotFoundError{Path: t.path, Err: fmt.Errorf("row %d column %s: %w", row+2, col, err)}
	}
	return v, nil
}

// floats parses several numeric columns into the given destinations.
func (t *csvTable) floats(rec []string, row int, cols []string, dst []*float64) error {
	for i, col := range cols {
		v, err := t.float(rec, row, col)
		if err != nil {
			return err
		}
		*dst[i] = v
	}
	return nil
}

func loadClasses(path string) ([]Class, error) {
	t, err := readCSV(path, classColumns)
	if err != nil {
		return nil, err
	}

	numeric := classColumns[3:]
	classes := make([]Class, len(t.records))
	for i, rec := range t.records {
		c := &classes[i]
		c.LongName = t.cell(rec, "LongName")
		c.Path = t.cell(rec, "Path")
		c.Name = t.cell(rec, "Name")
		dst := []*float64{
			&c.WMC, &c.NOA, &c.NOC, &c.NOP, &c.NOD, &c.DIT, &c.CC, &c.CLLC, &c.LOC, &c.LLOC,
			&c.NM, &c.NLM, &c.CBO, &c.NA, &c.NPM, &c.LCOM5, &c.RFC, &c.NOI, &c.NII, &c.CLOC,
		}
		if err := t.floats(rec, i, numeric, dst); err != nil {
			return nil, err
		}
	}
	return classes, nil
}

func loadMethods(path string) ([]Method, error) {
	t, err := readCSV(path, methodColumns)
	if err != nil {
		return nil, err
	}

	numeric := methodColumns[1:]
	methods := make([]Method, len(t.records))
	for i, rec := range t.records {
		m := &methods[i]
		m.LongName = t.cell(rec, "LongName")
		dst := []*float64{&m.NUMPAR, &m.NL, &m.LOC, &m.McCC, &m.CLOC}
		if err := t.floats(rec, i, numeric, dst); err != nil {
			return nil, err
		}
	}
	return methods, nil
}

// pmdDocument mirrors the violation report: a root holding file elements,
// each holding violation elements. Element names are not checked.
type pmdDocument struct {
	Files []pmdFile `xml:",any"`
}

type pmdFile struct {
	Entries []pmdEntry `xml:",any"`
}

type pmdEntry struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

// attr returns the named attribute and whether it was present.
func (e pmdEntry) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func loadViolations(path string) ([]Violation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &contract.DataNotFoundError{Path: path, Err: err}
	}
	return parseViolations(path, data)
}

// parseViolations decodes the violation report. Entries without a package or
// class attribute are skipped.
func parseViolations(path string, data []byte) ([]Violation, error) {
	var doc pmdDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &contract.DataNotFoundError{Path: path, Err: err}
	}

	var out []Violation
	for _, file := range doc.Files {
		for _, entry := range file.Entries {
			pkg, okPkg := entry.attr("package")
			class, okClass := entry.attr("class")
			if !okPkg || !okClass {
				continue
			}
			ruleset, _ := entry.attr("ruleset")
			prioStr, _ := entry.attr("priority")
			prio, err := strconv.Atoi(strings.TrimSpace(prioStr))
			if err != nil {
				return nil, &contract.DataNotFoundError{Path: path, Err: fmt.Errorf("violation priority for %s.%s: %w", pkg, class, err)}
			}
			out = append(out, Violation{Package: pkg, Class: class, Ruleset: ruleset, Priority: prio})
		}
	}
	return out, nil
}
