// Package metrics loads the class, method and rule-violation tables of one scanned version.
package metrics

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Class is one row of the class table.
type Class struct {
	LongName string
	Path     string
	Name     string

	WMC   float64
	NOA   float64
	NOC   float64
	NOP   float64
	NOD   float64
	DIT   float64
	CC    float64
	CLLC  float64
	LOC   float64
	LLOC  float64
	NM    float64
	NLM   float64
	CBO   float64
	NA    float64
	NPM   float64
	LCOM5 float64
	RFC   float64
	NOI   float64
	NII   float64
	CLOC  float64
}

// EntityPath joins the file path and the class name with forward slashes.
func (c *Class) EntityPath() string {
	return strings.ReplaceAll(c.Path, `\`, "/") + "/" + c.Name
}

// Method is one row of the method table.
type Method struct {
	LongName string
	NUMPAR   float64
	NL       float64
	LOC      float64
	McCC     float64
	CLOC     float64
}

// Violation is one rule violation reported against a class.
type Violation struct {
	Package  string
	Class    string
	Ruleset  string
	Priority int
}

// Key returns the class long name the violation is reported against.
func (v Violation) Key() string {
	return v.Package + "." + v.Class
}

// Stats holds project-wide statistics over the class table.
type Stats struct {
	MeanLOC float64
	MeanCBO float64
}

// Sources names the three input files of a version.
type Sources struct {
	Class      string
	Method     string
	Violations string
}

// SourcesFor returns the input file locations for a results directory and short project name.
func SourcesFor(dir, name string) Sources {
	return Sources{
		Class:      filepath.Join(dir, name+"-Class.csv"),
		Method:     filepath.Join(dir, name+"-Method.csv"),
		Violations: filepath.Join(dir, "sourcemeter", "temp", name+"-PMD.xml"),
	}
}

// All returns the sources in load order.
func (s Sources) All() []string {
	return []string{s.Class, s.Method, s.Violations}
}

// Version is the loaded input of one scanned project version.
// Rows keep file order and duplicates.
type Version struct {
	Dir        string
	Name       string
	Classes    []Class
	Methods    []Method
	Violations []Violation
	Stats      Stats

	byName map[string][]int // class long name -> class row indexes
	owned  map[string][]int // class long name -> method row indexes
}

// NewVersion indexes the given rows. Load is the usual entry point.
func NewVersion(dir, name string, classes []Class, methods []Method, violations []Violation) *Version {
	v := &Version{
		Dir:        dir,
		Name:       name,
		Classes:    classes,
		Methods:    methods,
		Violations: violations,
	}
	v.byName = make(map[string][]int, len(classes))
	for i := range classes {
		ln := classes[i].LongName
		v.byName[ln] = append(v.byName[ln], i)
	}
	v.owned = buildOwnerIndex(v.byName, methods)
	v.Stats = computeStats(classes)
	return v
}

// Lookup returns every class row with the given long name.
func (v *Version) Lookup(longName string) []*Class {
	idx := v.byName[longName]
	if len(idx) == 0 {
		return nil
	}
	rows := make([]*Class, len(idx))
	for i, j := range idx {
		rows[i] = &v.Classes[j]
	}
	return rows
}

// HasClass reports whether the class table has a row with the given long name.
func (v *Version) HasClass(longName string) bool {
	_, ok := v.byName[longName]
	return ok
}

// MethodsOf returns the methods whose long name starts with the class long name.
func (v *Version) MethodsOf(longName string) []*Method {
	idx := v.owned[longName]
	if len(idx) == 0 {
		return nil
	}
	rows := make([]*Method, len(idx))
	for i, j := range idx {
		rows[i] = &v.Methods[j]
	}
	return rows
}

// ClassColumn extracts one value per class row, in table order.
func (v *Version) ClassColumn(fn func(*Class) float64) []float64 {
	out := make([]float64, len(v.Classes))
	for i := range v.Classes {
		out[i] = fn(&v.Classes[i])
	}
	return out
}

// buildOwnerIndex assigns each method to every class whose long name is a prefix
// of the method long name. Prefixes are probed against the class name set, so
// the cost is bounded by method name length rather than by class count.
func buildOwnerIndex(byName map[string][]int, methods []Method) map[string][]int {
	owned := make(map[string][]int)
	for mi := range methods {
		ln := methods[mi].LongName
		for end := 1; end <= len(ln); end++ {
			prefix := ln[:end]
			if _, ok := byName[prefix]; ok {
				owned[prefix] = append(owned[prefix], mi)
			}
		}
	}
	return owned
}

// computeStats returns the means used by the lazy-class rule. An empty table yields zeros.
func computeStats(classes []Class) Stats {
	if len(classes) == 0 {
		return Stats{}
	}
	var loc, cbo float64
	for i := range classes {
		loc += classes[i].LOC
		cbo += classes[i].CBO
	}
	n := float64(len(classes))
	return Stats{MeanLOC: loc / n, MeanCBO: cbo / n}
}

// String summarizes the version for log lines.
func (v *Version) String() string {
	return fmt.Sprintf("%s (%d classes, %d methods, %d violations)", v.Dir, len(v.Classes), len(v.Methods), len(v.Violations))
}
