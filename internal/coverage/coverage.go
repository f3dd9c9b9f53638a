// Package coverage builds a normalized coverage model from the text reports
// of a UCDB analysis tool (vcover). Every parser here is a pure function:
// text in, value out. Nothing in this package performs I/O or fails on
// malformed input; unmatched lines are skipped and missing sections keep
// their zero values.
package coverage

// Metric names a code-coverage metric reported in a summary block.
type Metric string

const (
	Assertions  Metric = "assertions"
	Branches    Metric = "branches"
	Conditions  Metric = "conditions"
	Expressions Metric = "expressions"
	Statements  Metric = "statements"
	Toggles     Metric = "toggles"
)

// label is the spelling used by the tool in its report rows.
func (m Metric) label() string {
	switch m {
	case Assertions:
		return "Assertions"
	case Branches:
		return "Branches"
	case Conditions:
		return "Conditions"
	case Expressions:
		return "Expressions"
	case Statements:
		return "Statements"
	case Toggles:
		return "Toggles"
	}
	return string(m)
}

// OverallMetrics is the metric set of the design-wide summary.
var OverallMetrics = []Metric{Assertions, Branches, Conditions, Expressions, Statements, Toggles}

// DesignUnitMetrics is the metric set of a summary scoped to one design unit.
var DesignUnitMetrics = []Metric{Branches, Conditions, Expressions, Statements, Toggles}

// MetricResult holds one metric row. Invariant: 0 <= Covered <= Total and
// 0 <= Pct <= 100.
type MetricResult struct {
	Covered int     `json:"covered" yaml:"covered"`
	Total   int     `json:"total" yaml:"total"`
	Pct     float64 `json:"pct" yaml:"pct"`
}

// Diagnostics counts rows the summary extractors handled specially.
type Diagnostics struct {
	// Overwrites counts metric rows replaced by a later row for the same metric.
	Overwrites int `json:"overwrites,omitempty" yaml:"overwrites,omitempty"`
	// Rejected counts qualifying rows whose numbers break the MetricResult invariant.
	Rejected int `json:"rejected,omitempty" yaml:"rejected,omitempty"`
}

// Summary is the result of parsing one summary block.
type Summary struct {
	Metrics        map[Metric]MetricResult `json:"metrics" yaml:"metrics"`
	CovergroupsPct float64                 `json:"covergroupsPct" yaml:"covergroupsPct"`
	TotalPct       float64                 `json:"totalPct" yaml:"totalPct"`
	Diagnostics    Diagnostics             `json:"diagnostics" yaml:"diagnostics"`
}

// Get returns the result for m, or the zero MetricResult when m is absent.
func (s Summary) Get(m Metric) MetricResult {
	return s.Metrics[m]
}

// Section names a group of uncovered items in a zero-detail report.
type Section string

const (
	BranchSection    Section = "branches"
	ConditionSection Section = "conditions"
	StatementSection Section = "statements"
	ToggleSection    Section = "toggles"
)

// Sections lists every section in report order.
var Sections = []Section{BranchSection, ConditionSection, StatementSection, ToggleSection}

// UncoveredItem is one zero-hit location. Line stays textual because the
// tool occasionally emits non-numeric markers there.
type UncoveredItem struct {
	File   string `json:"file" yaml:"file"`
	Line   string `json:"line" yaml:"line"`
	Detail string `json:"detail" yaml:"detail"`
}

// UncoveredSet maps each section to its items in scan order.
type UncoveredSet map[Section][]UncoveredItem

// Count returns the number of items across all sections.
func (u UncoveredSet) Count() int {
	n := 0
	for _, items := range u {
		n += len(items)
	}
	return n
}

// CoverpointStatus is the tool's verdict on a coverpoint or cross.
type CoverpointStatus string

const (
	PointCovered   CoverpointStatus = "Covered"
	PointUncovered CoverpointStatus = "Uncovered"
)

// BinStatus is Zero iff the bin was never hit.
type BinStatus string

const (
	BinCovered BinStatus = "Covered"
	BinZero    BinStatus = "ZERO"
)

// Bin is one value bucket of a coverpoint.
type Bin struct {
	Name   string    `json:"name" yaml:"name"`
	Hits   int       `json:"hits" yaml:"hits"`
	Status BinStatus `json:"status" yaml:"status"`
}

// Coverpoint is a coverpoint or, when IsCross is set, a cross.
type Coverpoint struct {
	Name    string           `json:"name" yaml:"name"`
	Pct     float64          `json:"pct" yaml:"pct"`
	IsCross bool             `json:"isCross" yaml:"isCross"`
	Status  CoverpointStatus `json:"status" yaml:"status"`
	Bins    []Bin            `json:"bins" yaml:"bins"`
}

// CoveredBins returns the number of bins with at least one hit.
func (c Coverpoint) CoveredBins() int {
	n := 0
	for _, b := range c.Bins {
		if b.Status == BinCovered {
			n++
		}
	}
	return n
}

// ZeroBins returns the number of bins that were never hit.
func (c Coverpoint) ZeroBins() int {
	n := 0
	for _, b := range c.Bins {
		if b.Status == BinZero {
			n++
		}
	}
	return n
}

// Covergroup is a functional-coverage collection point. FullPath is unique
// across a model.
type Covergroup struct {
	Name        string       `json:"name" yaml:"name"`
	FullPath    string       `json:"fullPath" yaml:"fullPath"`
	Pct         float64      `json:"pct" yaml:"pct"`
	Coverpoints []Coverpoint `json:"coverpoints" yaml:"coverpoints"`
}

// Reports holds the raw text blocks captured from the analysis tool.
type Reports struct {
	Summary    string
	DesignUnit string
	Zeros      string
	Functional string
}

// ModelDiagnostics collects what the extractors skipped or replaced.
type ModelDiagnostics struct {
	DuplicateCovergroups int `json:"duplicateCovergroups" yaml:"duplicateCovergroups"`
	DroppedUncovered     int `json:"droppedUncovered" yaml:"droppedUncovered"`
}

// Model is the assembled coverage report. It is a value: nothing updates it
// after Assemble returns.
type Model struct {
	Overall     Summary          `json:"overall" yaml:"overall"`
	DUT         Summary          `json:"dut" yaml:"dut"`
	Uncovered   UncoveredSet     `json:"uncovered" yaml:"uncovered"`
	Functional  []Covergroup     `json:"functional" yaml:"functional"`
	Diagnostics ModelDiagnostics `json:"diagnostics" yaml:"diagnostics"`
}
