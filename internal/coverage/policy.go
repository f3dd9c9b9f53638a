package coverage

// Badge grades a percentage for display.
type Badge string

const (
	Excellent Badge = "EXCELLENT"
	Good      Badge = "GOOD"
	Poor      Badge = "NEEDS WORK"
)

const (
	excellentMin = 95.0
	goodMin      = 80.0
)

// ClassifyBadge returns Excellent for pct >= 95, Good for 80 <= pct < 95 and
// Poor otherwise.
func ClassifyBadge(pct float64) Badge {
	switch {
	case pct >= excellentMin:
		return Excellent
	case pct >= goodMin:
		return Good
	default:
		return Poor
	}
}

// Tier buckets a coverpoint by how much of it was hit.
type Tier string

const (
	TierFull    Tier = "full"
	TierPartial Tier = "partial"
	TierMissing Tier = "missing"
)

// Tier returns TierFull at 100%, TierPartial from 50% and TierMissing below.
func (c Coverpoint) Tier() Tier {
	switch {
	case c.Pct >= 100:
		return TierFull
	case c.Pct >= 50:
		return TierPartial
	default:
		return TierMissing
	}
}

// targetOrder fixes the order in which targets are reported.
var targetOrder = []Metric{Statements, Branches, Expressions, Conditions}

var thresholds = map[Metric]float64{
	Statements:  95,
	Branches:    90,
	Expressions: 90,
	Conditions:  80,
}

// Threshold returns the required percentage for m. Metrics without a target
// report false.
func Threshold(m Metric) (float64, bool) {
	t, ok := thresholds[m]
	return t, ok
}

// MeetsTarget reports whether pct reaches the fixed target for m. A metric
// without a target never meets it.
func MeetsTarget(m Metric, pct float64) bool {
	t, ok := thresholds[m]
	if !ok {
		return false
	}
	return pct >= t
}

// TargetStatus is the verdict for one target.
type TargetStatus string

const (
	StatusPass TargetStatus = "PASS"
	StatusFail TargetStatus = "FAIL"
)

// TargetResult compares one metric against its target.
type TargetResult struct {
	Metric   Metric       `json:"metric" yaml:"metric"`
	Pct      float64      `json:"pct" yaml:"pct"`
	Required float64      `json:"required" yaml:"required"`
	Badge    Badge        `json:"badge" yaml:"badge"`
	Status   TargetStatus `json:"status" yaml:"status"`
}

// TargetReport is the outcome of EvaluateTargets.
type TargetReport struct {
	Results []TargetResult `json:"results" yaml:"results"`
	Passed  bool           `json:"passed" yaml:"passed"`
}

// EvaluateTargets checks every targeted metric of s, normally the design-unit
// summary.
func EvaluateTargets(s Summary) TargetReport {
	report := TargetReport{
		Results: make([]TargetResult, 0, len(targetOrder)),
		Passed:  true,
	}
	for _, m := range targetOrder {
		pct := s.Get(m).Pct
		status := StatusPass
		if !MeetsTarget(m, pct) {
			status = StatusFail
			report.Passed = false
		}
		report.Results = append(report.Results, TargetResult{
			Metric:   m,
			Pct:      pct,
			Required: thresholds[m],
			Badge:    ClassifyBadge(pct),
			Status:   status,
		})
	}
	return report
}
