package coverage

import (
	"regexp"
	"strconv"
	"strings"
)

// Anchors for the scalar lines of a summary block. The design-unit block uses
// its own, more specific total label.
const (
	covergroupsAnchor     = "Covergroups"
	totalCoverageAnchor   = "Total coverage"
	designUnitTotalAnchor = "Total Coverage By Design Unit"
)

var metricWordRe = func() map[Metric]*regexp.Regexp {
	res := make(map[Metric]*regexp.Regexp, len(OverallMetrics))
	for _, m := range OverallMetrics {
		res[m] = regexp.MustCompile(`\b` + m.label() + `\b`)
	}
	return res
}()

// summaryScanner extracts one summary block. covergroupsAnchor is empty for
// blocks that carry no covergroup line.
type summaryScanner struct {
	metrics           []Metric
	totalAnchor       string
	covergroupsAnchor string
}

// ParseSummary extracts the design-wide summary produced by
// "vcover report -summary".
func ParseSummary(text string) Summary {
	s := summaryScanner{
		metrics:           OverallMetrics,
		totalAnchor:       totalCoverageAnchor,
		covergroupsAnchor: covergroupsAnchor,
	}
	return s.scan(text)
}

// ParseDesignUnitSummary extracts a summary scoped to a single design unit,
// as produced by "vcover report -summary -du=<unit>".
func ParseDesignUnitSummary(text string) Summary {
	s := summaryScanner{
		metrics:     DesignUnitMetrics,
		totalAnchor: designUnitTotalAnchor,
	}
	return s.scan(text)
}

func (s summaryScanner) scan(text string) Summary {
	out := Summary{Metrics: make(map[Metric]MetricResult, len(s.metrics))}
	for _, m := range s.metrics {
		out.Metrics[m] = MetricResult{}
	}
	seen := make(map[Metric]bool, len(s.metrics))

	eachLine(text, func(line string) {
		for _, m := range s.metrics {
			res, ok := parseMetricRow(m, line)
			if !ok {
				continue
			}
			if !res.valid() {
				out.Diagnostics.Rejected++
				continue
			}
			if seen[m] {
				out.Diagnostics.Overwrites++
			}
			seen[m] = true
			out.Metrics[m] = res
		}

		if s.covergroupsAnchor != "" && strings.Contains(line, s.covergroupsAnchor) {
			if pct, ok := findPercent(line); ok {
				out.CovergroupsPct = pct
			}
		}
		if strings.Contains(line, s.totalAnchor) {
			if pct, ok := findPercent(line); ok {
				out.TotalPct = pct
			}
		}
	})
	return out
}

// parseMetricRow reports whether line is a row for metric m and, if so,
// returns its numbers. Aggregate "totals" rows never qualify. The integer
// tokens are counted with the percentage token removed so that "83.3%"
// cannot stand in for a count.
func parseMetricRow(m Metric, line string) (MetricResult, bool) {
	if !metricWordRe[m].MatchString(line) {
		return MetricResult{}, false
	}
	if strings.Contains(strings.ToLower(line), "totals") {
		return MetricResult{}, false
	}
	pct, ok := findPercent(line)
	if !ok {
		return MetricResult{}, false
	}
	nums := numberRe.FindAllString(percentRe.ReplaceAllString(line, " "), 2)
	if len(nums) < 2 {
		return MetricResult{}, false
	}
	total, err := strconv.Atoi(nums[0])
	if err != nil {
		return MetricResult{}, false
	}
	covered, err := strconv.Atoi(nums[1])
	if err != nil {
		return MetricResult{}, false
	}
	return MetricResult{Covered: covered, Total: total, Pct: pct}, true
}

func (r MetricResult) valid() bool {
	return r.Covered >= 0 && r.Covered <= r.Total && r.Pct >= 0 && r.Pct <= 100
}
