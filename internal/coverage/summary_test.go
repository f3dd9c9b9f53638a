package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overallSummary = `Coverage Report Summary Data by file

    Enabled Coverage              Bins      Hits    Misses  Coverage
    ----------------              ----      ----    ------  --------
    Assertions                       4         3         1    75.00%
    Branches                        50        45         5    90.00%
    Conditions                      20        16         4    80.00%
    Expressions                     10         9         1    90.00%
    Statements                     120       100        20    83.33%
    Toggles                        400       300       100    75.00%
    Covergroups                      3        na        na    85.50%

Total coverage (filtered view): 82.10%
`

const designUnitSummary = `Coverage Report Summary Data by design unit

=== Design Unit: work.cpm
    Enabled Coverage              Bins      Hits    Misses  Coverage
    ----------------              ----      ----    ------  --------
    Branches                        40        38         2    95.00%
    Conditions                      12        10         2    83.33%
    Expressions                      8         8         0   100.00%
    Statements                     100        96         4    96.00%
    Toggles                        200       150        50    75.00%

Total Coverage By Design Unit (filtered view): 88.20%
`

func TestParseSummary(t *testing.T) {
	s := ParseSummary(overallSummary)

	assert.Equal(t, MetricResult{Total: 4, Covered: 3, Pct: 75.00}, s.Get(Assertions))
	assert.Equal(t, MetricResult{Total: 50, Covered: 45, Pct: 90.00}, s.Get(Branches))
	assert.Equal(t, MetricResult{Total: 20, Covered: 16, Pct: 80.00}, s.Get(Conditions))
	assert.Equal(t, MetricResult{Total: 10, Covered: 9, Pct: 90.00}, s.Get(Expressions))
	assert.Equal(t, MetricResult{Total: 120, Covered: 100, Pct: 83.33}, s.Get(Statements))
	assert.Equal(t, MetricResult{Total: 400, Covered: 300, Pct: 75.00}, s.Get(Toggles))
	assert.Equal(t, 85.50, s.CovergroupsPct)
	assert.Equal(t, 82.10, s.TotalPct)
	assert.Equal(t, Diagnostics{}, s.Diagnostics)
}

func TestParseSummary_SingleRow(t *testing.T) {
	s := ParseSummary("Statements      120       100     83.3%")
	assert.Equal(t, MetricResult{Total: 120, Covered: 100, Pct: 83.3}, s.Get(Statements))
}

func TestParseSummary_RowQualification(t *testing.T) {
	tests := []struct {
		name string
		text string
		want MetricResult
	}{
		{
			name: "totals row is ignored",
			text: "    Statements Totals             500       400   80.00%",
			want: MetricResult{},
		},
		{
			name: "totals check is case-insensitive",
			text: "    TOTALS Statements             500       400   80.00%",
			want: MetricResult{},
		},
		{
			name: "metric must be a whole word",
			text: "    Statementsx                   500       400   80.00%",
			want: MetricResult{},
		},
		{
			name: "percentage is required",
			text: "    Statements                    500       400",
			want: MetricResult{},
		},
		{
			name: "percentage digits do not count as numbers",
			text: "    Statements                    500    80.00%",
			want: MetricResult{},
		},
		{
			name: "extra columns are ignored",
			text: "    Statements   500   400   100   80.00%   na",
			want: MetricResult{Total: 500, Covered: 400, Pct: 80.00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ParseSummary(tt.text)
			assert.Equal(t, tt.want, s.Get(Statements))
		})
	}
}

func TestParseSummary_LastRowWins(t *testing.T) {
	text := `
    Branches      10     5    50.00%
    Branches      20    18    90.00%
`
	s := ParseSummary(text)
	assert.Equal(t, MetricResult{Total: 20, Covered: 18, Pct: 90.00}, s.Get(Branches))
	assert.Equal(t, 1, s.Diagnostics.Overwrites)
}

func TestParseSummary_RejectsImpossibleRows(t *testing.T) {
	text := `
    Branches      10    20    50.00%
    Toggles       10     5   150.00%
`
	s := ParseSummary(text)
	assert.Equal(t, MetricResult{}, s.Get(Branches))
	assert.Equal(t, MetricResult{}, s.Get(Toggles))
	assert.Equal(t, 2, s.Diagnostics.Rejected)
}

func TestParseSummary_Empty(t *testing.T) {
	for _, text := range []string{"", "   \n\t\n"} {
		s := ParseSummary(text)
		require.Len(t, s.Metrics, len(OverallMetrics))
		for _, m := range OverallMetrics {
			assert.Equal(t, MetricResult{}, s.Get(m), "metric %s", m)
		}
		assert.Zero(t, s.CovergroupsPct)
		assert.Zero(t, s.TotalPct)
	}
}

func TestParseDesignUnitSummary(t *testing.T) {
	s := ParseDesignUnitSummary(designUnitSummary)

	require.Len(t, s.Metrics, len(DesignUnitMetrics))
	_, hasAssertions := s.Metrics[Assertions]
	assert.False(t, hasAssertions)

	assert.Equal(t, MetricResult{Total: 40, Covered: 38, Pct: 95.00}, s.Get(Branches))
	assert.Equal(t, MetricResult{Total: 8, Covered: 8, Pct: 100.00}, s.Get(Expressions))
	assert.Equal(t, MetricResult{Total: 100, Covered: 96, Pct: 96.00}, s.Get(Statements))
	assert.Equal(t, 88.20, s.TotalPct)
	assert.Zero(t, s.CovergroupsPct)
}

func TestSummaryTotalAnchorsAreDistinct(t *testing.T) {
	assert.Zero(t, ParseSummary(designUnitSummary).TotalPct)
	assert.Zero(t, ParseDesignUnitSummary(overallSummary).TotalPct)
}

func TestParseDesignUnitSummary_IgnoresAssertions(t *testing.T) {
	s := ParseDesignUnitSummary("    Assertions    4    3    75.00%")
	assert.Equal(t, MetricResult{}, s.Get(Assertions))
	assert.Equal(t, Diagnostics{}, s.Diagnostics)
}

func TestMetricResultInvariant(t *testing.T) {
	for _, s := range []Summary{
		ParseSummary(overallSummary),
		ParseDesignUnitSummary(designUnitSummary),
		ParseSummary("Branches 10 20 50.00%\nToggles 5 1 101.00%\nStatements 3 3 100.00%"),
	} {
		for m, r := range s.Metrics {
			assert.GreaterOrEqual(t, r.Covered, 0, "metric %s", m)
			assert.LessOrEqual(t, r.Covered, r.Total, "metric %s", m)
			assert.GreaterOrEqual(t, r.Pct, 0.0, "metric %s", m)
			assert.LessOrEqual(t, r.Pct, 100.0, "metric %s", m)
		}
	}
}
