package coverage

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	typePathRe       = regexp.MustCompile(`TYPE\s+(\S+)`)
	covergroupNameRe = regexp.MustCompile(`(cg_\w+)`)
	coverpointNameRe = regexp.MustCompile(`Coverpoint\s+(cp_\w+)`)
	crossNameRe      = regexp.MustCompile(`Cross\s+(cp_\w+)`)
	binRe            = regexp.MustCompile(`bin\s+(\S+)\s+(\d+)`)
)

type builderState int

const (
	// stateIdle: no covergroup seen yet.
	stateIdle builderState = iota
	// stateGroup: lines attach to the current covergroup.
	stateGroup
	// stateSkip: inside a repeated definition; everything is discarded
	// until the next covergroup line.
	stateSkip
)

// treeBuilder reconstructs the covergroup -> coverpoint -> bin tree from a
// flat line stream. Current nodes are tracked by index into groups.
type treeBuilder struct {
	state      builderState
	groups     []Covergroup
	byPath     map[string]int
	group      int
	point      int
	duplicates int
}

func newTreeBuilder() *treeBuilder {
	return &treeBuilder{
		byPath: make(map[string]int),
		group:  -1,
		point:  -1,
	}
}

// ParseFunctional builds the covergroup hierarchy from the output of
// "vcover report -cvg -details". A covergroup is keyed by the path after
// TYPE; the tool repeats the definition once per instance, and only the first
// definition, with everything nested under it, is kept.
func ParseFunctional(text string) []Covergroup {
	b := newTreeBuilder()
	eachLine(text, b.line)
	return b.result()
}

func (b *treeBuilder) line(line string) {
	if strings.Contains(line, "TYPE") && strings.Contains(line, "cg_") {
		if b.covergroup(line) {
			return
		}
	}
	if b.state == stateSkip {
		return
	}

	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "Coverpoint cp_"):
		b.coverpoint(line, coverpointNameRe, false)
	case strings.HasPrefix(trimmed, "Cross cp_"):
		b.coverpoint(line, crossNameRe, true)
	case strings.HasPrefix(trimmed, "bin "):
		b.bin(line)
	}
}

// covergroup handles a TYPE line. It reports true when the line was a
// repeated definition and must not be looked at further.
func (b *treeBuilder) covergroup(line string) bool {
	path := typePathRe.FindStringSubmatch(line)
	name := covergroupNameRe.FindStringSubmatch(line)
	if path == nil || name == nil {
		return false
	}
	fullPath := path[1]

	if _, ok := b.byPath[fullPath]; ok {
		b.state = stateSkip
		b.group, b.point = -1, -1
		b.duplicates++
		return true
	}

	b.groups = append(b.groups, Covergroup{
		Name:        name[1],
		FullPath:    fullPath,
		Pct:         percentOrZero(line),
		Coverpoints: []Coverpoint{},
	})
	b.group = len(b.groups) - 1
	b.byPath[fullPath] = b.group
	b.point = -1
	b.state = stateGroup
	return false
}

func (b *treeBuilder) coverpoint(line string, re *regexp.Regexp, cross bool) {
	if b.group < 0 {
		return
	}
	m := re.FindStringSubmatch(line)
	if m == nil {
		return
	}
	status := PointUncovered
	if strings.Contains(line, "Covered") {
		status = PointCovered
	}
	g := &b.groups[b.group]
	g.Coverpoints = append(g.Coverpoints, Coverpoint{
		Name:    m[1],
		Pct:     percentOrZero(line),
		IsCross: cross,
		Status:  status,
		Bins:    []Bin{},
	})
	b.point = len(g.Coverpoints) - 1
}

func (b *treeBuilder) bin(line string) {
	if b.group < 0 || b.point < 0 {
		return
	}
	m := binRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	hits, err := strconv.Atoi(m[2])
	if err != nil {
		return
	}
	status := BinCovered
	if hits == 0 {
		status = BinZero
	}
	p := &b.groups[b.group].Coverpoints[b.point]
	p.Bins = append(p.Bins, Bin{Name: m[1], Hits: hits, Status: status})
}

func (b *treeBuilder) result() []Covergroup {
	if b.groups == nil {
		return []Covergroup{}
	}
	return b.groups
}
