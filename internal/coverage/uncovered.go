package coverage

import (
	"regexp"
	"strings"
)

// zeroSentinel marks a never-hit item in a zero-detail report.
const zeroSentinel = "***0***"

var fileHeaderRe = regexp.MustCompile(`File\s+(.+)`)

var sectionHeaders = []struct {
	header  string
	section Section
}{
	{"Branch Coverage", BranchSection},
	{"Condition Coverage", ConditionSection},
	{"Statement Coverage", StatementSection},
	{"Toggle Coverage", ToggleSection},
}

// ParseUncovered scans the output of "vcover report -zeros -details" and
// lists every zero-hit item per section and file.
func ParseUncovered(text string) UncoveredSet {
	set, _ := scanUncovered(text)
	return set
}

// scanUncovered also returns how many zero-hit lines were dropped because no
// file header preceded them.
func scanUncovered(text string) (UncoveredSet, int) {
	set := make(UncoveredSet, len(Sections))
	for _, s := range Sections {
		set[s] = []UncoveredItem{}
	}

	var (
		section Section
		file    string
		dropped int
	)
	eachLine(text, func(line string) {
		if s, ok := sectionHeader(line); ok {
			section = s
			return
		}
		if strings.Contains(line, "File ") {
			if m := fileHeaderRe.FindStringSubmatch(line); m != nil {
				file = strings.TrimSpace(m[1])
			}
			return
		}
		if section == "" || !strings.Contains(line, zeroSentinel) {
			return
		}
		lineNo := numberRe.FindString(line)
		if lineNo == "" {
			return
		}
		if file == "" {
			dropped++
			return
		}
		set[section] = append(set[section], UncoveredItem{
			File:   file,
			Line:   lineNo,
			Detail: strings.TrimSpace(line),
		})
	})
	return set, dropped
}

func sectionHeader(line string) (Section, bool) {
	for _, h := range sectionHeaders {
		if strings.Contains(line, h.header) {
			return h.section, true
		}
	}
	return "", false
}
