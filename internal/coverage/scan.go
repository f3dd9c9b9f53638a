package coverage

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

var (
	numberRe  = regexp.MustCompile(`\d+`)
	percentRe = regexp.MustCompile(`(\d+\.\d+)%`)
)

// eachLine calls fn for every line of text. The scanner buffer is sized to
// the whole input so an oversized line can never stop the scan early.
func eachLine(text string, fn func(line string)) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), len(text)+bufio.MaxScanTokenSize)
	for scanner.Scan() {
		fn(scanner.Text())
	}
}

// findPercent returns the first NN.N% token of line.
func findPercent(line string) (float64, bool) {
	m := percentRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return pct, true
}

// percentOrZero is findPercent with the missing case folded to 0.
func percentOrZero(line string) float64 {
	pct, _ := findPercent(line)
	return pct
}
