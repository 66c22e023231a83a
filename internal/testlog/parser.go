// Package testlog parses CTest-style run logs and lcov coverage data into
// the summaries the report renderer consumes.
package testlog

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// TestRecord is one test result line from the log. Output is best-effort:
// it holds whatever indented continuation lines followed the result line,
// which many CTest configurations never emit.
type TestRecord struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
	Status string `json:"status"`
	Output string `json:"output,omitempty"`
}

// SuiteSummary accumulates pass/fail tallies for one test suite.
// Total == Passed + Failed at all times; counters are bumped per line,
// never recomputed from Tests.
type SuiteSummary struct {
	Name   string       `json:"name"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Tests  []TestRecord `json:"tests"`
}

// Anchored: headers and result lines only count at the start of a line.
var (
	suiteHeaderRe = regexp.MustCompile(`^Test project .*/(\w+)_tests`)
	testResultRe  = regexp.MustCompile(`^(\d+/\d+) Test #(\d+): (.*) \.\.\. (.*)`)
)

// parserState is the log parser's state: outside any suite, or inside one.
type parserState int

const (
	stateIdle parserState = iota
	stateInSuite
)

// Parser is a two-state line parser for CTest logs. Lines that match neither
// trigger are ignored, so partial or garbled logs degrade to smaller tallies
// instead of failing the run.
type Parser struct {
	state   parserState
	current *SuiteSummary
	suites  []*SuiteSummary
	byName  map[string]*SuiteSummary
}

func NewParser() *Parser {
	return &Parser{byName: make(map[string]*SuiteSummary)}
}

// Parse consumes the whole log and returns the suites in first-seen order.
func (p *Parser) Parse(r io.Reader) ([]*SuiteSummary, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.feed(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p.suites, nil
}

// feed advances the state machine by one line.
func (p *Parser) feed(line string) {
	if m := suiteHeaderRe.FindStringSubmatch(line); m != nil {
		p.enterSuite(m[1])
		return
	}

	if p.state != stateInSuite {
		return
	}

	if m := testResultRe.FindStringSubmatch(line); m != nil {
		p.recordTest(m)
		return
	}

	// Indented lines are continuation output for the most recent test.
	if strings.HasPrefix(line, "    ") && len(p.current.Tests) > 0 {
		last := &p.current.Tests[len(p.current.Tests)-1]
		last.Output += line[4:] + "\n"
	}
}

func (p *Parser) enterSuite(name string) {
	if s, ok := p.byName[name]; ok {
		p.current = s
	} else {
		s = &SuiteSummary{Name: name}
		p.byName[name] = s
		p.suites = append(p.suites, s)
		p.current = s
	}
	p.state = stateInSuite
}

func (p *Parser) recordTest(m []string) {
	num, _ := strconv.Atoi(m[2])
	status := m[4]

	p.current.Tests = append(p.current.Tests, TestRecord{
		Name:   m[3],
		Number: num,
		Status: status,
	})
	p.current.Total++
	if status == "Passed" {
		p.current.Passed++
	} else {
		p.current.Failed++
	}
}
