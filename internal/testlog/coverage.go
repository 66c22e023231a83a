package testlog

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// FileCoverage is the line coverage for one source file.
type FileCoverage struct {
	Name    string `json:"name"`
	Lines   int    `json:"lines"`
	Covered int    `json:"covered"`
}

func (f FileCoverage) Percent() float64 {
	if f.Lines == 0 {
		return 0
	}
	return float64(f.Covered) / float64(f.Lines) * 100
}

// Coverage aggregates lcov line-coverage totals across files.
type Coverage struct {
	Total   int            `json:"total"`
	Covered int            `json:"covered"`
	Files   []FileCoverage `json:"files"`
}

func (c Coverage) Percent() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Covered) / float64(c.Total) * 100
}

// ParseLcov reads lcov.info-style data: SF: opens a file block, LH: and LF:
// record lines hit / lines found for the open block. Records outside a file
// block and unknown record types are ignored.
func ParseLcov(r io.Reader) (*Coverage, error) {
	cov := &Coverage{}
	var current *FileCoverage

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "SF:"):
			cov.Files = append(cov.Files, FileCoverage{Name: strings.TrimSpace(line[3:])})
			current = &cov.Files[len(cov.Files)-1]
		case strings.HasPrefix(line, "LH:") && current != nil:
			if n, err := strconv.Atoi(strings.TrimSpace(line[3:])); err == nil {
				current.Covered = n
				cov.Covered += n
			}
		case strings.HasPrefix(line, "LF:") && current != nil:
			if n, err := strconv.Atoi(strings.TrimSpace(line[3:])); err == nil {
				current.Lines = n
				cov.Total += n
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cov, nil
}
