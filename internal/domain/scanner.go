// Package domain implements the extraction and usage-matching core of
// tagsweep: locating enum declarations, segmenting their variants, and
// cross-referencing each variant against the rest of the tree.
package domain

import (
	"errors"
	"regexp"
	"strings"
)

// ErrMalformedBlock marks a declaration whose block never returns to zero
// brace depth before end of input. The truncated span is kept and the rest
// of the file keeps processing.
var ErrMalformedBlock = errors.New("enum block never closed")

// declRe matches the fixed declaration signature: visibility qualifier,
// enum keyword, identifier. The rest of the file is not validated here;
// block extraction fails soft on anything unexpected.
var declRe = regexp.MustCompile(`pub\s+enum\s+(?P<name>[A-Za-z0-9_]+)`)

const docMarker = "///"

// locateDeclaration reports the declared identifier if the line carries an
// enum declaration signature.
func locateDeclaration(line string) (string, bool) {
	match := declRe.FindStringSubmatch(line)
	if match == nil {
		return "", false
	}

	return match[1], true
}

// collectLeadingDoc walks backward from the line at declIndex gathering
// contiguous doc-comment lines, stripped of their marker and surrounding
// whitespace. Blank lines are skipped; the first other line stops the walk.
// The result is reversed back into declaration order and never nil.
func collectLeadingDoc(lines []string, declIndex int) []string {
	docs := []string{}

	for i := declIndex - 1; i >= 0; i-- {
		stripped := strings.TrimSpace(lines[i])

		if strings.HasPrefix(stripped, docMarker) {
			docs = append(docs, strings.TrimSpace(strings.TrimPrefix(stripped, docMarker)))
			continue
		}

		if stripped == "" {
			continue
		}

		break
	}

	for left, right := 0, len(docs)-1; left < right; left, right = left+1, right-1 {
		docs[left], docs[right] = docs[right], docs[left]
	}

	return docs
}

// collectBlock accumulates lines from the declaration while tracking signed
// brace depth. Counting is armed by the first opening brace; the block ends
// on the first line where depth returns to zero or below after that. The
// second return value is the index of the terminating line. When the block
// never closes the full remaining span is returned with ErrMalformedBlock.
func collectBlock(lines []string, declIndex int) (string, int, error) {
	var buffer []string

	depth := 0
	started := false

	for idx := declIndex; idx < len(lines); idx++ {
		line := lines[idx]
		buffer = append(buffer, line)

		if !started {
			if strings.Contains(line, "{") {
				started = true
				depth += braceDelta(line)
			}
		} else {
			depth += braceDelta(line)
		}

		if started && depth <= 0 {
			return strings.TrimSpace(strings.Join(buffer, "\n")), idx, nil
		}
	}

	return strings.TrimSpace(strings.Join(buffer, "\n")), len(lines) - 1, ErrMalformedBlock
}

func braceDelta(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}

func parenDelta(line string) int {
	return strings.Count(line, "(") - strings.Count(line, ")")
}
