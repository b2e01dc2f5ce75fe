package domain

import (
	"regexp"
	"strings"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// variantRe matches an uppercase-led identifier opening a variant line.
var variantRe = regexp.MustCompile(`^([A-Z][A-Za-z0-9_]*)`)

const attrMarker = "#["

// segmentVariants splits the block between startIndex and endIndex
// (inclusive, both 0-based) into variants. Only lines at brace depth
// exactly 1 can open a variant, so fields of nested struct-variant bodies
// are never mistaken for variants of the enum itself. Doc-comment and
// attribute lines accumulate in a pending buffer that attaches to the next
// variant. Depth updates on every visited line so the counter stays in
// sync with nested payload structure.
func segmentVariants(lines []string, startIndex, endIndex int) []m.Variant {
	variants := []m.Variant{}
	pendingDoc := []string{}

	depth := 0
	inside := false

	idx := startIndex
	for idx <= endIndex && idx < len(lines) {
		line := lines[idx]
		stripped := strings.TrimSpace(line)

		if !inside {
			if strings.Contains(line, "{") {
				inside = true
				depth += braceDelta(line)
			}

			idx++

			continue
		}

		if strings.HasPrefix(stripped, docMarker) {
			pendingDoc = append(pendingDoc, strings.TrimSpace(strings.TrimPrefix(stripped, docMarker)))
			depth += braceDelta(line)
			idx++

			continue
		}

		if strings.HasPrefix(stripped, attrMarker) {
			pendingDoc = append(pendingDoc, stripped)
			depth += braceDelta(line)
			idx++

			continue
		}

		if depth == 1 && stripped != "" && !strings.HasPrefix(stripped, "//") {
			if match := variantRe.FindStringSubmatch(stripped); match != nil {
				definition, consumed := collectVariantDefinition(lines, idx, endIndex)

				variants = append(variants, m.Variant{
					Name:       match[1],
					StartLine:  idx + 1,
					Doc:        pendingDoc,
					Definition: definition,
				})

				pendingDoc = []string{}

				for i := idx; i < idx+consumed && i < len(lines); i++ {
					depth += braceDelta(lines[i])
				}

				idx += consumed

				continue
			}
		}

		depth += braceDelta(line)
		idx++
	}

	return variants
}

// collectVariantDefinition consumes a variant's full definition starting at
// startIndex, tracking both brace and parenthesis depth so tuple- and
// struct-like payloads are covered. The definition ends on the first line
// where both counters are back at zero and the line closes with a
// separating comma. A final variant without a trailing comma terminates
// when the enclosing block's closing line (endIndex) is reached; that line
// is not part of the definition.
func collectVariantDefinition(lines []string, startIndex, endIndex int) (string, int) {
	var buffer []string

	braces := 0
	parens := 0
	consumed := 0

	for idx := startIndex; idx < len(lines); idx++ {
		if idx >= endIndex && idx > startIndex {
			break
		}

		line := lines[idx]
		buffer = append(buffer, line)
		consumed++

		braces += braceDelta(line)
		parens += parenDelta(line)

		if braces <= 0 && parens <= 0 && strings.HasSuffix(strings.TrimSpace(line), ",") {
			break
		}
	}

	return strings.TrimSpace(strings.Join(buffer, "\n")), consumed
}
