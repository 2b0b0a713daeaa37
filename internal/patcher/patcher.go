// Package patcher implements the default text-patching collaborator: it
// applies the non-overlapping subset of applicable edits from one
// verification pass to the source text.
package patcher

import (
	"sort"
	"strings"

	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
)

// Patcher applies edits to source text. The zero value is ready to use.
type Patcher struct{}

// New creates a patcher.
func New() *Patcher {
	return &Patcher{}
}

// Apply rewrites text with the edits of the given problems, honoring the
// per-finding filter. Edits are taken in (range start, range end) order;
// an edit overlapping an already-accepted one is skipped, so the first
// edit at a position wins. Out-of-range edits are skipped rather than
// corrupting the output.
func (p *Patcher) Apply(text string, problems []linter.Problem, filter linter.FixFilter) linter.PatchResult {
	candidates := make([]linter.Problem, 0, len(problems))

	for _, problem := range problems {
		if problem.Fix == nil {
			continue
		}

		if filter != nil && !filter(problem) {
			continue
		}

		candidates = append(candidates, problem)
	}

	if len(candidates) == 0 {
		return linter.PatchResult{Fixed: false, Output: text}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		fi, fj := candidates[i].Fix, candidates[j].Fix
		if fi.Range[0] != fj.Range[0] {
			return fi.Range[0] < fj.Range[0]
		}

		return fi.Range[1] < fj.Range[1]
	})

	var output strings.Builder

	lastPos := 0
	fixed := false

	for _, problem := range candidates {
		fix := problem.Fix

		start, end := fix.Range[0], fix.Range[1]
		if start < lastPos || start > end || end > len(text) {
			continue
		}

		output.WriteString(text[lastPos:start])
		output.WriteString(fix.Text)

		lastPos = end
		fixed = true
	}

	output.WriteString(text[lastPos:])

	return linter.PatchResult{Fixed: fixed, Output: output.String()}
}
