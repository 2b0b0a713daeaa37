package linter

import (
	"sort"
	"strings"

	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
)

// RuleFixer builds edits for a report. All methods return a value Edit;
// nothing is applied until the engine's patch phase.
type RuleFixer struct {
	src *SourceCode
}

// Replace replaces the node's source range with text.
func (f RuleFixer) Replace(node *tree.Node, text string) Edit {
	start, end := node.Range()

	return Edit{Range: [2]int{start, end}, Text: text}
}

// ReplaceRange replaces an explicit byte range with text.
func (f RuleFixer) ReplaceRange(rng [2]int, text string) Edit {
	return Edit{Range: rng, Text: text}
}

// InsertBefore inserts text immediately before the node.
func (f RuleFixer) InsertBefore(node *tree.Node, text string) Edit {
	start, _ := node.Range()

	return Edit{Range: [2]int{start, start}, Text: text}
}

// InsertAfter inserts text immediately after the node.
func (f RuleFixer) InsertAfter(node *tree.Node, text string) Edit {
	_, end := node.Range()

	return Edit{Range: [2]int{end, end}, Text: text}
}

// Remove deletes the node's source range.
func (f RuleFixer) Remove(node *tree.Node) Edit {
	start, end := node.Range()

	return Edit{Range: [2]int{start, end}}
}

// RemoveRange deletes an explicit byte range.
func (f RuleFixer) RemoveRange(rng [2]int) Edit {
	return Edit{Range: rng}
}

// FixFunc produces the edits for one report. Returning no edits withdraws
// the fix.
type FixFunc func(fixer RuleFixer) []Edit

// SuggestionDescriptor is one alternative, manually-applied fix offered
// alongside a report.
type SuggestionDescriptor struct {
	Desc      string
	MessageID string
	Fix       FixFunc
}

// ReportDescriptor is a rule's raw report call.
type ReportDescriptor struct {
	// Node locates the finding; Loc overrides the node's own position
	// when set. At least one of the two must be provided.
	Node *tree.Node
	Loc  *tree.Positions

	// Message is raw diagnostic text; MessageID instead selects a
	// template from the rule's meta.Messages. Exactly one must be set.
	Message   string
	MessageID string

	// Data interpolates {{name}} placeholders in the message.
	Data map[string]string

	Fix     FixFunc
	Suggest []SuggestionDescriptor
}

// translator turns raw report calls into validated, position-resolved
// Problems for one rule. It is constructed lazily on the first report of a
// rule-file pair since most pairs report nothing.
type translator struct {
	src      *SourceCode
	ruleID   string
	severity Severity
	meta     *Meta

	disableFixes bool
}

func (t *translator) translate(desc ReportDescriptor) (Problem, error) {
	loc := desc.Loc
	if loc == nil && desc.Node != nil {
		loc = desc.Node.Pos
	}

	if loc == nil {
		return Problem{}, &ContractError{RuleID: t.ruleID, Reason: reasonMissingLocation}
	}

	message, messageID, err := t.resolveMessage(desc)
	if err != nil {
		return Problem{}, err
	}

	problem := Problem{
		RuleID:    t.ruleID,
		Severity:  t.severity,
		Message:   message,
		MessageID: messageID,
		Line:      loc.StartLine,
		Column:    loc.StartCol,
		EndLine:   loc.EndLine,
		EndColumn: loc.EndCol,
	}

	if desc.Node != nil {
		problem.NodeType = desc.Node.Type
	}

	if desc.Fix != nil {
		fix, fixErr := t.resolveFix(desc.Fix)
		if fixErr != nil {
			return Problem{}, fixErr
		}

		if fix != nil && !t.meta.canFix() {
			return Problem{}, &ContractError{RuleID: t.ruleID, Reason: reasonFixWithoutMeta}
		}

		problem.Fix = fix
	}

	if len(desc.Suggest) > 0 {
		suggestions, suggErr := t.resolveSuggestions(desc.Suggest)
		if suggErr != nil {
			return Problem{}, suggErr
		}

		problem.Suggestions = suggestions
	}

	if t.disableFixes {
		problem.Fix = nil
		problem.Suggestions = nil
	}

	return problem, nil
}

func (t *translator) resolveMessage(desc ReportDescriptor) (message, messageID string, err error) {
	switch {
	case desc.MessageID != "" && desc.Message != "":
		return "", "", &ContractError{RuleID: t.ruleID, Reason: reasonMessageAndID}
	case desc.MessageID != "":
		template, ok := t.meta.Messages[desc.MessageID]
		if !ok {
			return "", "", &ContractError{RuleID: t.ruleID, Reason: reasonUnknownMessageID}
		}

		return interpolate(template, desc.Data), desc.MessageID, nil
	case desc.Message != "":
		return interpolate(desc.Message, desc.Data), "", nil
	default:
		return "", "", &ContractError{RuleID: t.ruleID, Reason: reasonNoMessage}
	}
}

func (t *translator) resolveFix(fix FixFunc) (*Edit, error) {
	edits := fix(RuleFixer{src: t.src})
	if len(edits) == 0 {
		return nil, nil
	}

	merged, ok := mergeEdits(edits, t.src.Text)
	if !ok {
		return nil, &ContractError{RuleID: t.ruleID, Reason: "fix edits must not overlap within one report"}
	}

	return &merged, nil
}

func (t *translator) resolveSuggestions(descs []SuggestionDescriptor) ([]Edit, error) {
	if !t.meta.HasSuggestions {
		reason := reasonSuggWithoutMeta
		if t.meta.Docs.Suggestion {
			reason = reasonSuggDeprecatedMeta
		}

		return nil, &ContractError{RuleID: t.ruleID, Reason: reason}
	}

	suggestions := make([]Edit, 0, len(descs))

	for _, sd := range descs {
		if sd.Fix == nil {
			continue
		}

		merged, err := t.resolveFix(sd.Fix)
		if err != nil {
			return nil, err
		}

		if merged != nil {
			suggestions = append(suggestions, *merged)
		}
	}

	return suggestions, nil
}

// mergeEdits folds multiple edits from one report into a single edit
// spanning all of them, preserving the untouched text between ranges.
// Overlapping edits are rejected.
func mergeEdits(edits []Edit, text string) (Edit, bool) {
	if len(edits) == 1 {
		return edits[0], true
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Range[0] < sorted[j].Range[0]
	})

	var builder strings.Builder

	start := sorted[0].Range[0]
	end := start

	for _, edit := range sorted {
		if edit.Range[0] < end {
			return Edit{}, false
		}

		builder.WriteString(text[end:edit.Range[0]])
		builder.WriteString(edit.Text)
		end = edit.Range[1]
	}

	return Edit{Range: [2]int{start, end}, Text: builder.String()}, true
}

func interpolate(template string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(template, "{{") {
		return template
	}

	result := template
	for name, value := range data {
		result = strings.ReplaceAll(result, "{{"+name+"}}", value)
	}

	return result
}
