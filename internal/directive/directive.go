// Package directive implements the inline-configuration collaborator: it
// parses suppression and global-declaration comments into structured
// directives and filters verification problems through them.
package directive

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
)

// directivePrefix heads every recognized inline directive comment.
const directivePrefix = "lintfang"

// Handler is the default DirectiveHandler. The zero value is ready.
type Handler struct{}

// New creates a handler.
func New() *Handler {
	return &Handler{}
}

// Extract parses the file's comments into disable directives, declared
// globals, and exported names. Unrecognized comments are ignored; only a
// structurally broken directive body yields a problem.
func (h *Handler) Extract(src *linter.SourceCode) linter.Directives {
	dirs := linter.Directives{
		EnabledGlobals: make(map[string]linter.GlobalValue),
	}

	for _, comment := range src.Comments {
		body := stripCommentMarkers(comment.Value)

		keyword, rest := splitKeyword(body)

		switch keyword {
		case directivePrefix + "-disable":
			dirs.Disable = append(dirs.Disable, makeDirectives(linter.DirectiveDisable, comment.Pos.StartLine, comment.Pos.StartCol, rest)...)
		case directivePrefix + "-enable":
			dirs.Disable = append(dirs.Disable, makeDirectives(linter.DirectiveEnable, comment.Pos.StartLine, comment.Pos.StartCol, rest)...)
		case directivePrefix + "-disable-line":
			dirs.Disable = append(dirs.Disable, makeDirectives(linter.DirectiveDisableLine, comment.Pos.StartLine, comment.Pos.StartCol, rest)...)
		case directivePrefix + "-disable-next-line":
			dirs.Disable = append(dirs.Disable, makeDirectives(linter.DirectiveDisableNextLine, comment.Pos.StartLine, comment.Pos.StartCol, rest)...)
		case "globals", "global":
			parseGlobals(rest, dirs.EnabledGlobals)
		case "exported":
			dirs.Exported = append(dirs.Exported, splitList(rest)...)
		}
	}

	return dirs
}

// Apply removes suppressed problems and, per the policy, reports disable
// directives that suppressed nothing. The input problems are sorted by
// (line, column); the output preserves that order.
func (h *Handler) Apply(problems []linter.Problem, directives []linter.DisableDirective, reportUnused string) []linter.Problem {
	if len(directives) == 0 && reportUnused == "off" {
		return problems
	}

	used := make([]bool, len(directives))
	kept := make([]linter.Problem, 0, len(problems))

	for _, problem := range problems {
		suppressor := -1

		for i, d := range directives {
			if d.RuleID != "" && d.RuleID != problem.RuleID {
				continue
			}

			switch d.Type {
			case linter.DirectiveDisable:
				if positionedBefore(d, problem) {
					suppressor = i
				}
			case linter.DirectiveEnable:
				if positionedBefore(d, problem) {
					suppressor = -1
				}
			case linter.DirectiveDisableLine:
				if d.Line == problem.Line {
					suppressor = i
				}
			case linter.DirectiveDisableNextLine:
				if d.Line == problem.Line-1 {
					suppressor = i
				}
			}
		}

		if suppressor >= 0 {
			used[suppressor] = true

			continue
		}

		kept = append(kept, problem)
	}

	if severity := policySeverity(reportUnused); severity != linter.SeverityOff {
		for i, d := range directives {
			if used[i] || d.Type == linter.DirectiveEnable {
				continue
			}

			kept = append(kept, unusedDirectiveProblem(d, severity))
		}

		sort.SliceStable(kept, func(i, j int) bool {
			if kept[i].Line != kept[j].Line {
				return kept[i].Line < kept[j].Line
			}

			return kept[i].Column < kept[j].Column
		})
	}

	return kept
}

func unusedDirectiveProblem(d linter.DisableDirective, severity linter.Severity) linter.Problem {
	clause := ""
	if d.RuleID != "" {
		clause = fmt.Sprintf(" from '%s'", d.RuleID)
	}

	return linter.Problem{
		Severity: severity,
		Message:  fmt.Sprintf("Unused %s-%s directive (no problems were reported%s).", directivePrefix, d.Type, clause),
		Line:     d.Line,
		Column:   d.Column,
	}
}

func policySeverity(reportUnused string) linter.Severity {
	switch reportUnused {
	case "warn":
		return linter.SeverityWarn
	case "error":
		return linter.SeverityError
	default:
		return linter.SeverityOff
	}
}

// positionedBefore reports whether the directive precedes the problem in
// document order.
func positionedBefore(d linter.DisableDirective, p linter.Problem) bool {
	return d.Line < p.Line || (d.Line == p.Line && d.Column <= p.Column)
}

func makeDirectives(dirType linter.DirectiveType, line, column int, ruleList string) []linter.DisableDirective {
	rules := splitList(ruleList)
	if len(rules) == 0 {
		return []linter.DisableDirective{{Type: dirType, Line: line, Column: column}}
	}

	out := make([]linter.DisableDirective, 0, len(rules))
	for _, rule := range rules {
		out = append(out, linter.DisableDirective{Type: dirType, Line: line, Column: column, RuleID: rule})
	}

	return out
}

func parseGlobals(body string, into map[string]linter.GlobalValue) {
	for _, item := range splitList(body) {
		name, mode, hasMode := strings.Cut(item, ":")

		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		value := linter.GlobalValue{}
		if hasMode {
			value = linter.NormalizeGlobalValue(strings.TrimSpace(mode))
		}

		into[name] = value
	}
}

// splitList splits a comma-separated directive body, dropping a trailing
// "-- justification" clause.
func splitList(body string) []string {
	body, _, _ = strings.Cut(body, "--")

	var items []string

	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}

	return items
}

func splitKeyword(body string) (keyword, rest string) {
	body = strings.TrimSpace(body)

	idx := strings.IndexAny(body, " \t\n")
	if idx < 0 {
		return body, ""
	}

	return body[:idx], strings.TrimSpace(body[idx:])
}

func stripCommentMarkers(value string) string {
	value = strings.TrimSpace(value)

	switch {
	case strings.HasPrefix(value, "/*"):
		value = strings.TrimPrefix(value, "/*")
		value = strings.TrimSuffix(value, "*/")
	case strings.HasPrefix(value, "//"):
		value = strings.TrimPrefix(value, "//")
	case strings.HasPrefix(value, "#"):
		value = strings.TrimPrefix(value, "#")
	}

	return strings.TrimSpace(value)
}
