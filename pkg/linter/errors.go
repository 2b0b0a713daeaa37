package linter

import (
	"fmt"
)

// RuleError reports a defect inside a rule implementation: a listener or
// listener factory panicked during a pass. It is fatal to the whole pass
// and is never converted into a Problem.
type RuleError struct {
	RuleID string
	Line   int
	Err    error
}

// Error formats the failure with the owning rule id and, when known, the
// line of the node being dispatched when the rule failed.
func (e *RuleError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("rule %q errored at line %d: %v", e.RuleID, e.Line, e.Err)
	}

	return fmt.Sprintf("rule %q errored: %v", e.RuleID, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *RuleError) Unwrap() error {
	return e.Err
}

// ContractError reports a violation of the producer/consumer contract
// between a rule and the engine: reporting an edit or suggestions without
// declaring the matching meta capability, or a malformed report descriptor.
// Like RuleError it is a programming defect, fatal to the pass, not a
// finding about the analyzed program.
type ContractError struct {
	RuleID string
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("rule %q: %s", e.RuleID, e.Reason)
}

// Contract violation reasons.
const (
	reasonFixWithoutMeta     = "fixable rules must set the meta.fixable property to \"code\" or \"whitespace\""
	reasonSuggWithoutMeta    = "rules with suggestions must set the meta.hasSuggestions property to true"
	reasonSuggDeprecatedMeta = "rules with suggestions must set the meta.hasSuggestions property to true " +
		"(the deprecated meta.docs.suggestion flag is ignored)"
	reasonMissingLocation  = "a report must specify a node or an explicit location"
	reasonUnknownMessageID = "report used an unknown messageId"
	reasonMessageAndID     = "report may specify either a message or a messageId, not both"
	reasonNoMessage        = "report specified neither a message nor a messageId"
)
