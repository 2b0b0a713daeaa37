package mcp

import (
	"context"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/lintfang/internal/observability"
	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
)

// defaultToolFilename is used when a tool call supplies no filename.
const defaultToolFilename = "input.txt"

// LintOutput is the structured result of the lintfang_lint tool.
type LintOutput struct {
	Problems []linter.Problem `json:"problems"`
	Errors   int              `json:"errorCount"`
	Warnings int              `json:"warningCount"`
}

// FixOutput is the structured result of the lintfang_fix tool.
type FixOutput struct {
	Fixed    bool             `json:"fixed"`
	Output   string           `json:"output"`
	Problems []linter.Problem `json:"problems"`
}

// RuleInfo describes one registered rule for the lintfang_rules tool.
type RuleInfo struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Recommended bool   `json:"recommended"`
	Fixable     string `json:"fixable,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
}

// handleLint processes lintfang_lint tool calls.
func (s *Server) handleLint(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input LintInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateCodeInput(input.Code)
	if err != nil {
		return errorResult(err)
	}

	started := time.Now()

	problems, err := s.engine.Verify(input.Code, s.callConfig(input), linter.VerifyOptions{
		Filename: toolFilename(input.Filename),
	})
	if err != nil {
		return errorResult(fmt.Errorf("verify code: %w", err))
	}

	errors, warnings := countBySeverity(problems)
	s.metrics.RecordFile(ctx, observability.FileStats{
		Errors:   int64(errors),
		Warnings: int64(warnings),
		Duration: time.Since(started),
	})

	return jsonResult(LintOutput{Problems: problems, Errors: errors, Warnings: warnings})
}

// handleFix processes lintfang_fix tool calls.
func (s *Server) handleFix(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input LintInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateCodeInput(input.Code)
	if err != nil {
		return errorResult(err)
	}

	started := time.Now()

	result, err := s.engine.VerifyAndFix(input.Code, s.callConfig(input), linter.FixOptions{
		VerifyOptions: linter.VerifyOptions{Filename: toolFilename(input.Filename)},
	})
	if err != nil {
		return errorResult(fmt.Errorf("fix code: %w", err))
	}

	errors, warnings := countBySeverity(result.Messages)
	s.metrics.RecordFile(ctx, observability.FileStats{
		Errors:   int64(errors),
		Warnings: int64(warnings),
		Duration: time.Since(started),
	})

	return jsonResult(FixOutput{Fixed: result.Fixed, Output: result.Output, Problems: result.Messages})
}

// handleRules processes lintfang_rules tool calls.
func (s *Server) handleRules(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	_ RulesInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	entries := s.engine.GetRules()
	infos := make([]RuleInfo, 0, len(entries))

	for _, entry := range entries {
		infos = append(infos, RuleInfo{
			ID:          entry.ID,
			Description: entry.Rule.Meta.Docs.Description,
			Category:    entry.Rule.Meta.Docs.Category,
			Recommended: entry.Rule.Meta.Docs.Recommended,
			Fixable:     entry.Rule.Meta.Fixable,
			Deprecated:  entry.Rule.Meta.Deprecated,
		})
	}

	return jsonResult(infos)
}

// callConfig merges per-call rule overrides over the server configuration.
func (s *Server) callConfig(input LintInput) linter.Config {
	cfg := s.config

	if len(input.Rules) > 0 {
		merged := make(map[string]any, len(cfg.Rules)+len(input.Rules))
		for id, value := range cfg.Rules {
			merged[id] = value
		}

		for id, value := range input.Rules {
			merged[id] = value
		}

		cfg.Rules = merged
	}

	return cfg
}

func toolFilename(filename string) string {
	if filename == "" {
		return defaultToolFilename
	}

	return filename
}

func countBySeverity(problems []linter.Problem) (errors, warnings int) {
	for _, p := range problems {
		switch p.Severity {
		case linter.SeverityError:
			errors++
		case linter.SeverityWarn:
			warnings++
		}
	}

	return errors, warnings
}
