// Package linter implements the execution core of the analysis engine: it
// drives configured rules over a parsed source representation, collects
// validated diagnostic findings, and optionally converges the text toward a
// fixed point by alternating verification with edit application.
//
// A Linter instance is not safe for concurrent verify calls; use one
// instance per in-flight file.
package linter

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
)

// DefaultFilename is the sentinel used when no filename is supplied.
const DefaultFilename = "<input>"

// DefaultParserName is the parser id used when the config names none.
const DefaultParserName = "default"

// maxAutofixPasses bounds the verify-then-patch convergence loop.
const maxAutofixPasses = 10

// ErrNoPatcher is returned by VerifyAndFix when no text patcher was wired.
var ErrNoPatcher = errors.New("linter: no text patcher configured")

// Config is the merged rule configuration for one verification call.
type Config struct {
	// Rules maps rule ids to config values: a severity (0|1|2 or
	// off|warn|error, case-insensitive) or a slice whose first element is
	// one followed by rule options.
	Rules map[string]any

	// Globals declares ambient names: values are "writable"/"writeable"/
	// true, "readonly"/"readable"/false, or "off" to drop the name.
	Globals map[string]any

	// Env enables named environments resolved through the EnvResolver.
	Env map[string]bool

	// Settings is free-form shared data exposed to every rule.
	Settings map[string]any

	// Parser names the registered parser; empty selects DefaultParserName.
	Parser string

	// ParserOptions are passed through to the parser, layered over any
	// environment-provided options.
	ParserOptions map[string]any
}

// VerifyOptions tunes one verification call.
type VerifyOptions struct {
	// Filename defaults to DefaultFilename when empty.
	Filename string

	// AllowInlineConfig controls inline directive handling; nil means
	// true.
	AllowInlineConfig *bool

	// DisableFixes suppresses emitting fix/suggestion edits on Problems
	// without disabling detection or contract validation.
	DisableFixes bool

	// ReportUnusedDisableDirectives is the unused-directive policy: a
	// bool (true means "error"), one of "off"/"warn"/"error", or nil for
	// "off".
	ReportUnusedDisableDirectives any
}

// FixOptions tunes one VerifyAndFix convergence run.
type FixOptions struct {
	VerifyOptions

	// Filter decides per finding whether its edit may be applied; nil
	// applies all.
	Filter FixFilter
}

type resolvedOptions struct {
	filename     string
	allowInline  bool
	disableFixes bool
	reportUnused string
}

// Linter is the engine instance: rule and parser registries, external
// collaborators, and the last-parsed-unit/last-config slots whose lifetime
// equals the instance's.
type Linter struct {
	rules     map[string]Rule
	ruleOrder []string
	parsers   map[string]Parser

	directives DirectiveHandler
	patcher    TextPatcher
	envs       EnvResolver
	flow       FlowBuilder
	logger     *slog.Logger

	lastSourceCode *SourceCode
	lastConfig     *Config
}

// Option configures a Linter at construction.
type Option func(*Linter)

// WithDirectiveHandler wires the inline-directive collaborator.
func WithDirectiveHandler(h DirectiveHandler) Option {
	return func(l *Linter) { l.directives = h }
}

// WithPatcher wires the text-patching collaborator used by VerifyAndFix.
func WithPatcher(p TextPatcher) Option {
	return func(l *Linter) { l.patcher = p }
}

// WithEnvResolver replaces the default "no environments available"
// resolver.
func WithEnvResolver(r EnvResolver) Option {
	return func(l *Linter) { l.envs = r }
}

// WithFlowBuilder wires the control-flow event transformer applied to
// Program-rooted trees.
func WithFlowBuilder(b FlowBuilder) Option {
	return func(l *Linter) { l.flow = b }
}

// WithLogger sets the structured logger; the default discards nothing but
// writes via slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) { l.logger = logger }
}

// New creates an engine with empty registries.
func New(opts ...Option) *Linter {
	l := &Linter{
		rules:   make(map[string]Rule),
		parsers: make(map[string]Parser),
		envs:    noEnvResolver{},
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// DefineRule registers or replaces one rule under the given id.
func (l *Linter) DefineRule(id string, rule Rule) {
	if _, exists := l.rules[id]; !exists {
		l.ruleOrder = append(l.ruleOrder, id)
	}

	l.rules[id] = rule
}

// DefineRules registers every rule in the map, in sorted id order so
// registration order stays deterministic.
func (l *Linter) DefineRules(rules map[string]Rule) {
	ids := make([]string, 0, len(rules))
	for id := range rules {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	for _, id := range ids {
		l.DefineRule(id, rules[id])
	}
}

// GetRules returns the registered rules in registration order.
func (l *Linter) GetRules() []RuleEntry {
	entries := make([]RuleEntry, 0, len(l.ruleOrder))
	for _, id := range l.ruleOrder {
		entries = append(entries, RuleEntry{ID: id, Rule: l.rules[id]})
	}

	return entries
}

// DefineParser registers or replaces a parser under the given name.
func (l *Linter) DefineParser(name string, parser Parser) {
	l.parsers[name] = parser
}

// Verify runs one full analysis pass over text, with no fixing. The
// returned problems are sorted by (line, column); a fatal engine error
// (a rule defect) is returned as an error, never as a Problem.
func (l *Linter) Verify(text string, cfg Config, opts VerifyOptions) ([]Problem, error) {
	return l.verify(text, nil, cfg, opts)
}

// VerifyCode runs one pass over an already-parsed unit, skipping the parse
// step entirely.
func (l *Linter) VerifyCode(src *SourceCode, cfg Config, opts VerifyOptions) ([]Problem, error) {
	return l.verify(src.Text, src, cfg, opts)
}

// GetSourceCode returns the parsed unit of the most recent verification,
// or nil before the first run. Callers may hold it for reuse through
// VerifyCode.
func (l *Linter) GetSourceCode() *SourceCode {
	return l.lastSourceCode
}

func (l *Linter) verify(text string, src *SourceCode, cfg Config, opts VerifyOptions) ([]Problem, error) {
	resolved := normalizeOptions(opts)

	parserName := cfg.Parser
	if parserName == "" {
		parserName = DefaultParserName
	}

	parser, ok := l.parsers[parserName]
	if !ok {
		return []Problem{{
			Severity: SeverityError,
			Message:  fmt.Sprintf("Configured parser '%s' was not found.", parserName),
		}}, nil
	}

	envGlobals, parserOptions := l.resolveEnvironments(cfg)

	if src == nil {
		if l.reusable(text, cfg) {
			src = l.lastSourceCode
		} else {
			result, parseErr := parser.Parse(resolved.filename, text, parserOptions)
			if parseErr != nil {
				return []Problem{parseFailureProblem(parseErr)}, nil
			}

			src = NewSourceCode(text, result)
		}
	}

	l.lastSourceCode = src
	l.lastConfig = &cfg

	var dirs Directives
	if l.directives != nil && resolved.allowInline {
		dirs = l.directives.Extract(src)
	}

	augmentGlobalScope(src.Scopes().GlobalScope(), mergeGlobals(envGlobals, cfg.Globals), dirs.EnabledGlobals, dirs.Exported)

	disp := newDispatcher(src)
	shared := &sharedContext{
		src:              src,
		filename:         resolved.filename,
		physicalFilename: resolved.filename,
		settings:         cfg.Settings,
		parserName:       parserName,
		parserOptions:    parserOptions,
		disableFixes:     resolved.disableFixes,
		disp:             disp,
	}

	if err := disp.registerRules(shared, cfg.Rules, l.lookupRule); err != nil {
		return nil, err
	}

	problems, err := disp.run(l.flow)
	if err != nil {
		return nil, err
	}

	problems = append(problems, dirs.Problems...)
	sortProblems(problems)

	if l.directives != nil && resolved.allowInline {
		problems = l.directives.Apply(problems, dirs.Disable, resolved.reportUnused)
	}

	return problems, nil
}

// VerifyAndFix repeatedly verifies and patches until a pass applies no
// edit or the pass cap is reached. A pass yielding exactly one fatal
// problem stops the loop immediately; its patch output is discarded. When
// the final patch round applied an edit, one more verification runs so the
// returned messages reflect the final text exactly.
func (l *Linter) VerifyAndFix(text string, cfg Config, opts FixOptions) (FixResult, error) {
	if l.patcher == nil {
		return FixResult{}, ErrNoPatcher
	}

	currentText := text
	fixedAny := false
	sawFatal := false

	var (
		problems []Problem
		round    PatchResult
		err      error
	)

	for pass := 1; pass <= maxAutofixPasses; pass++ {
		l.logger.Debug("autofix pass", "pass", pass, "filename", opts.Filename)

		problems, err = l.verify(currentText, nil, cfg, opts.VerifyOptions)
		if err != nil {
			return FixResult{}, err
		}

		round = l.patcher.Apply(currentText, problems, opts.Filter)

		if len(problems) == 1 && problems[0].Fatal {
			sawFatal = true

			break
		}

		fixedAny = fixedAny || round.Fixed
		currentText = round.Output

		if !round.Fixed {
			break
		}
	}

	if !sawFatal && round.Fixed {
		problems, err = l.verify(currentText, nil, cfg, opts.VerifyOptions)
		if err != nil {
			return FixResult{}, err
		}
	}

	return FixResult{Fixed: fixedAny, Messages: problems, Output: currentText}, nil
}

func (l *Linter) lookupRule(id string) (Rule, bool) {
	rule, ok := l.rules[id]

	return rule, ok
}

// reusable reports whether the last-parsed-unit slot matches the incoming
// text and config. This makes two verify calls on one instance
// order-dependent; callers needing concurrency use one instance per call.
func (l *Linter) reusable(text string, cfg Config) bool {
	return l.lastSourceCode != nil &&
		l.lastSourceCode.Text == text &&
		l.lastConfig != nil &&
		reflect.DeepEqual(*l.lastConfig, cfg)
}

// resolveEnvironments folds enabled environments into globals and parser
// options. Environment identifiers that do not resolve are dropped.
func (l *Linter) resolveEnvironments(cfg Config) (map[string]GlobalValue, map[string]any) {
	envGlobals := make(map[string]GlobalValue)
	parserOptions := make(map[string]any)

	names := make([]string, 0, len(cfg.Env))
	for name, enabled := range cfg.Env {
		if enabled {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	for _, name := range names {
		env, ok := l.envs.Resolve(name)
		if !ok {
			l.logger.Debug("unknown environment dropped", "env", name)

			continue
		}

		for global, value := range env.Globals {
			envGlobals[global] = value
		}

		for key, value := range env.ParserOptions {
			parserOptions[key] = value
		}
	}

	// Config-level parser options win over environment-provided ones.
	for key, value := range cfg.ParserOptions {
		parserOptions[key] = value
	}

	return envGlobals, parserOptions
}

func parseFailureProblem(err error) Problem {
	problem := Problem{
		Severity: SeverityError,
		Fatal:    true,
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		problem.Message = "Parsing error: " + parseErr.Message
		problem.Line = parseErr.Line
		problem.Column = parseErr.Column
	} else {
		problem.Message = "Parsing error: " + err.Error()
	}

	return problem
}

func normalizeOptions(opts VerifyOptions) resolvedOptions {
	resolved := resolvedOptions{
		filename:     opts.Filename,
		allowInline:  true,
		disableFixes: opts.DisableFixes,
		reportUnused: normalizeReportUnused(opts.ReportUnusedDisableDirectives),
	}

	if resolved.filename == "" {
		resolved.filename = DefaultFilename
	}

	if opts.AllowInlineConfig != nil {
		resolved.allowInline = *opts.AllowInlineConfig
	}

	return resolved
}

// normalizeReportUnused maps the legacy boolean and the string policy onto
// the canonical off|warn|error triple.
func normalizeReportUnused(value any) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "error"
		}

		return "off"
	case string:
		switch strings.ToLower(v) {
		case "warn":
			return "warn"
		case "error":
			return "error"
		}
	}

	return "off"
}
