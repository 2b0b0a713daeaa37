package commands

import (
	"log/slog"

	"github.com/Sumatoshi-tech/lintfang/internal/directive"
	"github.com/Sumatoshi-tech/lintfang/internal/patcher"
	"github.com/Sumatoshi-tech/lintfang/internal/tsparse"
	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
	"github.com/Sumatoshi-tech/lintfang/pkg/rules"
)

// builtinEnvs are the named environments configs can enable. Each
// contributes predeclared globals the way an interpreter would.
var builtinEnvs = map[string]linter.Env{
	"shell": {
		Globals: map[string]linter.GlobalValue{
			"HOME": {},
			"PATH": {},
			"PWD":  {},
		},
	},
	"ci": {
		Globals: map[string]linter.GlobalValue{
			"CI":         {},
			"BUILD_ID":   {},
			"BRANCH":     {},
			"COMMIT_SHA": {},
		},
	},
}

// envTable resolves environment names against the builtin table.
type envTable struct{}

func (envTable) Resolve(name string) (linter.Env, bool) {
	env, ok := builtinEnvs[name]

	return env, ok
}

// newEngine builds a fully wired verification engine: tree-sitter parsing,
// inline directives, autofix patching, builtin environments, and the
// builtin rule set.
func newEngine(logger *slog.Logger) *linter.Linter {
	engine := linter.New(
		linter.WithDirectiveHandler(directive.New()),
		linter.WithPatcher(patcher.New()),
		linter.WithEnvResolver(envTable{}),
		linter.WithLogger(logger),
	)

	engine.DefineParser(linter.DefaultParserName, tsparse.New())
	rules.Register(engine)

	return engine
}
