package linter

import (
	"sort"
	"strings"
)

// NormalizeGlobalValue maps the accepted config encodings of a global's
// writability onto a GlobalValue. Unrecognized values resolve to readonly.
func NormalizeGlobalValue(value any) GlobalValue {
	switch v := value.(type) {
	case bool:
		return GlobalValue{Writeable: v}
	case string:
		switch strings.ToLower(v) {
		case "writable", "writeable":
			return GlobalValue{Writeable: true}
		case "off":
			return GlobalValue{Off: true}
		}
	}

	return GlobalValue{}
}

// mergeGlobals layers config-declared globals over environment-provided
// ones; config wins per name.
func mergeGlobals(envGlobals map[string]GlobalValue, configGlobals map[string]any) map[string]GlobalValue {
	merged := make(map[string]GlobalValue, len(envGlobals)+len(configGlobals))

	for name, value := range envGlobals {
		merged[name] = value
	}

	for name, raw := range configGlobals {
		merged[name] = NormalizeGlobalValue(raw)
	}

	return merged
}

// augmentGlobalScope injects configured and comment-declared globals into
// the global scope, records each variable's origin and writability, marks
// exported names as used, and re-links previously unresolved references
// that now match an injected global.
func augmentGlobalScope(
	globalScope *Scope,
	configGlobals map[string]GlobalValue,
	commentGlobals map[string]GlobalValue,
	exported []string,
) {
	defineGlobals(globalScope, configGlobals, false)
	defineGlobals(globalScope, commentGlobals, true)

	for _, name := range exported {
		if variable := globalScope.Variable(name); variable != nil {
			variable.Used = true
		}
	}

	relinkReferences(globalScope)
}

func defineGlobals(globalScope *Scope, globals map[string]GlobalValue, fromComment bool) {
	names := make([]string, 0, len(globals))
	for name := range globals {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		value := globals[name]
		if value.Off {
			continue
		}

		variable := globalScope.Variable(name)
		if variable == nil {
			variable = &Variable{Name: name}
			globalScope.AddVariable(variable)
		}

		if fromComment {
			variable.FromComment = true
		} else {
			variable.FromConfig = true
		}

		variable.Writeable = value.Writeable
	}
}

// relinkReferences resolves scope-through references against the augmented
// variable set, retaining only those that still resolve to nothing.
func relinkReferences(globalScope *Scope) {
	remaining := globalScope.Through[:0]

	for _, ref := range globalScope.Through {
		variable := globalScope.Variable(ref.Name)
		if variable == nil {
			remaining = append(remaining, ref)

			continue
		}

		ref.Resolved = variable
		variable.References = append(variable.References, ref)
	}

	globalScope.Through = remaining
}
