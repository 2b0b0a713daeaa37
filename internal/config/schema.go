package config

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
)

// ValidateRuleOptions checks one rule's configured options against the JSON
// schema the rule declares. Rules without a schema accept any options.
func ValidateRuleOptions(ruleID string, rule linter.Rule, value any) error {
	if rule.Meta.Schema == nil {
		return nil
	}

	options := linter.RuleOptions(value)
	if len(options) == 0 {
		return nil
	}

	schemaLoader := gojsonschema.NewGoLoader(optionsSchema(rule.Meta.Schema))
	documentLoader := gojsonschema.NewGoLoader(options)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("rule %q: load options schema: %w", ruleID, err)
	}

	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}

	return fmt.Errorf("rule %q: invalid options: %s", ruleID, strings.Join(details, "; "))
}

// ValidateRules checks every configured rule's options against the registry.
// Unknown rule ids are skipped here; verification reports them as problems.
func ValidateRules(rules map[string]any, registry []linter.RuleEntry) error {
	for _, entry := range registry {
		value, configured := rules[entry.ID]
		if !configured {
			continue
		}

		err := ValidateRuleOptions(entry.ID, entry.Rule, value)
		if err != nil {
			return err
		}
	}

	return nil
}

// optionsSchema normalizes the two schema spellings rules use: a bare
// schema-list (positional option schemas) or a full schema object.
func optionsSchema(schema any) any {
	if items, ok := schema.([]any); ok {
		return map[string]any{
			"type":     "array",
			"items":    items,
			"minItems": 0,
			"maxItems": len(items),
		}
	}

	return schema
}
