// Package correct implements the second, text-level pass over generated
// Ruby source. The generator leaves systematic JavaScript-isms in its raw
// output (console.log, ===, x++, else+if pairs); this package patches
// them with an ordered sequence of lexical substitutions followed by a
// handful of structural rewrites. The pass order is a correctness
// invariant: later steps assume earlier rewrites already happened.
package correct

import (
	"fmt"
	"regexp"
)

// Rule is one correction-table entry: a regular expression applied
// case-insensitively and in multiline mode, with a literal replacement
// (Go replacement syntax, so ${1} refers to a capture group).
type Rule struct {
	Pattern string `toml:"pattern"`
	Replace string `toml:"replace"`
}

// ConfigurationError reports a correction-table entry that failed to
// compile. It is raised at construction time, never during Apply.
type ConfigurationError struct {
	Pattern string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("correct: bad table pattern %q: %v", e.Pattern, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

type compiledRule struct {
	re      *regexp.Regexp
	replace string
}

func compileRules(rules []Rule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile("(?im)" + r.Pattern)
		if err != nil {
			return nil, &ConfigurationError{Pattern: r.Pattern, Err: err}
		}
		compiled = append(compiled, compiledRule{re: re, replace: r.Replace})
	}
	return compiled, nil
}

// DefaultRules returns the stock correction table. Projects extend or
// replace it through the [[corrections.rule]] entries of jsrb.toml.
// Every stock rule is idempotent: its output never matches its own
// trigger again.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: `console\.log`, Replace: "puts"},
		{Pattern: `!==`, Replace: "!="},
		{Pattern: `===`, Replace: "=="},
		{Pattern: `\bnull\b`, Replace: "nil"},
		{Pattern: `\bundefined\b`, Replace: "nil"},
		// The generator renders an else-if chain as "else" followed by a
		// fresh "if" sharing one terminator; Ruby spells that elsif.
		{Pattern: `^(\s*)else\s*\n\s*if\b`, Replace: "${1}elsif"},
	}
}
