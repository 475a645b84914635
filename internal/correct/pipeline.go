package correct

import (
	"regexp"
	"strings"
)

const (
	defaultPrintBuiltin = "puts"
	defaultFloorSource  = "Math.floor"
)

// Options selects the builtin names the structural passes key on.
type Options struct {
	// PrintBuiltin is the target-language print call rewritten by the
	// stringification pass. The correction table is expected to have
	// mapped the source-language print call onto it already.
	PrintBuiltin string
	// FloorSource is the source-language floor function rewritten into
	// a postfix method call.
	FloorSource string
}

func (o Options) withDefaults() Options {
	if o.PrintBuiltin == "" {
		o.PrintBuiltin = defaultPrintBuiltin
	}
	if o.FloorSource == "" {
		o.FloorSource = defaultFloorSource
	}
	return o
}

// Pipeline applies the full correction sequence to generated text. Build
// one with New; the table is compiled once and reused across Apply calls.
type Pipeline struct {
	rules   []compiledRule
	print   string
	floorRe *regexp.Regexp
	printRe *regexp.Regexp
}

var (
	postfixIncRe = regexp.MustCompile(`(\w+)\+\+`)
	postfixDecRe = regexp.MustCompile(`(\w+)--`)
)

// New compiles the table and the structural-pass patterns. A malformed
// table entry fails here with a ConfigurationError, not during Apply.
func New(rules []Rule, opts Options) (*Pipeline, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	return &Pipeline{
		rules:   compiled,
		print:   opts.PrintBuiltin,
		floorRe: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(opts.FloorSource) + `\(`),
		printRe: regexp.MustCompile(`(?m)^(\s*)` + regexp.QuoteMeta(opts.PrintBuiltin) + `\((.*)\)[ \t]*$`),
	}, nil
}

// Apply runs the fixed pass sequence over text and returns the corrected
// result. Passes run in table order first, then the structural rewrites;
// reordering them is not valid. Apply is idempotent on its own output.
func (p *Pipeline) Apply(text string) string {
	for _, r := range p.rules {
		text = r.re.ReplaceAllString(text, r.replace)
	}
	text = p.rewriteFloor(text)
	text, registry := rewriteCallableParams(text)
	text = rewriteCallSites(text, registry)
	text = postfixIncRe.ReplaceAllString(text, "${1} += 1")
	text = postfixDecRe.ReplaceAllString(text, "${1} -= 1")
	text = p.rewritePrints(text)
	return text
}

// rewriteFloor turns every floor call into a postfix method call. The
// argument spans to the matching parenthesis, so nested calls survive;
// occurrences inside the argument are rewritten recursively.
func (p *Pipeline) rewriteFloor(text string) string {
	var b strings.Builder
	for {
		loc := p.floorRe.FindStringIndex(text)
		if loc == nil {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:loc[0]])
		inner, rest, ok := spanParens(text[loc[1]:])
		if !ok {
			// Unterminated call, leave it as written.
			b.WriteString(text[loc[0]:loc[1]])
			text = text[loc[1]:]
			continue
		}
		b.WriteString("(" + p.rewriteFloor(inner) + ").floor")
		text = rest
	}
}

// spanParens returns the text up to the parenthesis matching an already
// consumed opener, and the remainder after it. String literals are
// skipped the same way splitTopLevel skips them.
func spanParens(s string) (inner, rest string, ok bool) {
	depth := 1
	var quote byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if quote != 0 {
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '"', '\'':
			quote = ch
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// rewritePrints wraps every non-string argument of a print call in an
// explicit stringification and re-emits the call as a single line.
func (p *Pipeline) rewritePrints(text string) string {
	return p.printRe.ReplaceAllStringFunc(text, func(line string) string {
		m := p.printRe.FindStringSubmatch(line)
		indent, inner := m[1], m[2]
		parts := splitTopLevel(inner, '+')
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			arg := strings.TrimSpace(part)
			if arg == "" {
				continue
			}
			out = append(out, stringify(arg))
		}
		if len(out) == 0 {
			return indent + p.print + "()"
		}
		return indent + p.print + "(" + strings.Join(out, " + ") + ")"
	})
}

// stringify leaves string literals and already-stringified expressions
// alone and wraps everything else in (expr).to_s.
func stringify(arg string) string {
	if arg[0] == '"' || arg[0] == '\'' {
		return arg
	}
	if strings.HasSuffix(arg, ".to_s") {
		return arg
	}
	return "(" + arg + ").to_s"
}

// splitTopLevel splits s on sep occurrences that sit outside parentheses,
// brackets and string literals.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if quote != 0 {
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '"', '\'':
			quote = ch
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
