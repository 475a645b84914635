package correct

import (
	"regexp"
	"sort"
	"strings"
)

// The higher-order rewrite is a textual heuristic, not scope analysis:
// a parameter counts as callable when its name is immediately followed
// by an opening parenthesis anywhere in the function's body text. It can
// under- and over-detect (shadowed names, names inside strings); that is
// a documented accuracy caveat, not an error condition, and the trigger
// conditions are kept narrow on purpose.

var (
	defRe   = regexp.MustCompile(`(?m)^def (\w+)\(([^)]*)\)[ \t]*$`)
	endRe   = regexp.MustCompile(`(?m)^end[ \t]*$`)
	identRe = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

// rewriteCallableParams scans every function definition, rewrites body
// invocations of callable parameters to explicit .call syntax, and
// returns the registry of function name -> zero-based position of the
// first callable parameter.
func rewriteCallableParams(text string) (string, map[string]int) {
	registry := make(map[string]int)
	defs := defRe.FindAllStringSubmatchIndex(text, -1)
	// Rewrite back to front so earlier body offsets stay valid.
	for di := len(defs) - 1; di >= 0; di-- {
		d := defs[di]
		name := text[d[2]:d[3]]
		paramList := text[d[4]:d[5]]
		bodyStart := d[1]
		bodyEnd := len(text)
		if end := endRe.FindStringIndex(text[bodyStart:]); end != nil {
			bodyEnd = bodyStart + end[0]
		}
		body := text[bodyStart:bodyEnd]

		recorded := false
		for i, param := range strings.Split(paramList, ",") {
			param = strings.TrimSpace(param)
			if param == "" {
				continue
			}
			callRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(param) + `\(`)
			if !callRe.MatchString(body) {
				continue
			}
			body = callRe.ReplaceAllString(body, param+".call(")
			if !recorded {
				registry[name] = i
				recorded = true
			}
		}
		text = text[:bodyStart] + body + text[bodyEnd:]
	}
	return text, registry
}

// rewriteCallSites patches uses of the functions recorded by
// rewriteCallableParams: at each call site, the argument at the recorded
// position becomes a method reference when it is a plain identifier.
// Arguments that are anything more complex are left alone.
func rewriteCallSites(text string, registry map[string]int) string {
	if len(registry) == 0 {
		return text
	}
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		idx := registry[name]
		callRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\(([^()]*)\)`)
		matches := callRe.FindAllStringSubmatchIndex(text, -1)
		for mi := len(matches) - 1; mi >= 0; mi-- {
			m := matches[mi]
			if isDefSite(text, m[0]) {
				continue
			}
			args := strings.Split(text[m[2]:m[3]], ",")
			if idx >= len(args) {
				continue
			}
			arg := strings.TrimSpace(args[idx])
			if !identRe.MatchString(arg) {
				continue
			}
			args[idx] = "method(:" + arg + ")"
			rebuilt := strings.Join(trimAll(args), ", ")
			text = text[:m[2]] + rebuilt + text[m[3]:]
		}
	}
	return text
}

func trimAll(parts []string) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

func isDefSite(text string, at int) bool {
	const kw = "def "
	return at >= len(kw) && text[at-len(kw):at] == kw
}
