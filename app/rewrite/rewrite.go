// Package rewrite implements named text rewrite rules applied to the backend source file.
// Each rule reports whether it matched.
package rewrite

import (
	"fmt"
	"regexp"
	"strings"
)

// ProductionWiring is the canonical app wiring expression without the debugger.
const ProductionWiring = "app =\n    Effect.Lamdera.backend\n        Lamdera.broadcast\n        Lamdera.sendToFrontend\n        app_"

// rule names
const (
	AddImportRule     = "add-import"
	RemoveImportRule  = "remove-import"
	EnableWiringRule  = "enable-wiring"
	DisableWiringRule = "disable-wiring"
)

var productionWiringRe = regexp.MustCompile(
	`\bapp\s*=\s*Effect\.Lamdera\.backend\s*Lamdera\.broadcast\s*Lamdera\.sendToFrontend\s*app_\b`)

// Rule is a named text transformation.
type Rule struct {
	Name     string
	Optional bool // a miss is expected and not reported
	apply    func(src string) (res string, matched bool)
}

// Result describes the outcome of a single rule.
type Result struct {
	Rule     string `json:"rule"`
	Optional bool   `json:"optional"`
	Matched  bool   `json:"matched"`
	Changed  bool   `json:"changed"`
}

// Missed returns true if a non-optional rule did not find its pattern.
func (r Result) Missed() bool {
	return !r.Matched && !r.Optional
}

// Wiring holds the names used by the debug wiring expression and its import.
type Wiring struct {
	Module  string // debug module, i.e. Debuggy.App
	Anchor  string // module whose import line the debug import follows, i.e. Api
	NoOpMsg string // no-op backend message constructor, i.e. NoOpBackendMsg
}

// Apply runs the rule against src.
func (r Rule) Apply(src string) (string, Result) {
	res, matched := r.apply(src)
	return res, Result{Rule: r.Name, Optional: r.Optional, Matched: matched, Changed: res != src}
}

// Apply runs rules in order, each one on the output of the previous.
func Apply(src string, rules ...Rule) (string, []Result) {
	results := make([]Result, 0, len(rules))
	for _, r := range rules {
		var res Result
		src, res = r.Apply(src)
		results = append(results, res)
	}
	return src, results
}

// EnableRules returns the rules switching the source to the debug wiring with the given token.
func EnableRules(w Wiring, token string) []Rule {
	return []Rule{AddImport(w.Anchor, w.Module), EnableWiring(w.Module, w.NoOpMsg, token)}
}

// DisableRules returns the rules switching the source back to the production wiring.
func DisableRules(w Wiring) []Rule {
	return []Rule{RemoveImport(w.Module), DisableWiring(w.Module)}
}

// AddImport inserts "import <module>" on the line after the first "import <anchor>" statement,
// including its indented continuation lines. Matches without change if the import is already present.
func AddImport(anchor, module string) Rule {
	present := importRe(module, false)
	anchorRe := anchorImportRe(anchor)
	return Rule{
		Name: AddImportRule,
		apply: func(src string) (string, bool) {
			if present.MatchString(src) {
				return src, true
			}
			loc := anchorRe.FindStringIndex(src)
			if loc == nil {
				return src, false
			}
			line := "\nimport " + module
			if strings.HasSuffix(src[:loc[1]], "\r") { // keep crlf line endings
				line = "\nimport " + module + "\r"
			}
			return src[:loc[1]] + line + src[loc[1]:], true
		},
	}
}

// RemoveImport drops every "import <module>" line. Absent import is fine.
func RemoveImport(module string) Rule {
	re := importRe(module, true)
	return Rule{
		Name:     RemoveImportRule,
		Optional: true,
		apply: func(src string) (string, bool) {
			if !re.MatchString(src) {
				return src, false
			}
			return re.ReplaceAllLiteralString(src, ""), true
		},
	}
}

// EnableWiring replaces the production wiring expression with the debug-wrapped one.
func EnableWiring(module, noOpMsg, token string) Rule {
	repl := DebugWiring(module, noOpMsg, token)
	return Rule{
		Name: EnableWiringRule,
		apply: func(src string) (string, bool) {
			if !productionWiringRe.MatchString(src) {
				return src, false
			}
			return productionWiringRe.ReplaceAllLiteralString(src, repl), true
		},
	}
}

// DisableWiring replaces the debug-wrapped wiring expression with the production one.
// The match never crosses a closing brace, so a record following the expression is safe.
func DisableWiring(module string) Rule {
	re := regexp.MustCompile(`\bapp\s*=\s*` + regexp.QuoteMeta(module) + `\.backend[^}]*?app_\b`)
	return Rule{
		Name: DisableWiringRule,
		apply: func(src string) (string, bool) {
			if !re.MatchString(src) {
				return src, false
			}
			return re.ReplaceAllLiteralString(src, ProductionWiring), true
		},
	}
}

// DebugWiring renders the debug-wrapped wiring expression.
func DebugWiring(module, noOpMsg, token string) string {
	lines := []string{
		"app =",
		fmt.Sprintf("    %s.backend %s", module, noOpMsg),
		fmt.Sprintf("        %q", token),
		"        Lamdera.broadcast",
		"        Lamdera.sendToFrontend",
		"        app_",
	}
	return strings.Join(lines, "\n")
}

// importRe matches a whole import line of module, optionally with exposing/as clauses.
// withNewline includes the trailing line break for removal.
func importRe(module string, withNewline bool) *regexp.Regexp {
	pattern := `(?m)^import ` + regexp.QuoteMeta(module) + `(?:[ \t][^\n]*)?\r?$`
	if withNewline {
		pattern = `(?m)^import ` + regexp.QuoteMeta(module) + `(?:[ \t][^\n]*)?\r?(?:\n|\z)`
	}
	return regexp.MustCompile(pattern)
}

// anchorImportRe matches an import statement of module up to the end of its last line,
// multi-line exposing lists continue on indented lines.
func anchorImportRe(module string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^import ` + regexp.QuoteMeta(module) +
		`(?:[ \t][^\n]*)?(?:\r?\n[ \t]+[^\n]*)*\r?$`)
}
