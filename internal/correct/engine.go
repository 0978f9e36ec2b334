package correct

import (
	"fmt"
	"regexp"
	"sort"
	"sync/atomic"
)

var quotedSpan = regexp.MustCompile(`"[^"]*"`)

type compiledSub struct {
	re          *regexp.Regexp
	replacement string
}

type compiledPattern struct {
	re          *regexp.Regexp
	replacement string
}

// Engine applies a compiled rule set. It is safe for concurrent use; the
// substitution counters are atomic.
type Engine struct {
	version    string
	totalRules int

	subs     []compiledSub
	patterns []compiledPattern

	applied  atomic.Int64
	failures atomic.Int64
}

// NewEngine compiles rs into an Engine. Rules that cannot be compiled, or
// whose replacement would itself be rewritten again (breaking idempotence),
// are dropped; each drop is reported in the returned warnings.
func NewEngine(rs *RuleSet) (*Engine, []string) {
	if rs == nil {
		rs = DefaultRules()
	}
	e := &Engine{version: rs.Version, totalRules: rs.TotalRules}
	var warnings []string

	// Deterministic compile order: longest token first, then lexicographic.
	tokens := make([]string, 0, len(rs.Substitutions))
	for token := range rs.Substitutions {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})

	compiled := make([]compiledSub, 0, len(tokens))
	for _, token := range tokens {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(token) + `\b`)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("substitution %q: %v", token, err))
			continue
		}
		compiled = append(compiled, compiledSub{re: re, replacement: rs.Substitutions[token]})
	}

	// A replacement that the substitution pass would rewrite again makes
	// Correct non-idempotent; such rules are rejected at compile time.
	for _, sub := range compiled {
		rewritten := false
		for _, other := range compiled {
			if other.re.MatchString(sub.replacement) {
				rewritten = true
				break
			}
		}
		if rewritten {
			warnings = append(warnings, fmt.Sprintf("substitution to %q dropped: replacement is itself rewritten", sub.replacement))
			continue
		}
		e.subs = append(e.subs, sub)
	}

	for _, p := range rs.Patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("pattern %q: %v", p.Pattern, err))
			continue
		}
		e.patterns = append(e.patterns, compiledPattern{re: re, replacement: p.Replacement})
	}
	return e, warnings
}

// Correct normalizes text. Fixed patterns run over the full input; token
// substitutions run only inside quoted attribute-value spans so element and
// attribute names are never touched. Any internal failure returns the input
// unchanged and is counted, never raised.
func (e *Engine) Correct(text string) (out string) {
	out = text
	defer func() {
		if r := recover(); r != nil {
			e.failures.Add(1)
			out = text
		}
	}()

	corrected := text
	for _, p := range e.patterns {
		if n := len(p.re.FindAllStringIndex(corrected, -1)); n > 0 {
			corrected = p.re.ReplaceAllString(corrected, p.replacement)
			e.applied.Add(int64(n))
		}
	}
	corrected = quotedSpan.ReplaceAllStringFunc(corrected, func(span string) string {
		inner := span[1 : len(span)-1]
		fixed, n := e.applySubs(inner)
		e.applied.Add(n)
		return `"` + fixed + `"`
	})
	return corrected
}

// CorrectValue normalizes a single attribute value. The serializer routes
// every attribute value through this before escaping.
func (e *Engine) CorrectValue(value string) (out string) {
	out = value
	defer func() {
		if r := recover(); r != nil {
			e.failures.Add(1)
			out = value
		}
	}()
	fixed, n := e.applySubs(value)
	e.applied.Add(n)
	return fixed
}

func (e *Engine) applySubs(s string) (string, int64) {
	var count int64
	for _, sub := range e.subs {
		if n := len(sub.re.FindAllStringIndex(s, -1)); n > 0 {
			s = sub.re.ReplaceAllString(s, sub.replacement)
			count += int64(n)
		}
	}
	return s, count
}

// Applied returns the number of substitutions performed so far.
func (e *Engine) Applied() int64 { return e.applied.Load() }

// Failures returns the number of correction invocations that recovered
// from an internal error.
func (e *Engine) Failures() int64 { return e.failures.Load() }

// Version reports the rule set version string.
func (e *Engine) Version() string { return e.version }

// TotalRules reports the rule count declared by the rule set.
func (e *Engine) TotalRules() int { return e.totalRules }
