package svgdom

import (
	"log/slog"
	"regexp"
	"strings"
)

// The style engine tracks only the properties that influence plotted
// geometry. Everything else (fill, paint, markers...) is dropped.

var (
	reFloat  = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?$`)
	reLength = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?` +
		`(?:cap|ch|em|ex|ic|lh|rem|rlh|vh|vw|vi|vb|vmin|vmax|px|mm|q|cm|in|pc|pt|%)?$`)
)

type validator func(string) bool

func isFloat(value string) bool  { return reFloat.MatchString(value) }
func isLength(value string) bool { return reLength.MatchString(strings.ToLower(value)) }

// isLengthList accepts comma or space separated lists of lengths,
// including the empty list.
func isLengthList(value string) bool {
	for _, field := range splitCommaOrSpace(value) {
		if !isLength(field) {
			return false
		}
	}
	return true
}

// keywords builds a validator accepting exactly the given identifiers.
// The "inherit" keyword is deliberately absent everywhere so that an
// inherited value falls through the cascade instead.
func keywords(words ...string) validator {
	set := map[string]bool{}
	for _, w := range words {
		set[w] = true
	}
	return func(value string) bool { return set[strings.ToLower(strings.TrimSpace(value))] }
}

func anyValue(string) bool { return true }

// decorationLines accepts space separated combinations of line keywords.
func decorationLines(value string) bool {
	for _, field := range strings.Fields(value) {
		switch strings.ToLower(field) {
		case "underline", "overline", "line-through", "none", "initial":
		default:
			return false
		}
	}
	return true
}

// decorationShorthand accepts any mix of line and style keywords.
func decorationShorthand(value string) bool {
	for _, field := range strings.Fields(value) {
		switch strings.ToLower(field) {
		case "underline", "overline", "line-through", "none", "initial",
			"solid", "double", "dotted", "dashed", "wavy":
		default:
			return false
		}
	}
	return true
}

// tracked lists the properties the cascade resolves, their defaults and
// the predicate a declared value must pass to be accepted.
var tracked = map[string]struct {
	def   string
	valid validator
}{
	"font-family":           {"serif", anyValue},
	"font-size":             {"12pt", isLength},
	"font-style":            {"normal", keywords("normal", "italic", "oblique", "initial")},
	"font-weight":           {"400", isFloat},
	"stroke-dasharray":      {"", isLengthList},
	"stroke-dashoffset":     {"0", isLength},
	"stroke-width":          {"0.35mm", isLength},
	"text-decoration":       {"", decorationShorthand},
	"text-decoration-line":  {"", decorationLines},
	"text-decoration-style": {"solid", keywords("solid", "double", "dotted", "dashed", "wavy", "initial")},
	"text-transform":        {"none", keywords("none", "uppercase", "lowercase", "capitalize", "initial")},
	"transform":             {"", anyValue},
}

// ParseDeclarations parses a CSS declaration list ("prop: value; ...")
// keeping only tracked properties whose value passes validation.
// Anything else is dropped with a warning.
func ParseDeclarations(css string, logger *slog.Logger) map[string]string {
	if logger == nil {
		logger = slog.Default()
	}
	out := map[string]string{}
	for _, rule := range strings.Split(css, ";") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		property, value, found := strings.Cut(rule, ":")
		if !found {
			logger.Warn("css rule without value, dropping", "rule", rule)
			continue
		}
		property = strings.ToLower(strings.TrimSpace(property))
		value = strings.TrimSpace(value)
		spec, ok := tracked[property]
		if !ok {
			continue // untracked properties are not a fault
		}
		if !spec.valid(value) {
			logger.Warn("invalid css value, dropping", "property", property, "value", value)
			continue
		}
		out[property] = value
	}
	return out
}

func splitCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}
