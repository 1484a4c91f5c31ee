package organizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Level identifies how a label participates in grouping.
type Level int

// Grouping levels, in nesting order.
const (
	LevelNone Level = iota
	LevelSection
	LevelSubSection
)

func (l Level) String() string {
	switch l {
	case LevelSection:
		return "section"
	case LevelSubSection:
		return "subsection"
	default:
		return "none"
	}
}

// Fallback display names for headers whose decoration strips to nothing.
const (
	DefaultSectionName    = "Section"
	DefaultSubSectionName = "Sub-Section"
)

// DefaultDividerPatterns are the built-in prefix families recognized as
// section dividers. Order matters: the first match wins.
var DefaultDividerPatterns = []string{"=+", "⭐+", "━+"}

// subSectionRe matches angle-bracket sub-section labels like "<Melee>".
// An empty capture is allowed so "<>" still classifies as a sub-section.
var subSectionRe = regexp.MustCompile(`^\s*<\s*(.*?)\s*>\s*$`)

// Classification is the result of classifying a single label.
type Classification struct {
	IsDivider   bool
	Level       Level
	DisplayName string
}

// Classifier decides whether a label denotes a section, a sub-section, or an
// ordinary prompt, and extracts its display name. It is safe to reuse across
// rebuilds; classification is always applied to the original label.
type Classifier struct {
	sectionRe *regexp.Regexp
	log       zerolog.Logger
}

// NewClassifier builds a classifier from the built-in divider patterns plus
// any custom patterns. Custom patterns are appended after the built-ins and
// deduplicated. If the combined expression does not compile, the classifier
// falls back to the built-in patterns only and the error is returned so the
// caller can log it; the classifier itself is always usable.
func NewClassifier(custom []string, log zerolog.Logger) (*Classifier, error) {
	c := &Classifier{log: log}

	combined, err := compileDividerPatterns(custom)
	if err != nil {
		c.sectionRe = mustCompileDividerPatterns(nil)
		return c, err
	}

	c.sectionRe = combined
	return c, nil
}

// Classify tags a label. label must be the original, unstripped text; feeding
// a previously stripped display name back in would cascade truncation across
// rebuilds.
func (c *Classifier) Classify(label string) Classification {
	if m := subSectionRe.FindStringSubmatch(label); m != nil {
		name := strings.TrimSpace(m[1])
		if name == "" {
			name = DefaultSubSectionName
		}
		return Classification{IsDivider: true, Level: LevelSubSection, DisplayName: name}
	}

	if loc := c.sectionRe.FindStringIndex(label); loc != nil {
		name := c.stripDecoration(label)
		if name == "" {
			name = DefaultSectionName
		}
		return Classification{IsDivider: true, Level: LevelSection, DisplayName: name}
	}

	return Classification{Level: LevelNone}
}

// stripDecoration removes the leading matched divider token and a best-effort
// trailing occurrence of the same token, handling symmetric decorations like
// "=== Name ===". Stripping repeats until the remainder no longer matches any
// divider pattern, which keeps classification idempotent: a stripped display
// name never re-classifies as a divider.
func (c *Classifier) stripDecoration(label string) string {
	rest := label
	for range len(label) {
		loc := c.sectionRe.FindStringIndex(rest)
		if loc == nil {
			break
		}

		token := strings.TrimSpace(rest[loc[0]:loc[1]])
		rest = strings.TrimSpace(rest[loc[1]:])
		if token != "" && strings.HasSuffix(rest, token) {
			rest = strings.TrimSpace(strings.TrimSuffix(rest, token))
		}
	}
	return rest
}

// compileDividerPatterns combines the built-in and custom patterns into a
// single anchored alternation.
func compileDividerPatterns(custom []string) (*regexp.Regexp, error) {
	patterns := make([]string, 0, len(DefaultDividerPatterns)+len(custom))
	seen := make(map[string]bool)

	for _, p := range DefaultDividerPatterns {
		if !seen[p] {
			seen[p] = true
			patterns = append(patterns, p)
		}
	}
	for _, p := range custom {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		patterns = append(patterns, p)
	}

	re, err := regexp.Compile(`^\s*(?:` + strings.Join(patterns, "|") + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile divider patterns: %w", err)
	}
	return re, nil
}

func mustCompileDividerPatterns(custom []string) *regexp.Regexp {
	re, err := compileDividerPatterns(custom)
	if err != nil {
		panic(err) // built-in patterns are static and always compile
	}
	return re
}
