// Package validate checks design trees for structural and stylistic
// problems. Findings are data, not errors: the repair pass and the HTTP
// surface both consume them, and a tree with warnings is still valid.
package validate

import (
	"fmt"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/design"
)

// Severity grades a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
	SeverityWarning  Severity = "warning"
)

// Finding is one problem discovered in the tree.
type Finding struct {
	ComponentID string   `json:"componentId,omitempty"`
	Field       string   `json:"field,omitempty"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	Suggestion  string   `json:"suggestion,omitempty"`
}

// Result is the full validation report for a tree.
type Result struct {
	IsValid  bool      `json:"isValid"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
	Score    float64   `json:"score"`
}

// score deductions per finding severity
const (
	criticalPenalty = 0.3
	errorPenalty    = 0.1
	warningPenalty  = 0.05
)

// namedColors accepted alongside hex notation
var namedColors = map[string]bool{
	"black": true, "white": true, "red": true,
	"green": true, "blue": true, "transparent": true,
}

// Design validates a full design tree with a recursive walk. Validation is
// deterministic: the same tree always yields the same findings and score.
func Design(d *design.Design) Result {
	v := &visitor{ids: map[string]int{}}

	// First pass collects ids so parent references and duplicates can be
	// checked against the whole tree.
	d.Walk(func(c *design.Component) {
		v.ids[c.ID]++
	})

	duplicates := false
	for _, count := range v.ids {
		if count > 1 {
			duplicates = true
			break
		}
	}
	if duplicates {
		// One critical finding for the whole tree, not one per duplicate.
		v.errors = append(v.errors, Finding{
			Field:    "id",
			Severity: SeverityCritical,
			Message:  "duplicate component ids in tree",
		})
	}

	d.Walk(v.checkComponent)

	return v.result()
}

type visitor struct {
	ids      map[string]int
	errors   []Finding
	warnings []Finding
}

func (v *visitor) checkComponent(c *design.Component) {
	if c.ParentID != "" && v.ids[c.ParentID] == 0 {
		v.addError(c.ID, "parentId", fmt.Sprintf("parentId %q references no component in tree", c.ParentID))
	}

	if c.Width <= 0 {
		v.addError(c.ID, "width", fmt.Sprintf("width must be positive, got %v", c.Width))
	}
	if c.Height <= 0 && c.Type != design.TypeSpacer {
		v.addError(c.ID, "height", fmt.Sprintf("height must be positive, got %v", c.Height))
	}

	switch c.Type {
	case design.TypeText:
		if c.Text == "" {
			v.addWarning(c.ID, "text", "text component has no content", "add display text or remove the component")
		}
	case design.TypeButton:
		if c.Text == "" {
			v.addError(c.ID, "text", "button has no label")
		}
	case design.TypeImage:
		if c.ImageURL == "" {
			v.addWarning(c.ID, "imageURL", "image has no URL", "set imageURL or use a placeholder")
		}
	case design.TypeList:
		if len(c.Items) == 0 {
			v.addWarning(c.ID, "items", "list has no items", "seed the list or hide it until data arrives")
		}
	}

	v.checkStyle(c)
}

func (v *visitor) checkStyle(c *design.Component) {
	st := &c.Style

	if st.BackgroundColor != "" && !ValidColor(st.BackgroundColor) {
		v.addError(c.ID, "backgroundColor", fmt.Sprintf("invalid color %q", st.BackgroundColor))
	}
	if st.TextColor != "" && !ValidColor(st.TextColor) {
		v.addError(c.ID, "textColor", fmt.Sprintf("invalid color %q", st.TextColor))
	}
	if st.BorderColor != "" && !ValidColor(st.BorderColor) {
		v.addError(c.ID, "borderColor", fmt.Sprintf("invalid color %q", st.BorderColor))
	}
	if st.Opacity != nil && (*st.Opacity < 0 || *st.Opacity > 1) {
		v.addError(c.ID, "opacity", fmt.Sprintf("opacity must be in [0,1], got %v", *st.Opacity))
	}
	if st.FontSize != nil && *st.FontSize <= 0 {
		v.addError(c.ID, "fontSize", fmt.Sprintf("fontSize must be positive, got %v", *st.FontSize))
	}
}

func (v *visitor) addError(componentID, field, message string) {
	v.errors = append(v.errors, Finding{
		ComponentID: componentID,
		Field:       field,
		Severity:    SeverityError,
		Message:     message,
	})
}

func (v *visitor) addWarning(componentID, field, message, suggestion string) {
	v.warnings = append(v.warnings, Finding{
		ComponentID: componentID,
		Field:       field,
		Severity:    SeverityWarning,
		Message:     message,
		Suggestion:  suggestion,
	})
}

func (v *visitor) result() Result {
	score := 1.0
	valid := true

	for _, f := range v.errors {
		switch f.Severity {
		case SeverityCritical:
			score -= criticalPenalty
		default:
			score -= errorPenalty
		}
		valid = false
	}
	score -= warningPenalty * float64(len(v.warnings))

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	errors := v.errors
	if errors == nil {
		errors = []Finding{}
	}
	warnings := v.warnings
	if warnings == nil {
		warnings = []Finding{}
	}

	return Result{
		IsValid:  valid,
		Errors:   errors,
		Warnings: warnings,
		Score:    score,
	}
}

// ValidColor reports whether a color string is #RGB/#RRGGBB/#RRGGBBAA hex
// or one of the small named set.
func ValidColor(s string) bool {
	if namedColors[s] {
		return true
	}
	if len(s) == 0 || s[0] != '#' {
		return false
	}
	hex := s[1:]
	switch len(hex) {
	case 3, 6, 8:
	default:
		return false
	}
	for _, r := range hex {
		if !isHexDigit(r) {
			return false
		}
	}
	return true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
