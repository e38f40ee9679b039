package validate

import (
	"fmt"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/schema"
)

// Spec validates a decoded spec tree. The rules mirror the design-tree
// validator where the models overlap (colors, opacity, fontSize, duplicate
// ids) and add the referential checks only a spec can express: component
// actionIds must resolve to declared actions, and navigate actions should
// target a declared page.
func Spec(s *schema.Spec) Result {
	v := &specVisitor{
		ids:     map[string]int{},
		actions: map[string]bool{},
		pages:   map[string]bool{},
	}

	for i := range s.Actions {
		v.actions[s.Actions[i].ID] = true
	}
	for i := range s.Pages {
		v.pages[s.Pages[i].ID] = true
	}
	s.Walk(func(c *schema.Component) {
		v.ids[c.ID]++
	})

	for _, count := range v.ids {
		if count > 1 {
			// One critical finding for the whole tree, not one per duplicate.
			v.errors = append(v.errors, Finding{
				Field:    "id",
				Severity: SeverityCritical,
				Message:  "duplicate component ids in tree",
			})
			break
		}
	}

	s.Walk(v.checkComponent)
	v.checkActions(s)

	inner := visitor{errors: v.errors, warnings: v.warnings}
	return inner.result()
}

type specVisitor struct {
	ids     map[string]int
	actions map[string]bool
	pages   map[string]bool

	errors   []Finding
	warnings []Finding
}

func (v *specVisitor) checkComponent(c *schema.Component) {
	for _, actionID := range c.ActionIDs {
		if !v.actions[actionID] {
			v.addError(c.ID, "actionIds", fmt.Sprintf("actionId %q references no declared action", actionID))
		}
	}

	switch c.Type {
	case schema.TypeButton:
		if c.Props.Label == "" {
			v.addWarning(c.ID, "label", "button has no label", "set a label or the renderer substitutes a generic one")
		}
	case schema.TypeImage:
		if c.Props.ImageURL == "" {
			v.addWarning(c.ID, "imageURL", "image has no URL", "set imageURL or the renderer shows a placeholder")
		}
	}

	v.checkStyle(c)
}

func (v *specVisitor) checkStyle(c *schema.Component) {
	st := &c.Props.Style

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

// checkActions flags navigate actions whose target page does not exist.
// The runtime treats that as a no-op, so it grades as a warning.
func (v *specVisitor) checkActions(s *schema.Spec) {
	for i := range s.Actions {
		a := &s.Actions[i]
		if a.Type != schema.ActionNavigate {
			continue
		}
		target, ok := a.StringParam("targetPageId")
		if !ok || target == "" {
			v.addWarning(a.ID, "targetPageId", "navigate action has no target page", "set targetPageId to a page id")
			continue
		}
		if !v.pages[target] {
			v.addWarning(a.ID, "targetPageId", fmt.Sprintf("targetPageId %q references no page", target), "point the action at a declared page")
		}
	}
}

func (v *specVisitor) addError(componentID, field, message string) {
	v.errors = append(v.errors, Finding{
		ComponentID: componentID,
		Field:       field,
		Severity:    SeverityError,
		Message:     message,
	})
}

func (v *specVisitor) addWarning(componentID, field, message, suggestion string) {
	v.warnings = append(v.warnings, Finding{
		ComponentID: componentID,
		Field:       field,
		Severity:    SeverityWarning,
		Message:     message,
		Suggestion:  suggestion,
	})
}
