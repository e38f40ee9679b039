package repair

import (
	"time"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/schema"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/validate"
)

// Spec runs a single top-down pass over a copy of a decoded spec, fixing
// the error classes the spec validator detects: dangling actionIds are
// dropped, missing button labels are filled, and out-of-range style fields
// are clamped. Duplicate ids stay out of reach here too.
func Spec(s *schema.Spec) *schema.Spec {
	out := cloneSpec(s)

	actions := map[string]bool{}
	for i := range out.Actions {
		actions[out.Actions[i].ID] = true
	}

	out.Walk(func(c *schema.Component) {
		repairSpecComponent(c, actions)
	})
	out.UpdatedAt = time.Now()
	return out
}

// cloneSpec deep-copies through the wire codec. Encoding a decoded spec
// cannot fail, but a hand-built one could hold an unmarshalable value;
// the pass then falls back to repairing the input in place.
func cloneSpec(s *schema.Spec) *schema.Spec {
	raw, err := schema.Encode(s)
	if err != nil {
		return s
	}
	out, err := schema.Decode(raw)
	if err != nil {
		return s
	}
	return out
}

func repairSpecComponent(c *schema.Component, actions map[string]bool) {
	kept := c.ActionIDs[:0]
	for _, actionID := range c.ActionIDs {
		if actions[actionID] {
			kept = append(kept, actionID)
		}
	}
	c.ActionIDs = kept

	if c.Type == schema.TypeButton && c.Props.Label == "" {
		c.Props.Label = FallbackButtonText
	}

	st := &c.Props.Style
	if st.BackgroundColor != "" && !validate.ValidColor(st.BackgroundColor) {
		st.BackgroundColor = FallbackBackground
	}
	if st.TextColor != "" && !validate.ValidColor(st.TextColor) {
		st.TextColor = FallbackTextColor
	}
	if st.BorderColor != "" && !validate.ValidColor(st.BorderColor) {
		st.BorderColor = ""
	}
	if st.Opacity != nil && (*st.Opacity < 0 || *st.Opacity > 1) {
		o := FallbackOpacity
		st.Opacity = &o
	}
	if st.FontSize != nil && *st.FontSize <= 0 {
		f := FallbackFontSize
		st.FontSize = &f
	}
}
