// Package repair applies deterministic fixups for the error classes the
// validator detects. The pass is best-effort, not a fixpoint: cross-node
// problems like duplicate ids are out of its reach, and re-validation is
// the caller's responsibility.
package repair

import (
	"time"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/design"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/validate"
)

// Fallback constants applied by the pass.
const (
	FallbackWidth      = 200.0
	FallbackHeight     = 100.0
	FallbackBackground = "#FFFFFF"
	FallbackTextColor  = "#0F172A"
	FallbackFontSize   = 16.0
	FallbackOpacity    = 1.0
	FallbackButtonText = "Tap"
)

// Design runs a single top-down pass over a copy of the tree, clamping
// out-of-range fields to safe defaults. The input is never mutated. Fixups
// are independent across nodes, so recursion order does not matter; the
// pass keeps the original child order anyway.
func Design(d *design.Design) *design.Design {
	out := d.Clone()
	out.Walk(repairComponent)
	out.UpdatedAt = time.Now()
	return out
}

func repairComponent(c *design.Component) {
	if c.Width <= 0 {
		c.Width = FallbackWidth
	}
	if c.Height <= 0 && c.Type != design.TypeSpacer {
		c.Height = FallbackHeight
	}

	if c.Type == design.TypeButton && c.Text == "" {
		c.Text = FallbackButtonText
	}

	st := &c.Style
	if st.BackgroundColor != "" && !validate.ValidColor(st.BackgroundColor) {
		st.BackgroundColor = FallbackBackground
	}
	if st.TextColor != "" && !validate.ValidColor(st.TextColor) {
		st.TextColor = FallbackTextColor
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
