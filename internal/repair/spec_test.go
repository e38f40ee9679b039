package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/schema"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/validate"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/value"
)

func brokenSpec() *schema.Spec {
	opacity := 3.0
	fontSize := -2.0
	return &schema.Spec{
		ID:   "spec_broken",
		Name: "Broken",
		Pages: []schema.Page{{
			ID:     "main",
			Layout: schema.LayoutScroll,
			Components: []schema.Component{
				{ID: "c1", Type: schema.TypeLabel, Props: schema.Props{
					Text:  "Hi",
					Style: schema.Style{BackgroundColor: "notacolor", Opacity: &opacity},
				}},
				{ID: "c2", Type: schema.TypeButton, ActionIDs: []string{"a1", "a_gone"}, Props: schema.Props{
					Style: schema.Style{TextColor: "grayish", FontSize: &fontSize},
				}},
			},
		}},
		Actions: []schema.Action{{
			ID:     "a1",
			Type:   schema.ActionSetState,
			Params: map[string]value.Value{"key": value.String("count"), "value": value.Number(1)},
		}},
	}
}

func TestSpecRepairFixesDetectedClasses(t *testing.T) {
	repaired := Spec(brokenSpec())

	label := repaired.Pages[0].Components[0]
	assert.Equal(t, FallbackBackground, label.Props.Style.BackgroundColor)
	require.NotNil(t, label.Props.Style.Opacity)
	assert.Equal(t, FallbackOpacity, *label.Props.Style.Opacity)

	button := repaired.Pages[0].Components[1]
	assert.Equal(t, []string{"a1"}, button.ActionIDs, "dangling actionIds are dropped")
	assert.Equal(t, FallbackButtonText, button.Props.Label)
	assert.Equal(t, FallbackTextColor, button.Props.Style.TextColor)
	require.NotNil(t, button.Props.Style.FontSize)
	assert.Equal(t, FallbackFontSize, *button.Props.Style.FontSize)
}

func TestSpecRepairedValidatesClean(t *testing.T) {
	repaired := Spec(brokenSpec())
	result := validate.Spec(repaired)

	assert.True(t, result.IsValid, "errors: %+v", result.Errors)
	assert.Empty(t, result.Errors)
}

func TestSpecRepairDoesNotMutateInput(t *testing.T) {
	s := brokenSpec()
	_ = Spec(s)

	assert.Equal(t, "notacolor", s.Pages[0].Components[0].Props.Style.BackgroundColor)
	assert.Equal(t, []string{"a1", "a_gone"}, s.Pages[0].Components[1].ActionIDs)
}

func TestSpecRepairIdempotent(t *testing.T) {
	once := Spec(brokenSpec())
	twice := Spec(once)

	assert.Equal(t, once.Pages, twice.Pages)
	assert.Equal(t, once.Actions, twice.Actions)
}
