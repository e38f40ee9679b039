package generate

import (
	"testing"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/design"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/repair"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/schema"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/validate"
)

func TestFallbackKeywordRouting(t *testing.T) {
	cases := []struct {
		prompt string
		name   string
	}{
		{"a counter for my push-ups", "Counter"},
		{"kitchen timer with a loud alarm", "Timer"},
		{"trivia quiz about capitals", "Quiz"},
		{"simple todo list", "Notes"},
		{"something unclassifiable", "My App"},
	}
	for _, tc := range cases {
		d := Fallback(tc.prompt)
		if d.Name != tc.name {
			t.Errorf("Fallback(%q).Name = %q, want %q", tc.prompt, d.Name, tc.name)
		}
		if len(d.Screens) != 1 {
			t.Errorf("Fallback(%q) screens = %d, want 1", tc.prompt, len(d.Screens))
		}
	}
}

func TestFallbackCategoriesAreInEnum(t *testing.T) {
	enum := map[schema.Category]bool{
		schema.CategoryUtility:       true,
		schema.CategoryLearning:      true,
		schema.CategoryProductivity:  true,
		schema.CategoryWellness:      true,
		schema.CategoryEntertainment: true,
		schema.CategoryFinance:       true,
	}
	cases := []struct {
		prompt string
		want   schema.Category
	}{
		{"a counter for my push-ups", schema.CategoryUtility},
		{"trivia quiz about capitals", schema.CategoryLearning},
		{"simple todo list", schema.CategoryProductivity},
	}
	for _, tc := range cases {
		spec := design.Compile(Fallback(tc.prompt))
		if spec.Category != tc.want {
			t.Errorf("Fallback(%q) compiled category = %q, want %q", tc.prompt, spec.Category, tc.want)
		}
		if !enum[spec.Category] {
			t.Errorf("Fallback(%q) compiled category %q is outside the enum", tc.prompt, spec.Category)
		}
	}
}

func TestFallbackAlwaysHasButton(t *testing.T) {
	for _, prompt := range []string{"counter", "timer", "quiz", "notes", "whatever"} {
		d := Fallback(prompt)
		found := false
		d.Walk(func(c *design.Component) {
			if c.Type == design.TypeButton {
				found = true
			}
		})
		if !found {
			t.Errorf("Fallback(%q) produced no button", prompt)
		}
	}
}

func TestFallbackValidatesCleanAfterRepair(t *testing.T) {
	for _, prompt := range []string{"counter", "timer", "quiz", "notes", "whatever"} {
		fixed := repair.Design(Fallback(prompt))
		res := validate.Design(fixed)
		if !res.IsValid {
			t.Errorf("Fallback(%q) invalid after repair: %+v %+v", prompt, res.Errors, res.Warnings)
		}
	}
}

func TestFallbackIDsAreUnique(t *testing.T) {
	d := Fallback("timer")
	seen := map[string]bool{}
	d.Walk(func(c *design.Component) {
		if seen[c.ID] {
			t.Errorf("duplicate id %q", c.ID)
		}
		seen[c.ID] = true
	})
}
