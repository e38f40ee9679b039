package design

import (
	"strings"
	"testing"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/schema"
)

func sampleDesign() *Design {
	fontSize := 18.0
	return &Design{
		ID:       "d1",
		Name:     "Daily Quiz",
		Category: "learning",
		Screens: []Screen{
			{
				ID:    "s1",
				Title: "Home",
				Components: []Component{
					{ID: "c1", Type: TypeCard, Width: 320, Height: 200, Children: []Component{
						{ID: "c2", ParentID: "c1", Type: TypeText, Text: "Welcome", Width: 300, Height: 40,
							Style: Style{FontSize: &fontSize, FontWeight: "semibold"}},
						{ID: "c3", ParentID: "c1", Type: TypeButton, Text: "Start", Width: 120, Height: 44},
					}},
					{ID: "c4", Type: TypeDivider, Width: 320, Height: 1},
					{ID: "c5", Type: TypeList, Items: []string{"History", "Math"}, Width: 320, Height: 100},
				},
			},
		},
	}
}

func TestCompileTypeMapping(t *testing.T) {
	spec := Compile(sampleDesign())

	if len(spec.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(spec.Pages))
	}
	page := spec.Pages[0]
	if page.Layout != schema.LayoutScroll {
		t.Errorf("compiled pages default to scroll, got %s", page.Layout)
	}

	card := page.Components[0]
	if card.Type != schema.TypeContainer {
		t.Errorf("card should compile to container, got %s", card.Type)
	}
	if card.Children[0].Type != schema.TypeLabel {
		t.Errorf("text should compile to label, got %s", card.Children[0].Type)
	}
	if page.Components[1].Type != schema.TypeSpacer {
		t.Errorf("divider should compile to spacer, got %s", page.Components[1].Type)
	}
	if page.Components[2].Type != schema.TypeList {
		t.Errorf("list should stay list, got %s", page.Components[2].Type)
	}
}

func TestCompileSynthesizesButtonAction(t *testing.T) {
	spec := Compile(sampleDesign())

	button := spec.Pages[0].Components[0].Children[1]
	if len(button.ActionIDs) != 1 {
		t.Fatalf("button should get exactly one synthesized action, got %d", len(button.ActionIDs))
	}

	action, ok := spec.FindAction(button.ActionIDs[0])
	if !ok {
		t.Fatal("synthesized action must exist in spec.actions")
	}
	if action.Type != schema.ActionShowAlert {
		t.Errorf("synthesized action should be SHOW_ALERT, got %s", action.Type)
	}
	title, _ := action.StringParam("title")
	if title != "Daily Quiz" {
		t.Errorf("alert title should be the app name, got %q", title)
	}
}

func TestCompilePreservesOrderAndIDs(t *testing.T) {
	spec := Compile(sampleDesign())

	page := spec.Pages[0]
	gotIDs := []string{page.Components[0].ID, page.Components[1].ID, page.Components[2].ID}
	wantIDs := []string{"c1", "c4", "c5"}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Errorf("component order/ids changed: got %v, want %v", gotIDs, wantIDs)
		}
	}
}

func TestCompileNormalizesCategory(t *testing.T) {
	tests := []struct {
		category string
		want     schema.Category
	}{
		{"learning", schema.CategoryLearning},
		{"Wellness", schema.CategoryWellness},
		{"education", schema.CategoryUtility},
		{"", schema.CategoryUtility},
	}

	for _, tt := range tests {
		d := sampleDesign()
		d.Category = tt.category
		if got := Compile(d).Category; got != tt.want {
			t.Errorf("Compile category %q = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestCompileFontWeight(t *testing.T) {
	spec := Compile(sampleDesign())

	label := spec.Pages[0].Components[0].Children[0]
	if label.Props.Style.FontWeight == nil || *label.Props.Style.FontWeight != 600 {
		t.Errorf("semibold should normalize to 600, got %v", label.Props.Style.FontWeight)
	}
}

func TestNormalizeFontWeight(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"ultralight", 100},
		{"thin", 200},
		{"light", 300},
		{"regular", 400},
		{"medium", 500},
		{"semibold", 600},
		{"bold", 700},
		{"heavy", 800},
		{"300", 300},
		{"850", 400},
		{"chunky", 400},
		{"", 400},
	}

	for _, tt := range tests {
		if got := NormalizeFontWeight(tt.raw); got != tt.want {
			t.Errorf("NormalizeFontWeight(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := sampleDesign()
	copied := d.Clone()

	copied.Screens[0].Components[0].Children[0].Text = "Changed"
	*copied.Screens[0].Components[0].Children[0].Style.FontSize = 99

	if d.Screens[0].Components[0].Children[0].Text != "Welcome" {
		t.Error("clone should not share component structs")
	}
	if *d.Screens[0].Components[0].Children[0].Style.FontSize != 18 {
		t.Error("clone should not share style pointers")
	}
}

func TestWalkVisitsAllNodes(t *testing.T) {
	var visited []string
	sampleDesign().Walk(func(c *Component) {
		visited = append(visited, c.ID)
	})

	want := "c1 c2 c3 c4 c5"
	if got := strings.Join(visited, " "); got != want {
		t.Errorf("walk order = %q, want %q", got, want)
	}
}
