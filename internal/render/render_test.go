package render

import (
	"math"
	"testing"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/runtime"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/schema"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/value"
)

func f(v float64) *float64 { return &v }

func demoSpec() *schema.Spec {
	return &schema.Spec{
		ID:   "spec_demo",
		Name: "Demo",
		Pages: []schema.Page{
			{
				ID:    "main",
				Title: "Main",
				Components: []schema.Component{
					{ID: "c1", Type: schema.TypeLabel, Props: schema.Props{Text: "Hello"}},
					{ID: "c2", Type: schema.TypeButton, Props: schema.Props{Label: "Go"}, ActionIDs: []string{"a1"}},
					{ID: "c3", Type: schema.TypeToggle, Binding: "dark"},
					{ID: "c4", Type: schema.TypeInput, Props: schema.Props{Placeholder: "Name"}},
				},
			},
		},
		InitialState: map[string]value.Value{"dark": value.Bool(true)},
		Actions:      []schema.Action{{ID: "a1", Type: schema.ActionNavigate}},
	}
}

func TestPageRendersComponentsInOrder(t *testing.T) {
	rt := runtime.New(demoSpec())
	page := Page(rt)

	if page.Kind != "page" || page.ComponentID != "main" {
		t.Fatalf("unexpected page node: %+v", page)
	}
	if len(page.Children) != 4 {
		t.Fatalf("expected 4 children, got %d", len(page.Children))
	}
	kinds := []string{"label", "button", "toggle", "input"}
	for i, want := range kinds {
		if page.Children[i].Kind != want {
			t.Errorf("child %d: kind = %q, want %q", i, page.Children[i].Kind, want)
		}
	}
}

func TestUnknownPageDegradesToPlaceholder(t *testing.T) {
	s := demoSpec()
	s.Pages = nil
	empty := runtime.New(s)

	node := Page(empty)
	if node.Kind != "placeholder" {
		t.Fatalf("kind = %q, want placeholder", node.Kind)
	}
}

func TestLabelFallbackText(t *testing.T) {
	rt := runtime.New(demoSpec())

	c := schema.Component{ID: "x", Type: schema.TypeLabel}
	if got := Component(&c, rt); got.Text != "Label" {
		t.Errorf("empty label text = %q, want Label", got.Text)
	}

	b := schema.Component{ID: "y", Type: schema.TypeButton}
	if got := Component(&b, rt); got.Text != "Button" {
		t.Errorf("empty button text = %q, want Button", got.Text)
	}
}

func TestButtonCarriesActionIDs(t *testing.T) {
	rt := runtime.New(demoSpec())
	page := Page(rt)

	button := page.Children[1]
	if len(button.ActionIDs) != 1 || button.ActionIDs[0] != "a1" {
		t.Fatalf("actionIds = %v, want [a1]", button.ActionIDs)
	}
}

func TestToggleReflectsState(t *testing.T) {
	rt := runtime.New(demoSpec())
	page := Page(rt)

	toggle := page.Children[2]
	if toggle.BindingKey != "dark" {
		t.Fatalf("bindingKey = %q, want dark", toggle.BindingKey)
	}
	on, _ := toggle.Value.AsBool()
	if !on {
		t.Error("toggle should reflect the seeded true value")
	}

	rt.Toggle("dark")
	toggle = Page(rt).Children[2]
	on, _ = toggle.Value.AsBool()
	if on {
		t.Error("toggle should reflect the flipped value")
	}
}

func TestToggleDefaultsToBindingOffByComponentID(t *testing.T) {
	rt := runtime.New(demoSpec())
	c := schema.Component{ID: "c9", Type: schema.TypeToggle}

	node := Component(&c, rt)
	if node.BindingKey != "c9" {
		t.Errorf("bindingKey = %q, want component id", node.BindingKey)
	}
	on, _ := node.Value.AsBool()
	if on {
		t.Error("unbound toggle should default to off")
	}
}

func TestInputReflectsStateAsString(t *testing.T) {
	rt := runtime.New(demoSpec())
	rt.WriteBinding("c4", value.Number(42))

	input := Page(rt).Children[3]
	text, _ := input.Value.AsString()
	if text != "42" {
		t.Errorf("input value = %q, want 42", text)
	}
	if input.Placeholder != "Name" {
		t.Errorf("placeholder = %q, want Name", input.Placeholder)
	}
}

func TestImageStates(t *testing.T) {
	rt := runtime.New(demoSpec())

	cases := []struct {
		url  string
		want string
	}{
		{"https://example.com/a.png", ImageLoading},
		{"", ImagePlaceholder},
		{"not a url", ImagePlaceholder},
	}
	for _, tc := range cases {
		c := schema.Component{ID: "img", Type: schema.TypeImage, Props: schema.Props{ImageURL: tc.url}}
		if got := Component(&c, rt); got.ImageState != tc.want {
			t.Errorf("imageState(%q) = %q, want %q", tc.url, got.ImageState, tc.want)
		}
	}
}

func TestListRendersRows(t *testing.T) {
	rt := runtime.New(demoSpec())

	c := schema.Component{ID: "l1", Type: schema.TypeList, Props: schema.Props{Items: []string{"a", "b"}}}
	node := Component(&c, rt)
	if len(node.Children) != 2 || node.Children[0].Text != "a" {
		t.Fatalf("unexpected rows: %+v", node.Children)
	}

	empty := schema.Component{ID: "l2", Type: schema.TypeList}
	if got := Component(&empty, rt); len(got.Children) != 0 {
		t.Errorf("empty list should render no rows, got %d", len(got.Children))
	}
}

func TestQuizOptionsShareActionIDs(t *testing.T) {
	rt := runtime.New(demoSpec())

	c := schema.Component{
		ID:        "q1",
		Type:      schema.TypeQuizQuestion,
		Props:     schema.Props{Text: "2+2?", Options: []string{"3", "4"}},
		ActionIDs: []string{"a1"},
	}
	node := Component(&c, rt)
	if node.Text != "2+2?" {
		t.Errorf("prompt = %q", node.Text)
	}
	if len(node.Children) != 2 {
		t.Fatalf("options = %d, want 2", len(node.Children))
	}
	for _, opt := range node.Children {
		if len(opt.ActionIDs) != 1 || opt.ActionIDs[0] != "a1" {
			t.Errorf("option %q actionIds = %v, want [a1]", opt.Text, opt.ActionIDs)
		}
	}
}

func TestStyleSanitization(t *testing.T) {
	rt := runtime.New(demoSpec())

	c := schema.Component{
		ID:   "s1",
		Type: schema.TypeLabel,
		Props: schema.Props{
			Text: "x",
			Style: schema.Style{
				FontSize:     f(math.NaN()),
				Padding:      f(math.Inf(1)),
				Spacing:      f(-4),
				CornerRadius: nil,
				Opacity:      f(3),
			},
		},
	}
	st := Component(&c, rt).Style
	if st.FontSize != FallbackFontSize {
		t.Errorf("fontSize = %v, want %v", st.FontSize, FallbackFontSize)
	}
	if st.Padding != FallbackPadding {
		t.Errorf("padding = %v, want %v", st.Padding, FallbackPadding)
	}
	if st.Spacing != FallbackSpacing {
		t.Errorf("spacing = %v, want %v", st.Spacing, FallbackSpacing)
	}
	if st.CornerRadius != FallbackCornerRadius {
		t.Errorf("cornerRadius = %v, want %v", st.CornerRadius, FallbackCornerRadius)
	}
	if st.Opacity != 1 {
		t.Errorf("opacity = %v, want 1", st.Opacity)
	}
}

func TestValidStylePassesThrough(t *testing.T) {
	rt := runtime.New(demoSpec())

	c := schema.Component{
		ID:   "s2",
		Type: schema.TypeLabel,
		Props: schema.Props{
			Text: "x",
			Style: schema.Style{
				FontSize:        f(22),
				Padding:         f(0),
				TextColor:       "#0F172A",
				BackgroundColor: "#FFFFFF",
			},
		},
	}
	st := Component(&c, rt).Style
	if st.FontSize != 22 {
		t.Errorf("fontSize = %v, want 22", st.FontSize)
	}
	if st.Padding != 0 {
		t.Errorf("padding = %v, want 0", st.Padding)
	}
	if st.TextColor != "#0F172A" || st.BackgroundColor != "#FFFFFF" {
		t.Errorf("colors not preserved: %+v", st)
	}
}

func TestContainerRendersNestedChildren(t *testing.T) {
	rt := runtime.New(demoSpec())

	c := schema.Component{
		ID:   "box",
		Type: schema.TypeContainer,
		Children: []schema.Component{
			{ID: "inner", Type: schema.TypeLabel, Props: schema.Props{Text: "deep"}},
		},
	}
	node := Component(&c, rt)
	if len(node.Children) != 1 || node.Children[0].Text != "deep" {
		t.Fatalf("unexpected children: %+v", node.Children)
	}
}
