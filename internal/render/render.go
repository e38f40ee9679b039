// Package render maps DSL components to a visual node tree against a
// runtime. Rendering is a pure function of (component, runtime state); the
// renderer keeps no state of its own and re-runs whenever an observable
// runtime field changes. Malformed style values never propagate: every
// numeric field is sanitized to a documented fallback.
package render

import (
	"math"
	"net/url"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/runtime"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/schema"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/value"
)

// Numeric style fallbacks applied at render time.
const (
	FallbackFontSize     = 16.0
	FallbackPadding      = 12.0
	FallbackSpacing      = 8.0
	FallbackCornerRadius = 14.0
	FallbackFontWeight   = 400.0
)

// Image load states surfaced to the client.
const (
	ImageLoading     = "loading"
	ImagePlaceholder = "placeholder"
)

// Style is the fully resolved, always-finite style of a node.
type Style struct {
	FontSize     float64 `json:"fontSize"`
	FontWeight   float64 `json:"fontWeight"`
	CornerRadius float64 `json:"cornerRadius"`
	Padding      float64 `json:"padding"`
	Spacing      float64 `json:"spacing"`
	BorderWidth  float64 `json:"borderWidth"`
	Opacity      float64 `json:"opacity"`

	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`
}

// Node is one element of the rendered tree.
type Node struct {
	Kind        string       `json:"kind"`
	ComponentID string       `json:"componentId,omitempty"`
	Text        string       `json:"text,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Value       *value.Value `json:"value,omitempty"`
	BindingKey  string       `json:"bindingKey,omitempty"`
	ActionIDs   []string     `json:"actionIds,omitempty"`
	ImageURL    string       `json:"imageURL,omitempty"`
	ImageState  string       `json:"imageState,omitempty"`
	Style       Style        `json:"style"`
	Children    []Node       `json:"children,omitempty"`
}

// Page renders the runtime's current page. An unknown current page id
// degrades to an empty placeholder, never a crash.
func Page(rt *runtime.Runtime) Node {
	page, ok := rt.CurrentPage()
	if !ok {
		return Node{Kind: "placeholder", Text: "Nothing to show"}
	}

	children := make([]Node, 0, len(page.Components))
	for i := range page.Components {
		children = append(children, Component(&page.Components[i], rt))
	}

	return Node{
		Kind:        "page",
		ComponentID: page.ID,
		Text:        page.Title,
		Children:    children,
	}
}

// Component renders one component and its children.
func Component(c *schema.Component, rt *runtime.Runtime) Node {
	node := Node{
		Kind:        string(c.Type),
		ComponentID: c.ID,
		Style:       sanitizeStyle(&c.Props.Style),
	}

	switch c.Type {
	case schema.TypeContainer:
		node.Children = renderChildren(c, rt)

	case schema.TypeLabel, schema.TypeTimerDisplay:
		node.Text = firstNonEmpty(c.Props.Text, c.Props.Label, "Label")

	case schema.TypeButton:
		node.Text = firstNonEmpty(c.Props.Label, c.Props.Text, "Button")
		node.ActionIDs = c.ActionIDs

	case schema.TypeToggle:
		key := bindingKey(c)
		on, _ := rt.ReadBinding(key, value.Bool(false)).AsBool()
		v := value.Bool(on)
		node.Value = &v
		node.BindingKey = key

	case schema.TypeImage:
		node.ImageURL = c.Props.ImageURL
		node.ImageState = imageState(c.Props.ImageURL)

	case schema.TypeList:
		for _, item := range c.Props.Items {
			node.Children = append(node.Children, Node{Kind: "row", Text: item})
		}

	case schema.TypeInput:
		key := bindingKey(c)
		text, _ := rt.ReadBinding(key, value.String("")).AsString()
		v := value.String(text)
		node.Value = &v
		node.BindingKey = key
		node.Placeholder = c.Props.Placeholder

	case schema.TypeQuizQuestion:
		node.Text = c.Props.Text
		for _, option := range c.Props.Options {
			// Every option dispatches the same actionIds; there is no
			// per-option routing in the DSL.
			node.Children = append(node.Children, Node{
				Kind:      "option",
				Text:      option,
				ActionIDs: c.ActionIDs,
			})
		}

	case schema.TypeSpacer:
		// fixed-height empty block

	default:
		node.Kind = "placeholder"
		node.Text = firstNonEmpty(c.Props.Text, c.Props.Label, "")
	}

	return node
}

func renderChildren(c *schema.Component, rt *runtime.Runtime) []Node {
	if len(c.Children) == 0 {
		return nil
	}
	out := make([]Node, 0, len(c.Children))
	for i := range c.Children {
		out = append(out, Component(&c.Children[i], rt))
	}
	return out
}

// bindingKey resolves the state key a component reads/writes: the declared
// binding, or the component id when no binding is set.
func bindingKey(c *schema.Component) string {
	if c.Binding != "" {
		return c.Binding
	}
	return c.ID
}

func imageState(raw string) string {
	if raw == "" {
		return ImagePlaceholder
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ImagePlaceholder
	}
	return ImageLoading
}

// sanitizeStyle resolves every numeric field to a finite value, replacing
// absent, NaN, infinite, or non-positive sizes with the fallbacks.
func sanitizeStyle(st *schema.Style) Style {
	return Style{
		FontSize:     sanitize(st.FontSize, FallbackFontSize, true),
		FontWeight:   sanitize(st.FontWeight, FallbackFontWeight, true),
		CornerRadius: sanitize(st.CornerRadius, FallbackCornerRadius, false),
		Padding:      sanitize(st.Padding, FallbackPadding, false),
		Spacing:      sanitize(st.Spacing, FallbackSpacing, false),
		BorderWidth:  sanitize(st.BorderWidth, 0, false),
		Opacity:      sanitizeOpacity(st.Opacity),

		BackgroundColor: st.BackgroundColor,
		TextColor:       st.TextColor,
		BorderColor:     st.BorderColor,
	}
}

func sanitize(v *float64, fallback float64, requirePositive bool) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return fallback
	}
	if requirePositive && *v <= 0 {
		return fallback
	}
	if *v < 0 {
		return fallback
	}
	return *v
}

func sanitizeOpacity(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 || *v > 1 {
		return 1
	}
	return *v
}

func firstNonEmpty(candidates ...string) string {
	for _, s := range candidates {
		if s != "" {
			return s
		}
	}
	return ""
}
