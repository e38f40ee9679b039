// Package design holds the legacy tree-based AppDesign model and its two
// compilers: design→Spec (canonical DSL) and design→markup (a single
// self-contained HTML document). Both are purely structural recursive
// tree-walks with deterministic output ordering.
package design

import (
	"encoding/json"
	"fmt"
	"time"
)

// ComponentType enumerates the legacy design node types.
type ComponentType string

const (
	TypeContainer ComponentType = "container"
	TypeText      ComponentType = "text"
	TypeButton    ComponentType = "button"
	TypeImage     ComponentType = "image"
	TypeInput     ComponentType = "input"
	TypeList      ComponentType = "list"
	TypeCard      ComponentType = "card"
	TypeDivider   ComponentType = "divider"
	TypeSpacer    ComponentType = "spacer"
)

// Design is the root of a legacy design tree.
type Design struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Screens     []Screen  `json:"screens"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Screen is one screen of the design.
type Screen struct {
	ID         string      `json:"id"`
	Title      string      `json:"title,omitempty"`
	Components []Component `json:"components"`
}

// Component is one node of the design tree. ParentID, when tracked, must
// reference an existing id in the same tree.
type Component struct {
	ID       string        `json:"id"`
	ParentID string        `json:"parentId,omitempty"`
	Type     ComponentType `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL string        `json:"imageURL,omitempty"`
	Items    []string      `json:"items,omitempty"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Style    Style         `json:"style"`
	Children []Component   `json:"children,omitempty"`
}

// Style holds the visual attributes of a design node. FontWeight is either
// a named weight or a numeric string; it is normalized at compile time.
type Style struct {
	BackgroundColor string   `json:"backgroundColor,omitempty"`
	TextColor       string   `json:"textColor,omitempty"`
	BorderColor     string   `json:"borderColor,omitempty"`
	Opacity         *float64 `json:"opacity,omitempty"`
	FontSize        *float64 `json:"fontSize,omitempty"`
	FontWeight      string   `json:"fontWeight,omitempty"`
	CornerRadius    *float64 `json:"cornerRadius,omitempty"`
	Padding         *float64 `json:"padding,omitempty"`
	Spacing         *float64 `json:"spacing,omitempty"`
}

// Decode parses a design tree from JSON.
func Decode(data []byte) (*Design, error) {
	var d Design
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("design: decode: %w", err)
	}
	if d.Screens == nil {
		d.Screens = []Screen{}
	}
	return &d, nil
}

// Clone deep-copies the design so passes can mutate a copy, never the
// original.
func (d *Design) Clone() *Design {
	out := *d
	out.Screens = make([]Screen, len(d.Screens))
	for i, screen := range d.Screens {
		out.Screens[i] = screen
		out.Screens[i].Components = cloneComponents(screen.Components)
	}
	return &out
}

func cloneComponents(cs []Component) []Component {
	if cs == nil {
		return nil
	}
	out := make([]Component, len(cs))
	for i, c := range cs {
		out[i] = c
		if c.Items != nil {
			out[i].Items = append([]string(nil), c.Items...)
		}
		if c.Style.Opacity != nil {
			o := *c.Style.Opacity
			out[i].Style.Opacity = &o
		}
		if c.Style.FontSize != nil {
			f := *c.Style.FontSize
			out[i].Style.FontSize = &f
		}
		if c.Style.CornerRadius != nil {
			r := *c.Style.CornerRadius
			out[i].Style.CornerRadius = &r
		}
		if c.Style.Padding != nil {
			p := *c.Style.Padding
			out[i].Style.Padding = &p
		}
		if c.Style.Spacing != nil {
			s := *c.Style.Spacing
			out[i].Style.Spacing = &s
		}
		out[i].Children = cloneComponents(c.Children)
	}
	return out
}

// Walk visits every component in the design depth-first, children in
// original order.
func (d *Design) Walk(visit func(*Component)) {
	for i := range d.Screens {
		walkComponents(d.Screens[i].Components, visit)
	}
}

func walkComponents(cs []Component, visit func(*Component)) {
	for i := range cs {
		visit(&cs[i])
		walkComponents(cs[i].Children, visit)
	}
}
