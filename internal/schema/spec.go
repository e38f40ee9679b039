// Package schema defines the MiniApp DSL wire format: the immutable Spec
// tree of pages, components, bindings, and actions, with the lenient
// decode rules the generation pipeline depends on.
package schema

import (
	"strings"
	"time"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/value"
)

// Category classifies a mini-app for the marketplace.
type Category string

const (
	CategoryUtility       Category = "utility"
	CategoryLearning      Category = "learning"
	CategoryProductivity  Category = "productivity"
	CategoryWellness      Category = "wellness"
	CategoryEntertainment Category = "entertainment"
	CategoryFinance       Category = "finance"
)

// ParseCategory normalizes a category string (case-fold, trim) against the
// enum. Anything unknown, including empty, resolves to utility.
func ParseCategory(raw string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case CategoryUtility:
		return CategoryUtility
	case CategoryLearning:
		return CategoryLearning
	case CategoryProductivity:
		return CategoryProductivity
	case CategoryWellness:
		return CategoryWellness
	case CategoryEntertainment:
		return CategoryEntertainment
	case CategoryFinance:
		return CategoryFinance
	}
	return CategoryUtility
}

// Capability is a declared hardware/OS feature a mini-app may request.
// Execution is delegated outside this engine; the runtime only stubs them.
type Capability string

const (
	CapabilityFlashlight         Capability = "FLASHLIGHT"
	CapabilityTimer              Capability = "TIMER"
	CapabilityLocalNotifications Capability = "LOCAL_NOTIFICATIONS"
	CapabilityHaptics            Capability = "HAPTICS"
)

// ActionType enumerates the fixed action vocabulary.
type ActionType string

const (
	ActionNavigate         ActionType = "NAVIGATE"
	ActionShowAlert        ActionType = "SHOW_ALERT"
	ActionSetState         ActionType = "SET_STATE"
	ActionToggleFlashlight ActionType = "TOGGLE_FLASHLIGHT"
	ActionStartTimer       ActionType = "START_TIMER"
)

// Layout controls how a page arranges its top-level components.
type Layout string

const (
	LayoutScroll Layout = "scroll"
	LayoutCenter Layout = "center"
	LayoutGrid   Layout = "grid"
)

// ComponentType enumerates the renderable node types.
type ComponentType string

const (
	TypeContainer    ComponentType = "container"
	TypeLabel        ComponentType = "label"
	TypeButton       ComponentType = "button"
	TypeToggle       ComponentType = "toggle"
	TypeImage        ComponentType = "image"
	TypeTimerDisplay ComponentType = "timerDisplay"
	TypeList         ComponentType = "list"
	TypeInput        ComponentType = "input"
	TypeQuizQuestion ComponentType = "quizQuestion"
	TypeSpacer       ComponentType = "spacer"
)

// Spec is the canonical, immutable description of a mini-app.
type Spec struct {
	ID           string                 `json:"id"`
	OwnerID      string                 `json:"ownerId,omitempty"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description,omitempty"`
	Category     Category               `json:"category"`
	Version      int                    `json:"version"`
	Pages        []Page                 `json:"pages"`
	Capabilities []Capability           `json:"capabilities"`
	InitialState map[string]value.Value `json:"initialState"`
	Actions      []Action               `json:"actions"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// Page is one screen of a mini-app.
type Page struct {
	ID         string      `json:"id"`
	Title      string      `json:"title,omitempty"`
	Layout     Layout      `json:"layout"`
	Components []Component `json:"components"`
}

// Component is one node of the page tree. Children are only meaningful for
// container-like types. The tree has no cycles: it is built exclusively by
// decoding or compiling, never by reference insertion.
type Component struct {
	ID        string        `json:"id"`
	Type      ComponentType `json:"type"`
	Props     Props         `json:"props"`
	Binding   string        `json:"binding,omitempty"`
	ActionIDs []string      `json:"actionIds"`
	Children  []Component   `json:"children"`
}

// Props carries the display content of a component.
type Props struct {
	Text        string       `json:"text,omitempty"`
	Label       string       `json:"label,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	ImageURL    string       `json:"imageURL,omitempty"`
	Items       []string     `json:"items,omitempty"`
	Options     []string     `json:"options,omitempty"`
	Value       *value.Value `json:"value,omitempty"`
	Style       Style        `json:"style,omitempty"`
	LayoutHint  string       `json:"layoutHint,omitempty"`
}

// Style holds the visual attributes of a component. Numeric fields are
// pointers so absence is distinguishable from zero; malformed inputs decode
// to absent and pick up the documented fallbacks at render time.
type Style struct {
	FontSize     *float64 `json:"fontSize,omitempty"`
	FontWeight   *float64 `json:"fontWeight,omitempty"`
	CornerRadius *float64 `json:"cornerRadius,omitempty"`
	Padding      *float64 `json:"padding,omitempty"`
	Spacing      *float64 `json:"spacing,omitempty"`
	BorderWidth  *float64 `json:"borderWidth,omitempty"`
	Opacity      *float64 `json:"opacity,omitempty"`

	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`
}

// Action is a named, parameterized operation referenced by id from
// components. Actions are immutable once loaded.
type Action struct {
	ID     string                 `json:"id"`
	Type   ActionType             `json:"type"`
	Params map[string]value.Value `json:"params"`
}

// FindPage returns the page with the given id.
func (s *Spec) FindPage(pageID string) (*Page, bool) {
	for i := range s.Pages {
		if s.Pages[i].ID == pageID {
			return &s.Pages[i], true
		}
	}
	return nil, false
}

// FindAction returns the action with the given id.
func (s *Spec) FindAction(actionID string) (*Action, bool) {
	for i := range s.Actions {
		if s.Actions[i].ID == actionID {
			return &s.Actions[i], true
		}
	}
	return nil, false
}

// Walk visits every component on every page depth-first, children in
// original order.
func (s *Spec) Walk(visit func(*Component)) {
	for i := range s.Pages {
		for j := range s.Pages[i].Components {
			walkComponent(&s.Pages[i].Components[j], visit)
		}
	}
}

func walkComponent(c *Component, visit func(*Component)) {
	visit(c)
	for i := range c.Children {
		walkComponent(&c.Children[i], visit)
	}
}

// HasCapability reports whether the spec declares a capability.
func (s *Spec) HasCapability(c Capability) bool {
	for _, have := range s.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// StringParam pulls a string parameter out of an action's params.
func (a *Action) StringParam(key string) (string, bool) {
	v, ok := a.Params[key]
	if !ok {
		return "", false
	}
	return v.AsString()
}
