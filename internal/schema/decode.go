package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/shared/id"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/value"
)

// Decoding is deliberately lenient for forward/backward compatibility:
// absent layouts default to scroll, absent ids are generated fresh, absent
// lists become empty, unknown capabilities are dropped element-wise instead
// of failing the document, and unknown categories resolve to utility.
// Encoding is the structural inverse, so
// decode∘encode is value-equal modulo these normalizations.

// Decode parses a Spec from its JSON wire form.
func Decode(data []byte) (*Spec, error) {
	var s Spec
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("schema: decode spec: %w", err)
	}
	return &s, nil
}

// Encode serializes a Spec to its JSON wire form.
func Encode(s *Spec) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("schema: encode spec: %w", err)
	}
	return data, nil
}

// capability aliases seen in the wild, applied after normalization
var capabilityAliases = map[string]Capability{
	"LOCALNOTIFICATIONS": CapabilityLocalNotifications,
	"NOTIFICATIONS":      CapabilityLocalNotifications,
	"HAPTIC":             CapabilityHaptics,
}

// ParseCapability normalizes an incoming capability string (case-fold,
// '-'/' ' to '_', known aliases) and matches it against the enum.
func ParseCapability(raw string) (Capability, error) {
	norm := strings.ToUpper(strings.TrimSpace(raw))
	norm = strings.ReplaceAll(norm, "-", "_")
	norm = strings.ReplaceAll(norm, " ", "_")

	if alias, ok := capabilityAliases[norm]; ok {
		return alias, nil
	}

	switch Capability(norm) {
	case CapabilityFlashlight, CapabilityTimer, CapabilityLocalNotifications, CapabilityHaptics:
		return Capability(norm), nil
	}
	return "", fmt.Errorf("schema: unknown capability %q", raw)
}

// UnmarshalJSON decodes a Spec, dropping unknown capabilities element-wise.
func (s *Spec) UnmarshalJSON(data []byte) error {
	type alias Spec
	aux := struct {
		*alias
		Capabilities []string `json:"capabilities"`
	}{alias: (*alias)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if s.ID == "" {
		s.ID = id.NewSpecID().String()
	}
	s.Category = ParseCategory(string(s.Category))
	if s.Version == 0 {
		s.Version = 1
	}
	if s.Pages == nil {
		s.Pages = []Page{}
	}
	if s.InitialState == nil {
		s.InitialState = map[string]value.Value{}
	}
	if s.Actions == nil {
		s.Actions = []Action{}
	}

	s.Capabilities = make([]Capability, 0, len(aux.Capabilities))
	for _, raw := range aux.Capabilities {
		c, err := ParseCapability(raw)
		if err != nil {
			continue // unknown after normalization: drop the element
		}
		s.Capabilities = append(s.Capabilities, c)
	}

	return nil
}

// UnmarshalJSON decodes a Page with defaults: layout falls back to scroll,
// title falls back to the legacy "name" field.
func (p *Page) UnmarshalJSON(data []byte) error {
	type alias Page
	aux := struct {
		*alias
		LegacyName string `json:"name"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if p.ID == "" {
		p.ID = id.NewPageID().String()
	}
	if p.Layout == "" {
		p.Layout = LayoutScroll
	}
	if p.Title == "" && aux.LegacyName != "" {
		p.Title = aux.LegacyName
	}
	if p.Components == nil {
		p.Components = []Component{}
	}

	return nil
}

// UnmarshalJSON decodes a Component, generating an id when absent and
// defaulting actionIds/children to empty lists.
func (c *Component) UnmarshalJSON(data []byte) error {
	type alias Component
	aux := (*alias)(c)

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	if c.ID == "" {
		c.ID = id.NewComponentID().String()
	}
	if c.ActionIDs == nil {
		c.ActionIDs = []string{}
	}
	if c.Children == nil {
		c.Children = []Component{}
	}

	return nil
}

// UnmarshalJSON decodes an Action, generating an id when absent and
// defaulting params to an empty map.
func (a *Action) UnmarshalJSON(data []byte) error {
	type alias Action
	aux := (*alias)(a)

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	if a.ID == "" {
		a.ID = id.NewActionID().String()
	}
	a.Type = ActionType(strings.ToUpper(strings.TrimSpace(string(a.Type))))
	if a.Params == nil {
		a.Params = map[string]value.Value{}
	}

	return nil
}

// UnmarshalJSON decodes a Style tolerating malformed numeric fields:
// anything that does not resolve to a finite number decodes as absent.
func (st *Style) UnmarshalJSON(data []byte) error {
	var raw map[string]value.Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	st.FontSize = finiteNumber(raw, "fontSize")
	st.FontWeight = finiteNumber(raw, "fontWeight")
	st.CornerRadius = finiteNumber(raw, "cornerRadius")
	st.Padding = finiteNumber(raw, "padding")
	st.Spacing = finiteNumber(raw, "spacing")
	st.BorderWidth = finiteNumber(raw, "borderWidth")
	st.Opacity = finiteNumber(raw, "opacity")

	st.BackgroundColor = stringField(raw, "backgroundColor")
	st.TextColor = stringField(raw, "textColor")
	st.BorderColor = stringField(raw, "borderColor")

	return nil
}

func finiteNumber(raw map[string]value.Value, key string) *float64 {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	n, ok := v.AsNumber()
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

func stringField(raw map[string]value.Value, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	s, _ := v.AsString()
	return s
}
