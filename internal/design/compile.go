package design

import (
	"time"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/schema"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/shared/id"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/value"
)

// typeMap maps legacy design node types to DSL component types.
var typeMap = map[ComponentType]schema.ComponentType{
	TypeContainer: schema.TypeContainer,
	TypeText:      schema.TypeLabel,
	TypeButton:    schema.TypeButton,
	TypeImage:     schema.TypeImage,
	TypeInput:     schema.TypeInput,
	TypeList:      schema.TypeList,
	TypeCard:      schema.TypeContainer,
	TypeDivider:   schema.TypeSpacer,
	TypeSpacer:    schema.TypeSpacer,
}

// compiler accumulates synthesized actions while walking the tree.
type compiler struct {
	actions []schema.Action
	appName string
}

// Compile converts a legacy design tree into the canonical DSL Spec.
// Children are processed in original order; every button gets a synthesized
// show-alert action wired into its actionIds.
func Compile(d *Design) *schema.Spec {
	c := &compiler{appName: d.Name, actions: []schema.Action{}}

	pages := make([]schema.Page, 0, len(d.Screens))
	for _, screen := range d.Screens {
		pageID := screen.ID
		if pageID == "" {
			pageID = id.NewPageID().String()
		}
		components := make([]schema.Component, 0, len(screen.Components))
		for i := range screen.Components {
			components = append(components, c.compileComponent(&screen.Components[i]))
		}
		pages = append(pages, schema.Page{
			ID:         pageID,
			Title:      screen.Title,
			Layout:     schema.LayoutScroll,
			Components: components,
		})
	}

	specID := d.ID
	if specID == "" {
		specID = id.NewSpecID().String()
	}
	// Unknown or empty categories resolve to utility, matching the wire
	// decoder, so a compiled spec always carries an in-enum category.
	category := schema.ParseCategory(d.Category)

	now := time.Now()
	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	return &schema.Spec{
		ID:           specID,
		Name:         d.Name,
		Description:  d.Description,
		Category:     category,
		Version:      1,
		Pages:        pages,
		Capabilities: []schema.Capability{},
		InitialState: map[string]value.Value{},
		Actions:      c.actions,
		CreatedAt:    createdAt,
		UpdatedAt:    now,
	}
}

func (c *compiler) compileComponent(src *Component) schema.Component {
	cmpID := src.ID
	if cmpID == "" {
		cmpID = id.NewComponentID().String()
	}

	out := schema.Component{
		ID:        cmpID,
		Type:      c.mapType(src),
		Props:     c.compileProps(src),
		ActionIDs: []string{},
		Children:  []schema.Component{},
	}

	if src.Type == TypeButton {
		out.ActionIDs = append(out.ActionIDs, c.synthesizeAlert(src))
	}

	for i := range src.Children {
		out.Children = append(out.Children, c.compileComponent(&src.Children[i]))
	}

	return out
}

func (c *compiler) mapType(src *Component) schema.ComponentType {
	if mapped, ok := typeMap[src.Type]; ok {
		return mapped
	}
	// Unknown legacy types degrade to a grouping node when they have
	// children and to a label otherwise.
	if len(src.Children) > 0 {
		return schema.TypeContainer
	}
	return schema.TypeLabel
}

func (c *compiler) compileProps(src *Component) schema.Props {
	props := schema.Props{
		Style: compileStyle(&src.Style),
	}

	switch src.Type {
	case TypeButton:
		props.Label = src.Text
	case TypeInput:
		props.Placeholder = src.Text
	default:
		props.Text = src.Text
	}

	if src.ImageURL != "" {
		props.ImageURL = src.ImageURL
	}
	if len(src.Items) > 0 {
		props.Items = append([]string(nil), src.Items...)
	}

	return props
}

func compileStyle(src *Style) schema.Style {
	out := schema.Style{
		BackgroundColor: src.BackgroundColor,
		TextColor:       src.TextColor,
		BorderColor:     src.BorderColor,
		Opacity:         src.Opacity,
		FontSize:        src.FontSize,
		CornerRadius:    src.CornerRadius,
		Padding:         src.Padding,
		Spacing:         src.Spacing,
	}
	if src.FontWeight != "" {
		w := float64(NormalizeFontWeight(src.FontWeight))
		out.FontWeight = &w
	}
	return out
}

// synthesizeAlert creates a show-alert action for a button and records it.
func (c *compiler) synthesizeAlert(src *Component) string {
	actionID := id.NewActionID().String()
	label := src.Text
	if label == "" {
		label = "Button"
	}

	c.actions = append(c.actions, schema.Action{
		ID:   actionID,
		Type: schema.ActionShowAlert,
		Params: map[string]value.Value{
			"title":   value.String(c.appName),
			"message": value.String(label + " tapped."),
		},
	})

	return actionID
}
