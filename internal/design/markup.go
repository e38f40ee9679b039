package design

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// RenderDocument converts a design tree into one self-contained HTML
// document: generated markup, a style block, and a small script for button
// alerts, all built by recursive string concatenation. Each node's id
// becomes an addressable element id ("component-" + id); children are
// emitted in original order.
func RenderDocument(d *Design) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(d.Name))
	b.WriteString("<style>\n")
	b.WriteString(baseStyles)
	b.WriteString("</style>\n</head>\n<body>\n")

	for i := range d.Screens {
		screen := &d.Screens[i]
		fmt.Fprintf(&b, "<section id=\"screen-%s\" class=\"screen\">\n", html.EscapeString(screen.ID))
		if screen.Title != "" {
			fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(screen.Title))
		}
		for j := range screen.Components {
			renderNode(&b, &screen.Components[j], 0)
		}
		b.WriteString("</section>\n")
	}

	b.WriteString("<script>\n")
	fmt.Fprintf(&b, "function genappAlert(id){alert(%s+' · '+id);}\n", strconv.Quote(d.Name))
	b.WriteString("</script>\n</body>\n</html>\n")

	return b.String()
}

const baseStyles = `body{font-family:-apple-system,sans-serif;margin:0;padding:16px;}
.screen{display:flex;flex-direction:column;gap:8px;}
.cmp-spacer{flex:none;}
`

func renderNode(b *strings.Builder, c *Component, depth int) {
	indent := strings.Repeat("  ", depth+1)
	elemID := "component-" + attrID(c.ID)
	style := inlineStyle(c)

	switch c.Type {
	case TypeText:
		fmt.Fprintf(b, "%s<p id=%q class=\"cmp cmp-text\"%s>%s</p>\n",
			indent, elemID, style, html.EscapeString(c.Text))

	case TypeButton:
		fmt.Fprintf(b, "%s<button id=%q class=\"cmp cmp-button\"%s onclick=\"genappAlert('%s')\">%s</button>\n",
			indent, elemID, style, elemID, html.EscapeString(c.Text))

	case TypeImage:
		fmt.Fprintf(b, "%s<img id=%q class=\"cmp cmp-image\"%s src=%q alt=\"\">\n",
			indent, elemID, style, c.ImageURL)

	case TypeInput:
		fmt.Fprintf(b, "%s<input id=%q class=\"cmp cmp-input\"%s placeholder=%q>\n",
			indent, elemID, style, html.EscapeString(c.Text))

	case TypeList:
		fmt.Fprintf(b, "%s<ul id=%q class=\"cmp cmp-list\"%s>\n", indent, elemID, style)
		for _, item := range c.Items {
			fmt.Fprintf(b, "%s  <li>%s</li>\n", indent, html.EscapeString(item))
		}
		fmt.Fprintf(b, "%s</ul>\n", indent)

	case TypeDivider:
		fmt.Fprintf(b, "%s<hr id=%q class=\"cmp cmp-divider\"%s>\n", indent, elemID, style)

	case TypeSpacer:
		fmt.Fprintf(b, "%s<div id=%q class=\"cmp cmp-spacer\"%s></div>\n", indent, elemID, style)

	default: // container, card, and anything unknown group their children
		fmt.Fprintf(b, "%s<div id=%q class=\"cmp cmp-%s\"%s>\n", indent, elemID, c.Type, style)
		for i := range c.Children {
			renderNode(b, &c.Children[i], depth+1)
		}
		fmt.Fprintf(b, "%s</div>\n", indent)
	}
}

// inlineStyle builds the style attribute for a node. Empty when the node
// declares nothing.
func inlineStyle(c *Component) string {
	var rules []string

	if c.Width > 0 {
		rules = append(rules, fmt.Sprintf("width:%spx", trimFloat(c.Width)))
	}
	if c.Height > 0 {
		rules = append(rules, fmt.Sprintf("height:%spx", trimFloat(c.Height)))
	}

	st := &c.Style
	if st.BackgroundColor != "" {
		rules = append(rules, "background-color:"+st.BackgroundColor)
	}
	if st.TextColor != "" {
		rules = append(rules, "color:"+st.TextColor)
	}
	if st.BorderColor != "" {
		rules = append(rules, "border:1px solid "+st.BorderColor)
	}
	if st.Opacity != nil {
		rules = append(rules, "opacity:"+trimFloat(*st.Opacity))
	}
	if st.FontSize != nil {
		rules = append(rules, fmt.Sprintf("font-size:%spx", trimFloat(*st.FontSize)))
	}
	if st.FontWeight != "" {
		rules = append(rules, fmt.Sprintf("font-weight:%d", NormalizeFontWeight(st.FontWeight)))
	}
	if st.CornerRadius != nil {
		rules = append(rules, fmt.Sprintf("border-radius:%spx", trimFloat(*st.CornerRadius)))
	}
	if st.Padding != nil {
		rules = append(rules, fmt.Sprintf("padding:%spx", trimFloat(*st.Padding)))
	}
	if st.Spacing != nil {
		rules = append(rules, fmt.Sprintf("gap:%spx", trimFloat(*st.Spacing)))
	}

	if len(rules) == 0 {
		return ""
	}
	return fmt.Sprintf(" style=%q", strings.Join(rules, ";"))
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// attrID restricts an id to characters safe inside both an attribute value
// and the single-quoted genappAlert argument. Anything else becomes '-'.
func attrID(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
