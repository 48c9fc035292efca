package layout

import (
	"encoding/json"
	"fmt"

	"github.com/rasterly/rasterly/style"
)

// nodeJSON is the wire form of a tree node. The "type" field selects the
// node kind; unknown kinds are rejected.
type nodeJSON struct {
	Type     string            `json:"type"`
	Text     string            `json:"text,omitempty"`
	Src      string            `json:"src,omitempty"`
	Style    *styleJSON        `json:"style,omitempty"`
	Children []json.RawMessage `json:"children,omitempty"`
}

// styleJSON carries declared properties as CSS-flavored strings; numeric
// properties are plain JSON numbers.
type styleJSON struct {
	Display string `json:"display,omitempty"`

	Width     string `json:"width,omitempty"`
	Height    string `json:"height,omitempty"`
	MinWidth  string `json:"minWidth,omitempty"`
	MinHeight string `json:"minHeight,omitempty"`
	MaxWidth  string `json:"maxWidth,omitempty"`
	MaxHeight string `json:"maxHeight,omitempty"`

	Padding string `json:"padding,omitempty"`
	Margin  string `json:"margin,omitempty"`

	BorderWidth  string `json:"borderWidth,omitempty"`
	BorderColor  string `json:"borderColor,omitempty"`
	BorderRadius string `json:"borderRadius,omitempty"`

	BackgroundColor string `json:"backgroundColor,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`

	Color         string  `json:"color,omitempty"`
	FontSize      string  `json:"fontSize,omitempty"`
	FontFamily    string  `json:"fontFamily,omitempty"`
	FontWeight    uint16  `json:"fontWeight,omitempty"`
	LineHeight    string  `json:"lineHeight,omitempty"`
	LetterSpacing string  `json:"letterSpacing,omitempty"`
	TextAlign     string  `json:"textAlign,omitempty"`
	TextTransform string  `json:"textTransform,omitempty"`
	TextWrap      string  `json:"textWrap,omitempty"`
	WhiteSpace    string  `json:"whiteSpace,omitempty"`
	LineClamp     int     `json:"lineClamp,omitempty"`
	MaxLinesHeight string `json:"lineClampHeight,omitempty"`

	ObjectFit string `json:"objectFit,omitempty"`

	Gap string `json:"gap,omitempty"`

	Transform       string `json:"transform,omitempty"`
	TransformOrigin string `json:"transformOrigin,omitempty"`

	BoxShadow string  `json:"boxShadow,omitempty"`
	Filter    string  `json:"filter,omitempty"`
	Opacity   float32 `json:"opacity,omitempty"`
}

// UnmarshalNode decodes a JSON tree into nodes. Container nodes carry
// children; text nodes carry a text run; image nodes carry a source URL.
func UnmarshalNode(data []byte) (Node, error) {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("layout: decode node: %w", err)
	}
	return raw.build()
}

func (n *nodeJSON) build() (Node, error) {
	declared, err := n.Style.apply()
	if err != nil {
		return nil, err
	}

	switch n.Type {
	case "container", "":
		kids := make([]Node, 0, len(n.Children))
		for i, childRaw := range n.Children {
			child, err := UnmarshalNode(childRaw)
			if err != nil {
				return nil, fmt.Errorf("layout: child %d: %w", i, err)
			}
			kids = append(kids, child)
		}
		return &ContainerNode{Styles: &declared, Kids: kids}, nil
	case "text":
		if len(n.Children) > 0 {
			return nil, fmt.Errorf("layout: text node cannot have children")
		}
		return &TextNode{Styles: &declared, Text: n.Text}, nil
	case "image":
		if n.Src == "" {
			return nil, fmt.Errorf("layout: image node needs a src")
		}
		return &ImageNode{Styles: &declared, Src: n.Src}, nil
	}
	return nil, fmt.Errorf("layout: unknown node type %q", n.Type)
}

func (s *styleJSON) apply() (style.Style, error) {
	var out style.Style
	if s == nil {
		return out, nil
	}

	var err error
	setLength := func(dst *style.Length, input, prop string) {
		if err != nil || input == "" {
			return
		}
		var l style.Length
		if l, err = style.ParseLength(input); err != nil {
			err = fmt.Errorf("layout: %s: %w", prop, err)
			return
		}
		*dst = l
	}
	setEdges := func(dst *style.Edges, input, prop string) {
		if err != nil || input == "" {
			return
		}
		var e style.Edges
		if e, err = style.ParseEdges(input); err != nil {
			err = fmt.Errorf("layout: %s: %w", prop, err)
			return
		}
		*dst = e
	}
	setColor := func(dst *style.Color, input, prop string) {
		if err != nil || input == "" {
			return
		}
		var c style.Color
		if c, err = style.ParseColor(input); err != nil {
			err = fmt.Errorf("layout: %s: %w", prop, err)
			return
		}
		*dst = c
	}

	if s.Display != "" {
		if out.Display, err = style.ParseDisplay(s.Display); err != nil {
			return out, err
		}
	}

	setLength(&out.Width, s.Width, "width")
	setLength(&out.Height, s.Height, "height")
	setLength(&out.MinWidth, s.MinWidth, "minWidth")
	setLength(&out.MinHeight, s.MinHeight, "minHeight")
	setLength(&out.MaxWidth, s.MaxWidth, "maxWidth")
	setLength(&out.MaxHeight, s.MaxHeight, "maxHeight")
	setEdges(&out.Padding, s.Padding, "padding")
	setEdges(&out.Margin, s.Margin, "margin")
	setEdges(&out.BorderWidth, s.BorderWidth, "borderWidth")
	setColor(&out.BorderColor, s.BorderColor, "borderColor")
	setColor(&out.BackgroundColor, s.BackgroundColor, "backgroundColor")
	setColor(&out.Color, s.Color, "color")
	setLength(&out.FontSize, s.FontSize, "fontSize")
	setLength(&out.LineHeight, s.LineHeight, "lineHeight")
	setLength(&out.LetterSpacing, s.LetterSpacing, "letterSpacing")
	setLength(&out.Gap, s.Gap, "gap")
	setLength(&out.LineClamp.MaxHeight, s.MaxLinesHeight, "lineClampHeight")
	if err != nil {
		return out, err
	}

	if s.BorderRadius != "" {
		if out.BorderRadius, err = style.ParseBorderRadius(s.BorderRadius); err != nil {
			return out, fmt.Errorf("layout: borderRadius: %w", err)
		}
	}
	if s.TextAlign != "" {
		if out.TextAlign, err = style.ParseTextAlign(s.TextAlign); err != nil {
			return out, err
		}
	}
	if s.TextTransform != "" {
		if out.TextTransform, err = style.ParseTextTransform(s.TextTransform); err != nil {
			return out, err
		}
	}
	if s.TextWrap != "" {
		if out.TextWrap, err = style.ParseTextWrap(s.TextWrap); err != nil {
			return out, err
		}
	}
	if s.WhiteSpace != "" {
		if out.WhiteSpace, err = style.ParseWhiteSpace(s.WhiteSpace); err != nil {
			return out, err
		}
	}
	if s.ObjectFit != "" {
		if out.ObjectFit, err = style.ParseObjectFit(s.ObjectFit); err != nil {
			return out, err
		}
	}
	if s.Transform != "" {
		if out.Transform, err = style.ParseTransforms(s.Transform); err != nil {
			return out, fmt.Errorf("layout: transform: %w", err)
		}
	}
	if s.TransformOrigin != "" {
		e, err := style.ParseEdges(s.TransformOrigin)
		if err != nil {
			return out, fmt.Errorf("layout: transformOrigin: %w", err)
		}
		out.TransformOrigin = [2]style.Length{e.Top, e.Right}
	}
	if s.BoxShadow != "" {
		if out.BoxShadow, err = style.ParseBoxShadow(s.BoxShadow); err != nil {
			return out, err
		}
	}
	if s.Filter != "" {
		if out.Filter, err = style.ParseFilters(s.Filter); err != nil {
			return out, fmt.Errorf("layout: filter: %w", err)
		}
	}

	out.BackgroundImage = s.BackgroundImage
	out.FontFamily = s.FontFamily
	out.FontWeight = s.FontWeight
	out.LineClamp.MaxLines = s.LineClamp
	out.Opacity = s.Opacity
	return out, nil
}
