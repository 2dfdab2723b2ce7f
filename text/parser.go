package text

import (
	"strconv"
	"strings"
)

// ParseFont parses a CSS font shorthand such as
// "italic bold 16px Arial, sans-serif". Pieces that cannot be parsed keep
// their DefaultFontStyle value.
func ParseFont(s string) FontStyle {
	style := DefaultFontStyle()
	fields := strings.Fields(s)

	i := 0
	for ; i < len(fields); i++ {
		f := strings.ToLower(fields[i])
		if size, ok := parseSize(f); ok {
			style.Size = size
			i++
			break
		}
		switch f {
		case "normal", "small-caps":
		case "italic":
			style.Slant = SlantItalic
		case "oblique":
			style.Slant = SlantOblique
		default:
			if w, ok := parseWeight(f); ok {
				style.Weight = w
			}
		}
	}

	if i < len(fields) {
		if families := parseFamilies(strings.Join(fields[i:], " ")); len(families) > 0 {
			style.Families = families
		}
	}
	return style
}

func parseWeight(s string) (int, bool) {
	switch s {
	case "bold", "bolder":
		return WeightBold, true
	case "lighter":
		return 100, true
	}
	w, err := strconv.Atoi(s)
	if err != nil || w < 1 || w > 1000 {
		return 0, false
	}
	return w, true
}

// parseSize accepts px, vp, fp and pt lengths, optionally followed by a
// "/line-height" part which is ignored.
func parseSize(s string) (float64, bool) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	scale := 1.0
	switch {
	case strings.HasSuffix(s, "px"), strings.HasSuffix(s, "vp"), strings.HasSuffix(s, "fp"):
		s = s[:len(s)-2]
	case strings.HasSuffix(s, "pt"):
		s = s[:len(s)-2]
		scale = 4.0 / 3.0
	default:
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v * scale, true
}

func parseFamilies(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		name := strings.Trim(strings.TrimSpace(part), `"'`)
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}
