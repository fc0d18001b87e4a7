// Package colorconv converts between "#rrggbb" and the "H S% L%" triplets
// the site theme stores in business settings.
package colorconv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// HexToHSL converts "#rrggbb" (or "#rgb") into "H S% L%" with integer components.
func HexToHSL(hex string) (string, error) {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return "", err
	}

	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))
	l := (hi + lo) / 2

	var h, s float64
	if hi != lo {
		d := hi - lo
		if l > 0.5 {
			s = d / (2 - hi - lo)
		} else {
			s = d / (hi + lo)
		}

		switch hi {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h *= 60
	}

	return fmt.Sprintf("%d %d%% %d%%", int(math.Round(h)), int(math.Round(s*100)), int(math.Round(l*100))), nil
}

// HSLToHex converts "H S% L%" back into "#rrggbb".
func HSLToHex(hsl string) (string, error) {
	parts := strings.Fields(hsl)
	if len(parts) != 3 {
		return "", fmt.Errorf("некорректный цвет HSL %q", hsl)
	}

	values := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return "", fmt.Errorf("некорректный цвет HSL %q: %w", hsl, err)
		}
		values[i] = v
	}

	h, s, l := values[0], values[1]/100, values[2]/100
	a := s * math.Min(l, 1-l)
	channel := func(n float64) int {
		k := math.Mod(n+h/30, 12)
		c := l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		return int(math.Round(255 * c))
	}

	return fmt.Sprintf("#%02x%02x%02x", channel(0), channel(8), channel(4)), nil
}

func parseHex(hex string) (float64, float64, float64, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) == 3 {
		hex = strings.Repeat(hex[0:1], 2) + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2)
	}
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("некорректный цвет %q", hex)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("некорректный цвет %q: %w", hex, err)
	}

	return float64(v>>16&0xff) / 255, float64(v>>8&0xff) / 255, float64(v&0xff) / 255, nil
}
