package client

import (
	"fmt"
	"math"
	"strings"
)

const (
	maxStars  = 5
	fullStar  = "★"
	halfStar  = "⯨"
	emptyStar = "☆"
)

// Stars renders a popularity score as exactly five star glyphs followed by
// the numeric score, e.g. "★★★⯨☆ (3.7/5)": floor(score) full stars, one
// half star when the fractional remainder is at least 0.5, empty stars for
// the rest.
func Stars(score float64) string {
	if score < 0 {
		score = 0
	}
	if score > maxStars {
		score = maxStars
	}

	full := int(math.Floor(score))
	half := 0
	if score-math.Floor(score) >= 0.5 {
		half = 1
	}
	empty := maxStars - full - half

	var b strings.Builder
	b.WriteString(strings.Repeat(fullStar, full))
	b.WriteString(strings.Repeat(halfStar, half))
	b.WriteString(strings.Repeat(emptyStar, empty))
	fmt.Fprintf(&b, " (%.1f/5)", score)
	return b.String()
}
