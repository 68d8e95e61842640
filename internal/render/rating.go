package render

import (
	"fmt"
	"math"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
)

// RatingBucket maps a 0-10 rating onto the discrete 0-50 display scale:
// round(r*5), clamped at both ends. Absent or non-numeric ratings map to 0.
func RatingBucket(r content.Rating) int {
	if !r.Valid {
		return 0
	}
	bucket := int(math.Round(r.Value * 5))
	if bucket < 0 {
		return 0
	}
	if bucket > 50 {
		return 50
	}
	return bucket
}

// RatingDisplay is the human-facing 0-5 star value: r/2 to one decimal place.
// Absent or non-numeric ratings display "0.0".
func RatingDisplay(r content.Rating) string {
	if !r.Valid {
		return "0.0"
	}
	v := r.Value
	if v < 0 {
		v = 0
	}
	if v > 10 {
		v = 10
	}
	return fmt.Sprintf("%.1f", v/2)
}

// RatingFragment renders the rating span for a card or detail page. Empty when
// ratings are disabled for this site.
func RatingFragment(r content.Rating, enabled bool) string {
	if !enabled {
		return ""
	}
	return fmt.Sprintf(`<span class="rating stars-%d">%s</span>`, RatingBucket(r), RatingDisplay(r))
}
