package rating

import (
	"math"
	"strconv"
	"strings"

	"github.com/octobees/nearby-restaurants/internal/entity"
)

const (
	MaxStars = 5

	FullGlyph  = "★"
	HalfGlyph  = "✭"
	EmptyGlyph = "☆"

	// NoRatingText is shown in place of stars for unrated restaurants.
	NoRatingText = "No rating"
)

// StarDisplay is the quantized star representation of a rating.
type StarDisplay struct {
	Rated bool
	Full  int
	Half  int
	Empty int
	Label string
}

// Render quantizes a rating onto five stars. Ratings outside [0, 5] are
// clamped first and NaN is rendered as unrated.
func Render(r entity.Rating) StarDisplay {
	if !r.Rated || math.IsNaN(r.Value) {
		return StarDisplay{Label: NoRatingText}
	}

	value := clamp(r.Value)
	full := int(math.Floor(value))
	half := 0
	if math.Mod(value, 1) >= 0.5 {
		half = 1
	}

	return StarDisplay{
		Rated: true,
		Full:  full,
		Half:  half,
		Empty: MaxStars - full - half,
		Label: "(" + strconv.FormatFloat(value, 'f', -1, 64) + ")",
	}
}

// Glyphs returns the star glyphs without the label.
func (d StarDisplay) Glyphs() string {
	if !d.Rated {
		return ""
	}
	return strings.Repeat(FullGlyph, d.Full) + strings.Repeat(HalfGlyph, d.Half) + strings.Repeat(EmptyGlyph, d.Empty)
}

// String renders the glyphs followed by the numeric label, e.g. "★★★★☆ (4)".
func (d StarDisplay) String() string {
	if !d.Rated {
		return d.Label
	}
	return d.Glyphs() + " " + d.Label
}

func clamp(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > MaxStars {
		return MaxStars
	}
	return value
}
