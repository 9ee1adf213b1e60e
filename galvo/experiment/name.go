package experiment

import (
	"math/rand"
	"time"
)

var (
	adjectives = []string{
		"amber", "bright", "coherent", "collimated", "crimson", "dim",
		"emerald", "faint", "focused", "golden", "infrared", "narrow",
		"pale", "polarized", "pulsed", "quiet", "scarlet", "sharp",
		"steady", "stray", "ultraviolet", "violet", "wide",
	}

	nouns = []string{
		"aperture", "beam", "caustic", "facet", "filament", "flare",
		"focus", "fringe", "glint", "grating", "halo", "iris", "lens",
		"mirror", "prism", "raster", "ray", "shutter", "speckle",
		"spot", "waist", "wavefront",
	}
)

// GenerateRunName creates a memorable run identifier in the format
// "adjective-noun"
func GenerateRunName() string {
	rand.New(rand.NewSource(time.Now().UnixNano()))

	adj := adjectives[rand.Intn(len(adjectives))]
	noun := nouns[rand.Intn(len(nouns))]

	return adj + "-" + noun
}

// GenerateRunID creates a unique run identifier by combining the memorable
// name with a timestamp
func GenerateRunID() string {
	timestamp := time.Now().UTC().Format("20060102-150405")
	return GenerateRunName() + "-" + timestamp
}
