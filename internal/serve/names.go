package serve

import (
	"math/rand/v2"

	"github.com/gosimple/slug"
	"github.com/react-three/create/internal/project"
)

var adjectives = []string{
	"red", "blue", "green", "yellow", "purple", "orange", "pink", "black",
	"white", "tiny", "big", "small", "large", "huge", "giant", "mini", "mega",
	"super", "happy", "sad", "angry", "calm", "quiet", "loud", "silent",
	"noisy", "shiny", "dull", "bright", "dark", "fuzzy", "smooth", "rough",
	"soft",
}

var nouns = []string{
	"apple", "banana", "cherry", "date", "elderberry", "fig", "grape",
	"honeydew", "cat", "dog", "elephant", "fox", "giraffe", "horse", "iguana",
	"jaguar", "mountain", "river", "ocean", "desert", "forest", "jungle",
	"meadow", "valley", "star", "moon", "sun", "planet", "comet", "asteroid",
	"galaxy", "universe",
}

// RandomName returns a repository name like react-three-shiny-comet.
func RandomName() string {
	return "react-three-" + adjectives[rand.IntN(len(adjectives))] + "-" + nouns[rand.IntN(len(nouns))]
}

// archiveName returns the download file name for a project.
func archiveName(name string) string {
	s := slug.Make(name)
	if s == "" {
		s = project.DefaultName
	}
	return s + ".zip"
}
