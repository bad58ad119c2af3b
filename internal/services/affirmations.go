package services

import "math/rand"

var affirmations = []string{
	"Your body is doing exactly what it needs to do.",
	"Rest is productive too.",
	"Every cycle is a fresh start.",
	"Listen to yourself first today.",
	"You know your body better than anyone.",
	"Small comforts count. Take one now.",
	"Feelings pass like weather. Let them.",
	"You are allowed to slow down.",
}

// PickAffirmation chooses one affirmation from the catalog using the
// caller's pseudo-random source, so the choice is deterministic under test
// and the caller decides where real randomness comes from. A nil source
// falls back to the first entry.
func PickAffirmation(source *rand.Rand) string {
	if source == nil {
		return affirmations[0]
	}
	return affirmations[source.Intn(len(affirmations))]
}
