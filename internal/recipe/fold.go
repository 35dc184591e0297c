package recipe

import "golang.org/x/text/cases"

// fold returns the caseless form of s. A Caser keeps per-call state, so a
// fresh one is built each time.
func fold(s string) string {
	return cases.Fold().String(s)
}

// hasIngredient reports whether any token equals want after folding. want
// must already be folded.
func hasIngredient(r Recipe, want string) bool {
	for _, ing := range r.Ingredients {
		if fold(ing) == want {
			return true
		}
	}
	return false
}
