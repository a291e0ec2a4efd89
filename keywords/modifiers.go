package keywords

import "golang.org/x/exp/slices"

// List from https://kotlinlang.org/docs/keyword-reference.html#modifier-keywords
var (
	VisibilityModifiers    = []string{"public", "private", "internal", "protected"}
	NonVisibilityModifiers = []string{
		"abstract", "final", "open", "override", "lateinit", "const",
		"data", "enum", "annotation", "sealed", "inner", "value", "companion",
		"inline", "noinline", "crossinline", "tailrec", "operator", "infix", "external", "suspend",
		"vararg", "reified", "expect", "actual",
	}
)

// Soft keywords that only have a meaning inside a declaration
var (
	Constructor = "constructor"
	Init        = "init"
	Getter      = "get"
	Setter      = "set"
	By          = "by"
	Where       = "where"
	Import      = "import"
)

// IsVisibility reports whether the word is one of the four visibility modifiers
func IsVisibility(word string) bool {
	return slices.Contains(VisibilityModifiers, word)
}

// IsModifier reports whether the word is a modifier keyword, visibility included
func IsModifier(word string) bool {
	return IsVisibility(word) || slices.Contains(NonVisibilityModifiers, word)
}

// IsParameterModifier reports whether the word may prefix a value parameter.
// Parameters of a primary constructor take `val`, `var` and the property
// modifiers as well
func IsParameterModifier(word string) bool {
	return word == "val" || word == "var" || IsModifier(word)
}
