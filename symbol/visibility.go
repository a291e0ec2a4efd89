package symbol

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// Visibility is the effective visibility of a declaration
type Visibility int

const (
	// Public is the default when no visibility modifier is present
	Public Visibility = iota
	Internal
	Private
	Protected
)

var visibilityNames = map[Visibility]string{
	Public:    "public",
	Internal:  "internal",
	Private:   "private",
	Protected: "protected",
}

func (v Visibility) String() string {
	if name, ok := visibilityNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Visibility(%d)", int(v))
}

func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// ParseVisibility converts a visibility modifier word into its Visibility
func ParseVisibility(word string) (Visibility, bool) {
	for vis, name := range visibilityNames {
		if name == word {
			return vis, true
		}
	}
	return Public, false
}

// IsPublic reports whether the declaration is public on its own, without
// looking at any of its parents
func IsPublic(d Declaration) bool {
	return d.Header().Visibility == Public
}

// Policy decides whether a non-public declaration hides the declarations
// nested in it
type Policy int

const (
	// Transitive shows a declaration only when it and every declaration
	// containing it are public. A non-public container hides all of its members
	Transitive Policy = iota
	// NodeLocal judges every declaration by its own modifiers only. The public
	// members of a hidden container are still shown, in place of the container
	NodeLocal
)

func (p Policy) String() string {
	switch p {
	case Transitive:
		return "transitive"
	case NodeLocal:
		return "node-local"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy converts a policy name, as printed by String, into a Policy
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "transitive", "":
		return Transitive, nil
	case "node-local":
		return NodeLocal, nil
	}
	return Transitive, errors.Errorf("unknown visibility policy %q, expected transitive or node-local", name)
}

// Resolver classifies declarations as displayed or hidden. It never modifies
// the tree
type Resolver struct {
	Policy Policy
}

// Emittable reports whether the declaration should be displayed. Anonymous
// declarations are never displayed
func (r Resolver) Emittable(d Declaration) bool {
	if d.Header().IsAnonymous() {
		return false
	}
	return IsPublic(d)
}

// Descends reports whether the nested declarations of a hidden declaration
// are still candidates for display
func (r Resolver) Descends(d Declaration) bool {
	return r.Policy == NodeLocal && !r.Emittable(d)
}

// Children returns the nested declarations that are candidates for display
// under d, in source order
func (r Resolver) Children(d Declaration) []Declaration {
	switch decl := d.(type) {
	case *Function:
		return decl.Body
	case *ClassLike:
		return decl.Members
	}
	return nil
}
