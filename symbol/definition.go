package symbol

import (
	"encoding/json"

	"golang.org/x/exp/slices"
)

// InferredType is displayed in place of a property type that was left for
// the compiler to infer
const InferredType = "Any"

// Declaration is a single node of the declaration tree. The set of
// implementations is closed: *Function, *Property and *ClassLike
type Declaration interface {
	// Header returns the fields shared by every kind of declaration
	Header() *Decl
	declaration()
}

// Decl holds the fields that every declaration has in common
type Decl struct {
	// Name is empty for anonymous declarations, which are never displayed
	Name string
	// Visibility is the effective visibility of the declaration itself, it is
	// not inherited from the parents of the declaration
	Visibility Visibility
	// Explicit is set when the visibility was written out in the source
	Explicit bool
	// Modifiers are the modifier words as they appear in the source, including
	// the visibility modifier
	Modifiers []string
	// Annotations are the annotation texts without the leading `@`
	Annotations []string
	// Offset is the byte offset of the start of the declaration in its file
	Offset int
}

func (d *Decl) Header() *Decl {
	return d
}

// IsAnonymous reports whether the declaration has no recoverable name
func (d *Decl) IsAnonymous() bool {
	return d.Name == ""
}

// HasModifier reports whether the word was one of the declaration's modifiers
func (d *Decl) HasModifier(word string) bool {
	return slices.Contains(d.Modifiers, word)
}

// Parameter is a single value parameter of a function or constructor
type Parameter struct {
	// Modifiers like `vararg`, or `val`/`var` for constructor properties
	Modifiers []string `json:",omitempty"`
	Name      string
	Type      string
	// Default is the default value expression, empty if there is none
	Default string `json:",omitempty"`
}

// Function is a named function, either at the top level, a member or local
// to another function body
type Function struct {
	Decl
	TypeParameters string `json:",omitempty"`
	// Receiver is the receiver type of an extension function
	Receiver   string `json:",omitempty"`
	Parameters []Parameter
	ReturnType string `json:",omitempty"`
	// HasBody is false for abstract and interface functions
	HasBody bool
	// Body holds the declarations made directly inside the function's body
	Body []Declaration
}

func (f *Function) declaration() {}

// Property is a `val` or `var` declaration
type Property struct {
	Decl
	// Mutable is true for a `var`
	Mutable        bool
	TypeParameters string `json:",omitempty"`
	Receiver       string `json:",omitempty"`
	// Type is empty when the type is inferred
	Type        string `json:",omitempty"`
	Initializer string `json:",omitempty"`
	// Delegate is the expression after `by`
	Delegate string `json:",omitempty"`
}

func (p *Property) declaration() {}

// Keyword is the keyword that declared the property
func (p *Property) Keyword() string {
	if p.Mutable {
		return "var"
	}
	return "val"
}

// DisplayType returns the declared type, or the inferred placeholder when the
// property has no type annotation
func (p *Property) DisplayType() string {
	if p.Type == "" {
		return InferredType
	}
	return p.Type
}

// ClassKind is the keyword of a class-like declaration
type ClassKind string

const (
	KindClass     ClassKind = "class"
	KindInterface ClassKind = "interface"
	KindObject    ClassKind = "object"
)

// ClassLike is a class, interface or object, including companion objects
type ClassLike struct {
	Decl
	Kind ClassKind `json:"Keyword"`
	// Members are kept in source order
	Members []Declaration
}

func (c *ClassLike) declaration() {}

// SourceFile is the result of parsing a single file
type SourceFile struct {
	// Name is the display name of the file
	Name         string
	Package      string   `json:",omitempty"`
	Imports      []string `json:",omitempty"`
	Declarations []Declaration
}

// kindOf names the variant of a declaration in its encoded form
func kindOf(d Declaration) string {
	switch d.(type) {
	case *Function:
		return "function"
	case *Property:
		return "property"
	case *ClassLike:
		return "classlike"
	}
	return "unknown"
}

func (f *Function) MarshalJSON() ([]byte, error) {
	type plain Function
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*plain
	}{kindOf(f), (*plain)(f)})
}

func (p *Property) MarshalJSON() ([]byte, error) {
	type plain Property
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*plain
	}{kindOf(p), (*plain)(p)})
}

func (c *ClassLike) MarshalJSON() ([]byte, error) {
	type plain ClassLike
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*plain
	}{kindOf(c), (*plain)(c)})
}
