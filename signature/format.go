// Package signature renders declaration trees as indented outlines of their
// public signatures
package signature

import (
	"strings"

	"github.com/NickyBoy89/ktdecl/symbol"
)

// IndentUnit is prefixed once per nesting level to every rendered line
const IndentUnit = "  "

// Formatter renders the declarations that its Resolver considers displayable.
// Rendering has no side effects, so a Formatter is safe for concurrent use
type Formatter struct {
	Resolver symbol.Resolver
}

// New creates a Formatter that applies the given visibility policy
func New(policy symbol.Policy) Formatter {
	return Formatter{Resolver: symbol.Resolver{Policy: policy}}
}

// FormatFile renders every top-level declaration of the file in source order
func (f Formatter) FormatFile(file *symbol.SourceFile) string {
	var builder strings.Builder
	for _, decl := range file.Declarations {
		f.write(&builder, decl, 0)
	}
	return builder.String()
}

// Format renders a single declaration and its displayable nested
// declarations, as if it appeared at the given depth. A hidden declaration
// renders as the empty string
func (f Formatter) Format(d symbol.Declaration, depth int) string {
	var builder strings.Builder
	f.write(&builder, d, depth)
	return builder.String()
}

func (f Formatter) write(builder *strings.Builder, d symbol.Declaration, depth int) {
	if !f.Resolver.Emittable(d) {
		if f.Resolver.Descends(d) {
			for _, child := range f.Resolver.Children(d) {
				f.write(builder, child, depth)
			}
		}
		return
	}
	indent := strings.Repeat(IndentUnit, depth)

	switch decl := d.(type) {
	case *symbol.Property:
		builder.WriteString(indent)
		builder.WriteString(PropertySignature(decl))
		builder.WriteByte('\n')
		return
	case *symbol.Function:
		builder.WriteString(indent)
		builder.WriteString(FunctionHeader(decl))
	case *symbol.ClassLike:
		builder.WriteString(indent)
		builder.WriteString(ClassHeader(decl))
	}
	builder.WriteString(" {\n")

	for _, child := range f.Resolver.Children(d) {
		f.write(builder, child, depth+1)
	}

	builder.WriteString(indent)
	builder.WriteString("}\n")
}

// PropertySignature renders a property on a single line, as
// `<modifiers>val: <type> <name> = <initializer>`. The initializer is left
// empty when the property has none
func PropertySignature(p *symbol.Property) string {
	var builder strings.Builder
	for _, mod := range p.Modifiers {
		builder.WriteString(mod)
		builder.WriteByte(' ')
	}
	builder.WriteString(p.Keyword())
	builder.WriteString(": ")
	builder.WriteString(p.DisplayType())
	builder.WriteByte(' ')
	builder.WriteString(p.Name)
	builder.WriteString(" = ")
	builder.WriteString(p.Initializer)
	return builder.String()
}

// FunctionHeader renders the opening line of a function without its brace
func FunctionHeader(fn *symbol.Function) string {
	return "fun " + fn.Name + "(" + Parameters(fn.Parameters) + ")"
}

// ClassHeader renders the opening line of a class-like without its brace
func ClassHeader(c *symbol.ClassLike) string {
	return string(c.Kind) + " " + c.Name
}

// Parameters renders a parameter list without its parentheses
func Parameters(params []symbol.Parameter) string {
	rendered := make([]string, len(params))
	for i, param := range params {
		rendered[i] = Parameter(param)
	}
	return strings.Join(rendered, ", ")
}

// Parameter renders a single parameter as `<modifiers> <name>: <type> = <default>`,
// leaving out the parts it doesn't have
func Parameter(param symbol.Parameter) string {
	var builder strings.Builder
	for _, mod := range param.Modifiers {
		builder.WriteString(mod)
		builder.WriteByte(' ')
	}
	builder.WriteString(param.Name)
	if param.Type != "" {
		builder.WriteString(": ")
		builder.WriteString(param.Type)
	}
	if param.Default != "" {
		builder.WriteString(" = ")
		builder.WriteString(param.Default)
	}
	return builder.String()
}

// Signature renders the line that opens the declaration in an outline,
// without indentation or braces
func Signature(d symbol.Declaration) string {
	switch decl := d.(type) {
	case *symbol.Property:
		return PropertySignature(decl)
	case *symbol.Function:
		return FunctionHeader(decl)
	case *symbol.ClassLike:
		return ClassHeader(decl)
	}
	return ""
}
