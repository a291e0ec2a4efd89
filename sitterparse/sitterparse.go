// Package sitterparse builds declaration trees from the tree-sitter Kotlin
// grammar. It produces the same trees as the native parser for the
// declarations that both understand, and is used to cross-check it
package sitterparse

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/kotlin"
	"gitlab.com/tozd/go/errors"

	"github.com/NickyBoy89/ktdecl/keywords"
	"github.com/NickyBoy89/ktdecl/lexer"
	"github.com/NickyBoy89/ktdecl/nodeutil"
	"github.com/NickyBoy89/ktdecl/parsing"
	"github.com/NickyBoy89/ktdecl/symbol"
)

const companionName = "Companion"

// automaticSemicolon is inserted by the grammar wherever a statement ends
// without a `;`, a missing one is not a syntax error
const automaticSemicolon = "_automatic_semicolon"

// Parser is an outline.Parser backed by tree-sitter. The zero value is ready
// to use, and a new tree-sitter parser is made for every file
type Parser struct{}

func (Parser) ParseFile(name string, src []byte) (*symbol.SourceFile, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(kotlin.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, errors.Errorf("parsing %s: %w", name, err)
	}
	root := tree.RootNode()

	if bad := nodeutil.FirstError(root, automaticSemicolon); bad != nil {
		msg := "syntax error"
		if bad.IsMissing() {
			msg = "missing " + bad.Type()
		}
		return nil, &parsing.ParseError{Position: position(name, bad), Msg: msg}
	}

	c := &converter{name: name, src: src}
	file := c.sourceFile(root)
	if c.err != nil {
		return nil, c.err
	}
	return file, nil
}

func position(name string, node *sitter.Node) lexer.Position {
	start := node.StartPoint()
	return lexer.Position{
		File:   name,
		Offset: int(node.StartByte()),
		Line:   int(start.Row) + 1,
		Column: int(start.Column) + 1,
	}
}

// converter walks a syntax tree and keeps the first structural problem it
// finds
type converter struct {
	name string
	src  []byte
	err  error
}

func (c *converter) content(node *sitter.Node) string {
	return strings.Join(strings.Fields(node.Content(c.src)), " ")
}

func (c *converter) check(err error, node *sitter.Node) {
	if err != nil && c.err == nil {
		c.err = &parsing.ParseError{Position: position(c.name, node), Msg: err.Error()}
	}
}

func (c *converter) sourceFile(root *sitter.Node) *symbol.SourceFile {
	file := &symbol.SourceFile{Name: c.name}
	for _, node := range nodeutil.NamedChildren(root) {
		switch node.Type() {
		case "package_header":
			if id := nodeutil.FirstChildOfType(node, "identifier"); id != nil {
				file.Package = c.content(id)
			}
		case "import_list":
			for _, header := range nodeutil.NamedChildren(node) {
				file.Imports = append(file.Imports, c.importPath(header))
			}
		case "import_header":
			file.Imports = append(file.Imports, c.importPath(node))
		default:
			if decl := c.declaration(node); decl != nil {
				file.Declarations = append(file.Declarations, decl)
			}
		}
	}
	return file
}

func (c *converter) importPath(header *sitter.Node) string {
	return strings.TrimSpace(strings.TrimPrefix(c.content(header), keywords.Import))
}

// declaration converts the node if it is one of the kept declarations, and
// returns nil for anything else
func (c *converter) declaration(node *sitter.Node) symbol.Declaration {
	switch node.Type() {
	case "function_declaration":
		return c.function(node)
	case "property_declaration":
		return c.property(node)
	case "class_declaration", "object_declaration", "companion_object":
		return c.classLike(node)
	}
	return nil
}

// header reads the modifiers node of a declaration, if it has one
func (c *converter) header(node *sitter.Node, name string) symbol.Decl {
	decl := symbol.Decl{Name: name, Offset: int(node.StartByte())}
	mods := nodeutil.FirstChildOfType(node, "modifiers")
	if mods == nil {
		return decl
	}
	for _, mod := range nodeutil.NamedChildren(mods) {
		if mod.Type() == "annotation" {
			decl.Annotations = append(decl.Annotations, strings.TrimPrefix(c.content(mod), "@"))
			continue
		}
		word := c.content(mod)
		if vis, ok := symbol.ParseVisibility(word); ok {
			decl.Visibility = vis
			decl.Explicit = true
		}
		decl.Modifiers = append(decl.Modifiers, word)
	}
	return decl
}

func (c *converter) function(node *sitter.Node) *symbol.Function {
	fn := &symbol.Function{}

	name := ""
	var afterName, inParams, afterParams bool
	var receiver []string
	var params parameterList
	for _, child := range nodeutil.AllChildren(node) {
		// The parameters are direct children of the declaration, between
		// the parentheses that follow the name
		if !child.IsNamed() {
			switch {
			case child.Type() == "(" && afterName && !afterParams:
				inParams = true
			case child.Type() == ")" && inParams:
				inParams, afterParams = false, true
			case inParams:
				c.addParameter(&params, child)
			}
			continue
		}
		if inParams {
			c.addParameter(&params, child)
			continue
		}

		switch child.Type() {
		case "modifiers":
		case "type_parameters":
			fn.TypeParameters = c.content(child)
		case "simple_identifier":
			if !afterName {
				name = c.content(child)
				afterName = true
			}
		case "function_value_parameters":
			for _, param := range nodeutil.AllChildren(child) {
				c.addParameter(&params, param)
			}
			afterParams = true
		case "function_body":
			fn.HasBody = true
			fn.Body = c.block(child)
		case "type_constraints":
		default:
			switch {
			case afterParams:
				fn.ReturnType = c.content(child)
			case !afterName:
				receiver = append(receiver, c.content(child))
			}
		}
	}

	if !afterName {
		c.check(errors.New("expected function name"), node)
	}
	fn.Decl = c.header(node, name)
	fn.Receiver = strings.Join(receiver, "")
	fn.Parameters = params.params
	return fn
}

// parameterList collects value parameters from a run of sibling nodes, where
// modifiers and default values are siblings of the parameter they belong to
type parameterList struct {
	params      []symbol.Parameter
	mods        []string
	defaultNext bool
}

func (c *converter) addParameter(list *parameterList, child *sitter.Node) {
	if !child.IsNamed() {
		list.defaultNext = child.Type() == "="
		return
	}
	switch {
	case child.Type() == "parameter_modifiers":
		for _, mod := range nodeutil.NamedChildren(child) {
			if mod.Type() != "annotation" {
				list.mods = append(list.mods, c.content(mod))
			}
		}
	case child.Type() == "parameter":
		list.params = append(list.params, c.parameter(child, list.mods))
		list.mods = nil
	case list.defaultNext && len(list.params) > 0:
		list.params[len(list.params)-1].Default = c.content(child)
	}
	list.defaultNext = false
}

func (c *converter) parameter(node *sitter.Node, mods []string) symbol.Parameter {
	param := symbol.Parameter{Modifiers: mods}
	children := nodeutil.NamedChildren(node)
	id := nodeutil.FirstChildOfType(node, "simple_identifier")
	c.check(nodeutil.AssertTypeIs(id, "simple_identifier"), node)
	if id != nil {
		param.Name = c.content(id)
	}
	if len(children) > 1 {
		param.Type = c.content(children[len(children)-1])
	}
	return param
}

// block returns the declarations made directly in a function body. An
// expression body has none
func (c *converter) block(body *sitter.Node) []symbol.Declaration {
	var decls []symbol.Declaration
	for _, child := range nodeutil.NamedChildren(body) {
		if child.Type() == "statements" {
			for _, statement := range nodeutil.NamedChildren(child) {
				if decl := c.declaration(statement); decl != nil {
					decls = append(decls, decl)
				}
			}
			continue
		}
		if decl := c.declaration(child); decl != nil {
			decls = append(decls, decl)
		}
	}
	return decls
}

func (c *converter) property(node *sitter.Node) *symbol.Property {
	prop := &symbol.Property{}

	name := ""
	var receiver []string
	seenName, initializerNext := false, false
	for _, child := range nodeutil.AllChildren(node) {
		if !child.IsNamed() {
			switch child.Type() {
			case "var":
				prop.Mutable = true
			case "=":
				initializerNext = true
			}
			continue
		}

		switch child.Type() {
		case "modifiers", "type_constraints", "getter", "setter":
		case "binding_pattern_kind":
			prop.Mutable = c.content(child) == "var"
		case "type_parameters":
			prop.TypeParameters = c.content(child)
		case "variable_declaration":
			seenName = true
			children := nodeutil.NamedChildren(child)
			if len(children) > 0 {
				name = c.content(children[0])
			}
			if len(children) > 1 {
				prop.Type = c.content(children[len(children)-1])
			}
		case "multi_variable_declaration":
			// Destructuring declarations don't introduce a single name
			seenName = true
		case "property_delegate":
			if children := nodeutil.NamedChildren(child); len(children) > 0 {
				prop.Delegate = c.content(children[0])
			}
		default:
			switch {
			case initializerNext:
				prop.Initializer = c.content(child)
				initializerNext = false
			case !seenName:
				receiver = append(receiver, c.content(child))
			}
		}
	}

	prop.Decl = c.header(node, name)
	prop.Receiver = strings.Join(receiver, "")
	return prop
}

func (c *converter) classLike(node *sitter.Node) *symbol.ClassLike {
	class := &symbol.ClassLike{Kind: symbol.KindClass}
	switch {
	case node.Type() != "class_declaration":
		class.Kind = symbol.KindObject
	case nodeutil.HasToken(node, "interface"):
		class.Kind = symbol.KindInterface
	}

	name := ""
	if id := nodeutil.FirstChildOfType(node, "type_identifier", "simple_identifier"); id != nil {
		name = c.content(id)
	} else if node.Type() == "companion_object" {
		name = companionName
	} else {
		c.check(errors.Errorf("expected name after %s", class.Kind), node)
	}
	class.Decl = c.header(node, name)
	if node.Type() == "companion_object" {
		class.Modifiers = append(class.Modifiers, "companion")
	}

	if body := nodeutil.FirstChildOfType(node, "class_body", "enum_class_body"); body != nil {
		for _, member := range nodeutil.NamedChildren(body) {
			if decl := c.declaration(member); decl != nil {
				class.Members = append(class.Members, decl)
			}
		}
	}
	return class
}
