package signature

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NickyBoy89/ktdecl/symbol"
)

func fun(name string, body ...symbol.Declaration) *symbol.Function {
	return &symbol.Function{Decl: symbol.Decl{Name: name}, HasBody: true, Body: body}
}

func class(name string, members ...symbol.Declaration) *symbol.ClassLike {
	return &symbol.ClassLike{Decl: symbol.Decl{Name: name}, Kind: symbol.KindClass, Members: members}
}

func private(d symbol.Declaration) symbol.Declaration {
	h := d.Header()
	h.Visibility = symbol.Private
	h.Explicit = true
	h.Modifiers = append([]string{"private"}, h.Modifiers...)
	return d
}

func TestClassWithMemberFunction(t *testing.T) {
	file := &symbol.SourceFile{Declarations: []symbol.Declaration{
		class("A", fun("declaration2")),
	}}

	assert.Equal(t, "class A {\n  fun declaration2() {\n  }\n}\n", New(symbol.Transitive).FormatFile(file))
}

func TestPropertySignature(t *testing.T) {
	tests := []struct {
		name     string
		prop     *symbol.Property
		expected string
	}{
		{
			"typed with initializer",
			&symbol.Property{Decl: symbol.Decl{Name: "x"}, Type: "Int", Initializer: "1"},
			"val: Int x = 1",
		},
		{
			"inferred type",
			&symbol.Property{Decl: symbol.Decl{Name: "y"}, Mutable: true, Initializer: `"s"`},
			`var: Any y = "s"`,
		},
		{
			"no initializer",
			&symbol.Property{Decl: symbol.Decl{Name: "z"}, Type: "String"},
			"val: String z = ",
		},
		{
			"modifiers",
			&symbol.Property{Decl: symbol.Decl{Name: "MAX", Modifiers: []string{"public", "const"}}, Type: "Int", Initializer: "10"},
			"public const val: Int MAX = 10",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, PropertySignature(test.prop))
			assert.Equal(t, test.expected+"\n", New(symbol.Transitive).Format(test.prop, 0))
		})
	}
}

func TestParameters(t *testing.T) {
	fn := &symbol.Function{
		Decl: symbol.Decl{Name: "f"},
		Parameters: []symbol.Parameter{
			{Name: "a", Type: "Map<String, Int>"},
			{Name: "b", Type: "Int", Default: "2"},
			{Modifiers: []string{"vararg"}, Name: "rest", Type: "String"},
		},
	}
	assert.Equal(t, "fun f(a: Map<String, Int>, b: Int = 2, vararg rest: String)", FunctionHeader(fn))
}

func TestHiddenDeclarationsLeaveNoTrace(t *testing.T) {
	file := &symbol.SourceFile{Declarations: []symbol.Declaration{
		private(&symbol.Property{Decl: symbol.Decl{Name: "secret"}}),
		class("A",
			private(fun("hidden")),
			fun("shown"),
			private(class("Inner", fun("unreachable"))),
		),
		&symbol.Function{Decl: symbol.Decl{Name: "internal", Visibility: symbol.Internal}},
		&symbol.Property{},
	}}

	output := New(symbol.Transitive).FormatFile(file)
	assert.Equal(t, "class A {\n  fun shown() {\n  }\n}\n", output)
	assert.NotContains(t, output, "\n\n")
}

func TestOnlyPrivatePropertyRendersNothing(t *testing.T) {
	file := &symbol.SourceFile{Declarations: []symbol.Declaration{
		private(&symbol.Property{Decl: symbol.Decl{Name: "x"}, Initializer: "1"}),
	}}
	assert.Equal(t, "", New(symbol.Transitive).FormatFile(file))
}

func TestIndentationFollowsDepth(t *testing.T) {
	tree := class("Outer", class("Middle", fun("leaf", &symbol.Property{Decl: symbol.Decl{Name: "local"}, Type: "Int"})))

	lines := strings.Split(strings.TrimSuffix(New(symbol.Transitive).Format(tree, 0), "\n"), "\n")
	assert.Equal(t, []string{
		"class Outer {",
		"  class Middle {",
		"    fun leaf() {",
		"      val: Int local = ",
		"    }",
		"  }",
		"}",
	}, lines)

	shifted := New(symbol.Transitive).Format(tree, 2)
	for _, line := range strings.Split(strings.TrimSuffix(shifted, "\n"), "\n") {
		assert.True(t, strings.HasPrefix(line, IndentUnit+IndentUnit), "line %q is not indented", line)
	}
}

func TestHiddenContainerPolicies(t *testing.T) {
	tree := private(class("Hidden", fun("shown", fun("inner")), private(fun("secret"))))

	assert.Equal(t, "", New(symbol.Transitive).Format(tree, 1))
	assert.Equal(t, "  fun shown() {\n    fun inner() {\n    }\n  }\n", New(symbol.NodeLocal).Format(tree, 1))

	visible := fun("outer", fun("inner"), &symbol.Property{Decl: symbol.Decl{Name: "x"}})
	for _, policy := range []symbol.Policy{symbol.Transitive, symbol.NodeLocal} {
		assert.Equal(t, "fun outer() {\n  fun inner() {\n  }\n  val: Any x = \n}\n", New(policy).Format(visible, 0), "policy %s", policy)
	}
}

func TestTopLevelDeclarationsInOrder(t *testing.T) {
	file := &symbol.SourceFile{Declarations: []symbol.Declaration{
		fun("first"),
		&symbol.ClassLike{Decl: symbol.Decl{Name: "Second"}, Kind: symbol.KindObject},
		&symbol.ClassLike{Decl: symbol.Decl{Name: "Third"}, Kind: symbol.KindInterface},
	}}

	assert.Equal(t, "fun first() {\n}\nobject Second {\n}\ninterface Third {\n}\n", New(symbol.Transitive).FormatFile(file))
}

func TestSignature(t *testing.T) {
	assert.Equal(t, "class A", Signature(class("A")))
	assert.Equal(t, "fun run()", Signature(fun("run")))
	assert.Equal(t, "var: Any x = 1", Signature(&symbol.Property{Decl: symbol.Decl{Name: "x"}, Mutable: true, Initializer: "1"}))
}
