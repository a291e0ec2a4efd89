package parsing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NickyBoy89/ktdecl/lexer"
	"github.com/NickyBoy89/ktdecl/symbol"
)

func parse(t *testing.T, src string) *symbol.SourceFile {
	t.Helper()
	file, err := ParseFile("Test.kt", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, file)
	return file
}

func parseError(t *testing.T, src string) *ParseError {
	t.Helper()
	file, err := ParseFile("Test.kt", []byte(src))
	require.Error(t, err)
	assert.Nil(t, file)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "expected a parse error, got %v", err)
	return parseErr
}

func TestFileHeader(t *testing.T) {
	file := parse(t, "@file:JvmName(\"Utils\")\npackage com.example.app\n\nimport a.b.C\nimport d.e as F\nimport g.*\n\nval x = 1\n")

	assert.Equal(t, "Test.kt", file.Name)
	assert.Equal(t, "com.example.app", file.Package)
	assert.Equal(t, []string{"a.b.C", "d.e as F", "g.*"}, file.Imports)
	require.Len(t, file.Declarations, 1)
}

func TestTopLevelDeclarations(t *testing.T) {
	file := parse(t, `fun top(a: Int, b: String = "x"): Int = a
val v: Int = 1
var w = "s"
class C
interface I
object O
typealias Alias = Map<String, Int>
`)
	require.Len(t, file.Declarations, 6)

	fn := file.Declarations[0].(*symbol.Function)
	assert.Equal(t, "top", fn.Name)
	assert.Equal(t, "Int", fn.ReturnType)
	assert.True(t, fn.HasBody)
	assert.Equal(t, []symbol.Parameter{
		{Name: "a", Type: "Int"},
		{Name: "b", Type: "String", Default: `"x"`},
	}, fn.Parameters)

	v := file.Declarations[1].(*symbol.Property)
	assert.False(t, v.Mutable)
	assert.Equal(t, "Int", v.Type)
	assert.Equal(t, "1", v.Initializer)

	w := file.Declarations[2].(*symbol.Property)
	assert.True(t, w.Mutable)
	assert.Equal(t, "", w.Type)
	assert.Equal(t, `"s"`, w.Initializer)

	kinds := []symbol.ClassKind{symbol.KindClass, symbol.KindInterface, symbol.KindObject}
	for i, name := range []string{"C", "I", "O"} {
		class := file.Declarations[3+i].(*symbol.ClassLike)
		assert.Equal(t, name, class.Name)
		assert.Equal(t, kinds[i], class.Kind)
		assert.Empty(t, class.Members)
	}
}

func TestGenericParametersAreNotSplit(t *testing.T) {
	file := parse(t, "fun f(a: Map<String, Int>, b: Int) {}")
	fn := file.Declarations[0].(*symbol.Function)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "Map<String, Int>", fn.Parameters[0].Type)
	assert.Equal(t, "Int", fn.Parameters[1].Type)
}

func TestGenericCallDefaultsAreNotSplit(t *testing.T) {
	file := parse(t, "fun f(a: Map<String, Int> = emptyMap<String, Int>(), b: Int) {}")
	fn := file.Declarations[0].(*symbol.Function)
	assert.Equal(t, []symbol.Parameter{
		{Name: "a", Type: "Map<String, Int>", Default: "emptyMap<String, Int>()"},
		{Name: "b", Type: "Int"},
	}, fn.Parameters)
}

func TestParameterModifiers(t *testing.T) {
	file := parse(t, "fun f(vararg items: String, noinline block: () -> Unit, @Ann value: Int, inline: Boolean) {}")
	fn := file.Declarations[0].(*symbol.Function)
	assert.Equal(t, []symbol.Parameter{
		{Modifiers: []string{"vararg"}, Name: "items", Type: "String"},
		{Modifiers: []string{"noinline"}, Name: "block", Type: "() -> Unit"},
		{Name: "value", Type: "Int"},
		{Name: "inline", Type: "Boolean"},
	}, fn.Parameters)
}

func TestModifiersAndVisibility(t *testing.T) {
	file := parse(t, `internal open class A
private public fun f() {}
@Suppress("x")
@JvmStatic
fun annotated() {}
val open = 1
protected
abstract fun split()
`)
	require.Len(t, file.Declarations, 5)

	a := file.Declarations[0].Header()
	assert.Equal(t, symbol.Internal, a.Visibility)
	assert.True(t, a.Explicit)
	assert.Equal(t, []string{"internal", "open"}, a.Modifiers)

	f := file.Declarations[1].Header()
	assert.Equal(t, symbol.Public, f.Visibility, "the last visibility modifier wins")
	assert.Equal(t, []string{"private", "public"}, f.Modifiers)

	annotated := file.Declarations[2].Header()
	assert.Equal(t, []string{`Suppress("x")`, "JvmStatic"}, annotated.Annotations)
	assert.Empty(t, annotated.Modifiers)
	assert.False(t, annotated.Explicit)
	assert.Equal(t, symbol.Public, annotated.Visibility)

	assert.Equal(t, "open", file.Declarations[3].Header().Name)

	split := file.Declarations[4].Header()
	assert.Equal(t, "split", split.Name)
	assert.Equal(t, symbol.Protected, split.Visibility)
	assert.Equal(t, []string{"protected", "abstract"}, split.Modifiers)
}

func TestDeclarationOffsets(t *testing.T) {
	file := parse(t, "\n\nprivate fun f() {}\nval x = 1")
	require.Len(t, file.Declarations, 2)
	assert.Equal(t, 2, file.Declarations[0].Header().Offset)
	assert.Equal(t, 21, file.Declarations[1].Header().Offset)
}

func TestReceivers(t *testing.T) {
	file := parse(t, `fun String.shout() {}
fun <T> List<T>.second(): T = this[1]
fun (Int.() -> Unit).run2() {}
val <T> List<T>.lastIndex2: Int get() = size - 1
val String?.orEmpty2: String
    get() = this ?: ""
`)
	require.Len(t, file.Declarations, 5)

	shout := file.Declarations[0].(*symbol.Function)
	assert.Equal(t, "String", shout.Receiver)
	assert.Equal(t, "shout", shout.Name)

	second := file.Declarations[1].(*symbol.Function)
	assert.Equal(t, "<T>", second.TypeParameters)
	assert.Equal(t, "List<T>", second.Receiver)
	assert.Equal(t, "second", second.Name)
	assert.Equal(t, "T", second.ReturnType)

	run := file.Declarations[2].(*symbol.Function)
	assert.Equal(t, "(Int.() -> Unit)", run.Receiver)
	assert.Equal(t, "run2", run.Name)

	lastIndex := file.Declarations[3].(*symbol.Property)
	assert.Equal(t, "<T>", lastIndex.TypeParameters)
	assert.Equal(t, "List<T>", lastIndex.Receiver)
	assert.Equal(t, "lastIndex2", lastIndex.Name)
	assert.Equal(t, "Int", lastIndex.Type)

	orEmpty := file.Declarations[4].(*symbol.Property)
	assert.Equal(t, "String?", orEmpty.Receiver)
	assert.Equal(t, "orEmpty2", orEmpty.Name)
	assert.Equal(t, "String", orEmpty.Type)
}

func TestDelegatedProperty(t *testing.T) {
	file := parse(t, "val lazyValue: String by lazy { \"x\" }\nval other by Delegates.notNull<Int>()\n")
	require.Len(t, file.Declarations, 2)

	lazy := file.Declarations[0].(*symbol.Property)
	assert.Equal(t, "lazyValue", lazy.Name)
	assert.Equal(t, "String", lazy.Type)
	assert.Equal(t, `lazy { "x" }`, lazy.Delegate)
	assert.Equal(t, "", lazy.Initializer)

	other := file.Declarations[1].(*symbol.Property)
	assert.Equal(t, "other", other.Name)
	assert.Equal(t, "Delegates.notNull<Int>()", other.Delegate)
}

func TestAccessors(t *testing.T) {
	file := parse(t, `class P {
    var size: Int = 0
        private set
    val empty: Boolean
        get() = size == 0
    var named: String = ""
        get() = field
        set(value) { field = value }
}
`)
	members := file.Declarations[0].(*symbol.ClassLike).Members
	require.Len(t, members, 3)

	size := members[0].(*symbol.Property)
	assert.Equal(t, "size", size.Name)
	assert.Equal(t, "0", size.Initializer)

	empty := members[1].(*symbol.Property)
	assert.Equal(t, "empty", empty.Name)
	assert.Equal(t, "Boolean", empty.Type)
	assert.Equal(t, "", empty.Initializer)

	named := members[2].(*symbol.Property)
	assert.Equal(t, "named", named.Name)
	assert.Equal(t, `""`, named.Initializer)
}

func TestClassMembers(t *testing.T) {
	file := parse(t, `open class Base protected constructor(val id: Int) : Parent(id), Marker {
    init {
        require(id > 0)
    }

    constructor() : this(1) {
        println("secondary")
    }

    private val hidden = 0
    inner class Nested
    companion object {
        fun create() = Base()
    }
}
`)
	base := file.Declarations[0].(*symbol.ClassLike)
	assert.Equal(t, "Base", base.Name)
	assert.Equal(t, []string{"open"}, base.Modifiers)
	require.Len(t, base.Members, 3)

	assert.Equal(t, "hidden", base.Members[0].Header().Name)
	assert.Equal(t, symbol.Private, base.Members[0].Header().Visibility)
	assert.Equal(t, "Nested", base.Members[1].Header().Name)

	companion := base.Members[2].(*symbol.ClassLike)
	assert.Equal(t, companionName, companion.Name)
	assert.Equal(t, symbol.KindObject, companion.Kind)
	require.Len(t, companion.Members, 1)
	assert.Equal(t, "create", companion.Members[0].Header().Name)

	found := base.ByName("Companion")
	require.Len(t, found, 1)
}

func TestInitBlocks(t *testing.T) {
	file := parse(t, "class A {\n    init {\n        println(1)\n    }\n    fun f() {}\n    init\n    {\n    }\n    val init = 2\n}\n")
	members := file.Declarations[0].(*symbol.ClassLike).Members
	require.Len(t, members, 2)
	assert.Equal(t, "f", members[0].Header().Name)
	assert.Equal(t, "init", members[1].Header().Name)
}

func TestNamedCompanion(t *testing.T) {
	file := parse(t, "class K {\n    companion object Factory {\n    }\n}\n")
	members := file.Declarations[0].(*symbol.ClassLike).Members
	require.Len(t, members, 1)
	assert.Equal(t, "Factory", members[0].Header().Name)
}

func TestEnumEntriesAreSkipped(t *testing.T) {
	file := parse(t, `enum class Dir(val degrees: Int) {
    NORTH(0),
    SOUTH(180) { override fun toString() = "s" },
    EAST(90);

    fun opposite(): Dir = this
}
enum class Plain { A, B }
`)
	require.Len(t, file.Declarations, 2)

	dir := file.Declarations[0].(*symbol.ClassLike)
	require.Len(t, dir.Members, 1)
	assert.Equal(t, "opposite", dir.Members[0].Header().Name)

	assert.Empty(t, file.Declarations[1].(*symbol.ClassLike).Members)
}

func TestFunInterface(t *testing.T) {
	file := parse(t, "fun interface Callback {\n    fun call(value: String)\n}\n")
	callback := file.Declarations[0].(*symbol.ClassLike)
	assert.Equal(t, symbol.KindInterface, callback.Kind)
	assert.Equal(t, "Callback", callback.Name)

	require.Len(t, callback.Members, 1)
	call := callback.Members[0].(*symbol.Function)
	assert.False(t, call.HasBody)
	assert.Equal(t, []symbol.Parameter{{Name: "value", Type: "String"}}, call.Parameters)
}

func TestFunctionLocals(t *testing.T) {
	file := parse(t, `fun outer() {
    val a = 1
    if (a > 0) {
        val hidden = 2
    }
    listOf(1).forEach { val inLambda = it }
    val f = fun(x: Int) = x
    fun inner(): Int {
        val deep = 3
        return deep
    }
    class LocalClass
    var b: String
    val (x, y) = pair
}
`)
	outer := file.Declarations[0].(*symbol.Function)

	var names []string
	for _, d := range outer.Body {
		names = append(names, d.Header().Name)
	}
	assert.Equal(t, []string{"a", "f", "inner", "LocalClass", "b", ""}, names)

	inner := outer.Body[2].(*symbol.Function)
	require.Len(t, inner.Body, 1)
	assert.Equal(t, "deep", inner.Body[0].Header().Name)

	assert.Equal(t, "fun(x: Int) = x", outer.Body[1].(*symbol.Property).Initializer)
	assert.True(t, outer.Body[5].Header().IsAnonymous())
}

func TestWhereClauses(t *testing.T) {
	file := parse(t, "fun <T> copy(a: T): T where T : Comparable<T>, T : Cloneable {\n    return a\n}\nclass Box<T> where T : Any {\n    val x = 1\n}\n")
	require.Len(t, file.Declarations, 2)

	fn := file.Declarations[0].(*symbol.Function)
	assert.Equal(t, "T", fn.ReturnType)
	assert.True(t, fn.HasBody)

	box := file.Declarations[1].(*symbol.ClassLike)
	require.Len(t, box.Members, 1)
}

func TestStatementsSpanningLines(t *testing.T) {
	file := parse(t, "val total = 1 +\n    2\nval chained = listOf(1)\n    .map { it }\n    ?.first()\nval next = 3\n")
	require.Len(t, file.Declarations, 3)
	assert.Equal(t, "1 + 2", file.Declarations[0].(*symbol.Property).Initializer)
	assert.Equal(t, "listOf(1) .map { it } ?.first()", file.Declarations[1].(*symbol.Property).Initializer)
	assert.Equal(t, "next", file.Declarations[2].Header().Name)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		msg    string
		line   int
		column int
	}{
		{"unclosed class body", "class A {\n    fun f() {\n    }\n", "unbalanced braces", 1, 9},
		{"stray closing brace", "}", `unexpected "}" at top level`, 1, 1},
		{"class without name", "class {}", `expected name after class, got "{"`, 1, 7},
		{"object without name", "object", "expected name after object, got end of file", 1, 7},
		{"typealias without name", "typealias = Int", `expected name after typealias, got "="`, 1, 11},
		{"function without parameters", "fun f {}", `expected ( after function name f, got "{"`, 1, 7},
		{"mismatched brackets", "fun f(a: Int] {}", "unbalanced parentheses", 1, 6},
		{"annotation without declaration", "@Ann\n42", "expected a declaration after modifiers, got newline", 1, 5},
		{"statement in class body", "class A {\n    println()\n}", `unexpected "println" in class body`, 2, 5},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := parseError(t, test.source)
			assert.Equal(t, test.msg, err.Msg)
			assert.Equal(t, "Test.kt", err.File)
			assert.Equal(t, test.line, err.Line)
			assert.Equal(t, test.column, err.Column)
		})
	}
}

func TestLexErrorsAreAttributedToFile(t *testing.T) {
	file, err := ParseFile("Broken.kt", []byte("fun fine() {}\nval s = \"abc\n"))
	require.Error(t, err)
	assert.Nil(t, file)

	var lexErr *lexer.LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, "Broken.kt", lexErr.File)
	assert.Equal(t, 2, lexErr.Line)

	pos, ok := ErrorPosition(err)
	require.True(t, ok)
	assert.Equal(t, lexErr.Offset, pos.Offset)
}

func TestErrorPosition(t *testing.T) {
	_, err := ParseFile("A.kt", []byte("class {}"))
	pos, ok := ErrorPosition(err)
	require.True(t, ok)
	assert.Equal(t, 6, pos.Offset)
	assert.Equal(t, "A.kt:1:7", pos.String())

	_, ok = ErrorPosition(errors.New("other"))
	assert.False(t, ok)
}

func TestEmptyInput(t *testing.T) {
	for _, src := range []string{"", "\n\n", "// only a comment\n", ";;"} {
		file := parse(t, src)
		assert.Empty(t, file.Declarations)
	}
}
