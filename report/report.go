// Package report writes the results of a run: the outline itself on one
// writer, and a diagnostic for every file that could not be processed on
// another
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"

	"github.com/NickyBoy89/ktdecl/dot"
	"github.com/NickyBoy89/ktdecl/lexer"
	"github.com/NickyBoy89/ktdecl/outline"
	"github.com/NickyBoy89/ktdecl/parsing"
	"github.com/NickyBoy89/ktdecl/signature"
	"github.com/NickyBoy89/ktdecl/symbol"
)

var (
	ErrorColorFG = pterm.FgRed
	ErrorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	WarnColorFG  = pterm.FgYellow
	WarnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	InfoColorFG  = pterm.FgLightGreen
)

// Format is the form the outline is written in
type Format int

const (
	// Text is the indented outline of every visible declaration
	Text Format = iota
	// JSON is the full parsed tree of every file
	JSON
	// Dot is a Graphviz graph of the visible declarations, a cluster per file
	Dot
)

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case JSON:
		return "json"
	case Dot:
		return "dot"
	}
	return "unknown"
}

// ParseFormat returns the format with the given name
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return Text, nil
	case "json":
		return JSON, nil
	case "dot":
		return Dot, nil
	}
	return Text, errors.Errorf("unknown output format %q, expected text, json or dot", name)
}

// Write writes the outline of every successful result. Every format other
// than Text needs the results to keep their trees
func Write(w io.Writer, format Format, formatter signature.Formatter, results []outline.Result) error {
	switch format {
	case Text:
		_, err := io.WriteString(w, outline.Report(results))
		return err
	case Dot:
		_, err := Graph(formatter.Resolver, results).WriteTo(w)
		return err
	}

	encoded, err := json.MarshalIndent(trees(results), "", "  ")
	if err != nil {
		return errors.Errorf("encoding declaration trees: %w", err)
	}
	_, err = fmt.Fprintln(w, string(encoded))
	return err
}

func trees(results []outline.Result) []*symbol.SourceFile {
	files := []*symbol.SourceFile{}
	for _, result := range results {
		if result.Err != nil || result.File == nil {
			continue
		}
		files = append(files, result.File)
	}
	return files
}

// Graph draws the declarations the resolver displays, with an edge from
// every declaration to the ones nested in it
func Graph(resolver symbol.Resolver, results []outline.Result) *dot.Dotfile {
	graph := dot.New()
	for _, file := range trees(results) {
		cluster := graph.Subgraph(file.Name)
		for _, decl := range file.Declarations {
			addDeclaration(cluster, resolver, file.Name, "", decl)
		}
	}
	return graph
}

// addDeclaration adds d below the node parent, or at the top of the cluster
// when parent is empty. The members shown for a hidden declaration hang from
// its closest shown ancestor
func addDeclaration(cluster *dot.SubGraph, resolver symbol.Resolver, file, parent string, d symbol.Declaration) {
	if !resolver.Emittable(d) {
		if resolver.Descends(d) {
			for _, child := range resolver.Children(d) {
				addDeclaration(cluster, resolver, file, parent, child)
			}
		}
		return
	}

	id := fmt.Sprintf("%s:%d", file, d.Header().Offset)
	cluster.AddNode(id, signature.Signature(d))
	if parent != "" {
		cluster.AddEdge(parent, id)
	}
	for _, child := range resolver.Children(d) {
		addDeclaration(cluster, resolver, file, id, child)
	}
}

// tag names the kind of failure for the banner of a diagnostic
func tag(err error) string {
	var lexErr *lexer.LexError
	var parseErr *parsing.ParseError
	switch {
	case errors.As(err, &lexErr):
		return "Lex Error"
	case errors.As(err, &parseErr):
		return "Parse Error"
	}
	return "Read Error"
}

// PrintDiagnostic writes the error of a failed result, followed by the line
// of source it points at when it has a position
func PrintDiagnostic(w io.Writer, result outline.Result) {
	if result.Err == nil {
		return
	}

	fmt.Fprint(w, ErrorStyleBG.Sprint(" "+tag(result.Err)+" "))
	fmt.Fprint(w, " ")
	fmt.Fprintln(w, InfoColorFG.Sprint(result.Path))
	fmt.Fprintln(w, ErrorColorFG.Sprint(result.Err.Error()))

	pos, ok := parsing.ErrorPosition(result.Err)
	if !ok {
		return
	}
	code, marker, ok := excerpt(result.Source, pos)
	if !ok {
		return
	}
	fmt.Fprintln(w, code)
	fmt.Fprintln(w, ErrorColorFG.Sprint(marker))
}

// PrintSummary writes how many files were processed and skipped
func PrintSummary(w io.Writer, results []outline.Result) {
	failed := len(outline.Failed(results))
	if failed == 0 {
		fmt.Fprintln(w, InfoColorFG.Sprintf("Processed %d files", len(results)))
		return
	}
	fmt.Fprint(w, WarnStyleBG.Sprint(" Skipped "))
	fmt.Fprintln(w, WarnColorFG.Sprintf(" %d of %d files could not be processed", failed, len(results)))
}

// Excerpt renders the source line at pos, numbered, with a caret under the
// column of pos. It is empty when pos is outside of src
func Excerpt(src []byte, pos lexer.Position) string {
	code, marker, ok := excerpt(src, pos)
	if !ok {
		return ""
	}
	return code + "\n" + marker + "\n"
}

func excerpt(src []byte, pos lexer.Position) (code, marker string, ok bool) {
	lines := strings.Split(string(src), "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return "", "", false
	}
	line := strings.TrimSuffix(lines[pos.Line-1], "\r")

	column := pos.Column - 1
	if column < 0 {
		column = 0
	}
	if column > len(line) {
		column = len(line)
	}
	prefix := strings.ReplaceAll(line[:column], "\t", "    ")

	width := len(strconv.Itoa(pos.Line)) + 1
	code = fmt.Sprintf("%-*d|  %s", width, pos.Line, strings.ReplaceAll(line, "\t", "    "))
	marker = strings.Repeat(" ", width) + "|  " + strings.Repeat(" ", utf8.RuneCountInString(prefix)) + "^"
	return code, marker, true
}
