// Package outline runs the extraction pipeline over a set of source files:
// every file is parsed and formatted on its own, and a file that fails only
// drops its own contribution to the report
package outline

import (
	"context"
	"os"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/NickyBoy89/ktdecl/parsing"
	"github.com/NickyBoy89/ktdecl/signature"
	"github.com/NickyBoy89/ktdecl/symbol"
)

// Parser turns the source of a single file into its declaration tree
type Parser interface {
	ParseFile(name string, src []byte) (*symbol.SourceFile, error)
}

// ParserFunc adapts a plain function to the Parser interface
type ParserFunc func(name string, src []byte) (*symbol.SourceFile, error)

func (f ParserFunc) ParseFile(name string, src []byte) (*symbol.SourceFile, error) {
	return f(name, src)
}

// Native is the built-in lexer and parser
var Native Parser = ParserFunc(parsing.ParseFile)

// Extractor produces the outline of source files
type Extractor struct {
	Parser    Parser
	Formatter signature.Formatter
}

// Extract parses a single file and renders its outline
func (e Extractor) Extract(name string, src []byte) (string, error) {
	file, err := e.Parser.ParseFile(name, src)
	if err != nil {
		return "", err
	}
	return e.Formatter.FormatFile(file), nil
}

// Options controls a Run
type Options struct {
	// Jobs is the number of files processed at once, GOMAXPROCS when zero
	Jobs int
	// KeepTrees keeps the parsed declaration tree of every file in its Result
	KeepTrees bool
}

// Result is the outcome of processing one file
type Result struct {
	Path   string
	Output string
	// File is only set when the options asked for trees to be kept
	File *symbol.SourceFile
	// Source is kept for failed files, so the error can be shown in context
	Source []byte
	Err    error
}

// Run processes every path, in parallel, and returns one Result per path in
// the same order as paths. Errors are reported per file and never stop the
// other files. Once ctx is cancelled no new files are started
func (e Extractor) Run(ctx context.Context, paths []string, opts Options) []Result {
	results := make([]Result, len(paths))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var group errgroup.Group
	group.SetLimit(jobs)
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			results[i] = Result{Path: path, Err: err}
			continue
		}
		i, path := i, path
		group.Go(func() error {
			results[i] = e.runFile(ctx, path, opts)
			return nil
		})
	}
	// Every file records its own error, so the group never fails
	_ = group.Wait()

	return results
}

func (e Extractor) runFile(ctx context.Context, path string, opts Options) Result {
	result := Result{Path: path}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	src, err := os.ReadFile(path)
	if err != nil {
		result.Err = errors.Errorf("reading %s: %w", path, err)
		log.WithFields(log.Fields{"file": path}).Warnf("Failed to read file: %v", err)
		return result
	}

	file, err := e.Parser.ParseFile(path, src)
	if err != nil {
		result.Err = err
		result.Source = src
		fields := log.Fields{"file": path}
		if pos, ok := parsing.ErrorPosition(err); ok {
			fields["offset"] = pos.Offset
		}
		log.WithFields(fields).Warnf("Skipping file: %v", err)
		return result
	}

	result.Output = e.Formatter.FormatFile(file)
	if opts.KeepTrees {
		result.File = file
	}
	log.WithFields(log.Fields{"file": path, "declarations": file.Count()}).Debug("Parsed file")
	return result
}

// Report concatenates the output of every successful result, in order
func Report(results []Result) string {
	var builder strings.Builder
	for _, result := range results {
		if result.Err == nil {
			builder.WriteString(result.Output)
		}
	}
	return builder.String()
}

// Failed returns the results that ended in an error
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}
	return failed
}
