package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/NickyBoy89/ktdecl/config"
	"github.com/NickyBoy89/ktdecl/outline"
	"github.com/NickyBoy89/ktdecl/report"
	"github.com/NickyBoy89/ktdecl/signature"
	"github.com/NickyBoy89/ktdecl/sitterparse"
	"github.com/NickyBoy89/ktdecl/sourcefiles"
	"github.com/NickyBoy89/ktdecl/symbol"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprint(os.Stderr, report.ErrorStyleBG.Sprint(" Error "))
		fmt.Fprintln(os.Stderr, report.ErrorColorFG.Sprint(" "+err.Error()))
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	defaults := config.Default()
	var (
		configPath string
		dryRun     bool
		flags      = defaults
	)

	cmd := &cobra.Command{
		Use:           "ktdecl [flags] <directory>",
		Short:         "Print the outline of the public declarations of a Kotlin project",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir string
			if len(args) > 0 {
				dir = args[0]
			}
			if err := sourcefiles.Validate(dir); err != nil {
				return err
			}

			cfg, err := config.Load(configPath, dir)
			if err != nil {
				return err
			}
			mergeFlags(cmd, &cfg, flags)
			return run(cmd, dir, cfg, dryRun)
		},
	}

	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Additional debug info")
	cmd.Flags().StringVar(&flags.Parser, "parser", defaults.Parser, "Parser to use, native or tree-sitter")
	cmd.Flags().StringVar(&flags.Visibility, "visibility", defaults.Visibility, "Visibility policy, transitive or node-local")
	cmd.Flags().StringVar(&flags.Ext, "ext", defaults.Ext, "Extension of the source files")
	cmd.Flags().IntVarP(&flags.Jobs, "jobs", "j", 0, "Files processed in parallel, defaults to one per CPU")
	cmd.Flags().StringVar(&flags.Format, "format", defaults.Format, "Output format, text, json or dot")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file, defaults to "+config.FileName+" in the directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only check that every file parses, without printing the outline")

	return cmd
}

// mergeFlags overrides the loaded config with the flags that were set on
// the command line
func mergeFlags(cmd *cobra.Command, cfg *config.Config, flags config.Config) {
	changed := cmd.Flags().Changed
	if changed("verbose") {
		cfg.Verbose = flags.Verbose
	}
	if changed("parser") {
		cfg.Parser = flags.Parser
	}
	if changed("visibility") {
		cfg.Visibility = flags.Visibility
	}
	if changed("ext") {
		cfg.Ext = flags.Ext
	}
	if changed("jobs") {
		cfg.Jobs = flags.Jobs
	}
	if changed("format") {
		cfg.Format = flags.Format
	}
}

func parserNamed(name string) (outline.Parser, error) {
	switch name {
	case "", "native":
		return outline.Native, nil
	case "tree-sitter":
		return sitterparse.Parser{}, nil
	}
	return nil, errors.Errorf("unknown parser %q, expected native or tree-sitter", name)
}

func run(cmd *cobra.Command, dir string, cfg config.Config, dryRun bool) error {
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(log.InfoLevel)
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	parser, err := parserNamed(cfg.Parser)
	if err != nil {
		return err
	}
	policy, err := symbol.ParsePolicy(cfg.Visibility)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	paths, err := sourcefiles.Find(dir, cfg.Ext)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"directory": dir, "files": len(paths), "jobs": cfg.Jobs}).Debug("Found source files")

	extractor := outline.Extractor{Parser: parser, Formatter: signature.New(policy)}
	results := extractor.Run(cmd.Context(), paths, outline.Options{
		Jobs:      cfg.Jobs,
		KeepTrees: format != report.Text,
	})

	for _, failed := range outline.Failed(results) {
		report.PrintDiagnostic(cmd.ErrOrStderr(), failed)
	}
	if cfg.Verbose {
		report.PrintSummary(cmd.ErrOrStderr(), results)
	}
	if dryRun {
		return nil
	}
	return report.Write(cmd.OutOrStdout(), format, extractor.Formatter, results)
}
