// Package cmd: convert command.
// This is the main command that orchestrates the pipeline:
// fetch → extract → normalize → render → write.
//
// It handles flag validation, config loading, renderer selection and the
// single-page / --all modes.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/designpipe/config"
	"github.com/gaurav-prasanna/designpipe/core"
	"github.com/gaurav-prasanna/designpipe/core/bind"
	"github.com/gaurav-prasanna/designpipe/core/errors"
	"github.com/gaurav-prasanna/designpipe/core/fetch"
	"github.com/gaurav-prasanna/designpipe/core/figma"
	"github.com/gaurav-prasanna/designpipe/core/normalize"
	"github.com/gaurav-prasanna/designpipe/core/output"
	"github.com/gaurav-prasanna/designpipe/core/render"
	"github.com/gaurav-prasanna/designpipe/crawl"
)

// Flag variables.
var (
	flagFile      string
	flagPage      string
	flagAll       bool
	flagOutputDir string
	flagJSON      bool
	flagMarkdown  bool
	flagPDF       bool
	flagCheck     bool
	flagNoCache   bool
	flagWorkers   int
)

var convertCmd = &cobra.Command{
	Use:   "convert <figma-url-or-key>",
	Short: "Convert a Figma design into HTML and CSS",
	Long: `Convert fetches a Figma file, normalizes the selected page into a canonical
node tree and writes index.html plus a stylesheet whose rules reproduce each
node's geometry and appearance. Optional artefacts: the canonical tree as
JSON, the copy as Markdown and a wireframe PDF.

The API token is read from FIGMA_API_TOKEN or the [figma] section of the
config file.

Examples:
  designpipe convert https://www.figma.com/design/AbC123/My-App
  designpipe convert AbCdEfGhIjKlMnOpQrSt --page "Mobile" --output_dir ./site
  designpipe convert AbCdEfGhIjKlMnOpQrSt --all --json --pdf
  designpipe convert --file design.json --check`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Input flags.
	convertCmd.Flags().StringVar(&flagFile, "file", "", "Read a Figma file document from disk instead of the API")
	convertCmd.Flags().StringVar(&flagPage, "page", "", "Page to convert, by name or id (default: first page)")
	convertCmd.Flags().BoolVar(&flagAll, "all", false, "Convert every page into its own subdirectory")

	// Artefact flags.
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Also write the canonical tree as "+output.JSONFile)
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Also write the text copy as "+output.MarkdownFile)
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Also write a wireframe proof as "+output.PDFFile)

	convertCmd.Flags().BoolVar(&flagCheck, "check", false, "Fail when markup classes and stylesheet rules disagree")
	convertCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the API response cache")
	convertCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Subtrees normalized in parallel (default from config)")
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: ./output)")
}

// convertOptions is the resolved input of one conversion run.
type convertOptions struct {
	Source   string // file URL or key; empty when File is set
	File     string
	All      bool
	JSON     bool
	Markdown bool
	PDF      bool
	Check    bool
	NoCache  bool
	Config   config.Config
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := validateFlags(args); err != nil {
		return err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := convertOptions{
		File:     flagFile,
		All:      flagAll,
		JSON:     flagJSON,
		Markdown: flagMarkdown,
		PDF:      flagPDF,
		Check:    flagCheck,
		NoCache:  flagNoCache,
		Config:   cfg,
	}
	if len(args) == 1 {
		opts.Source = args[0]
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx).With("run", uuid.NewString()[:8])
	paths, err := convert(ctx, logger, opts)
	for _, p := range paths {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", p)
	}
	return err
}

// validateFlags checks that exactly one input source is given.
func validateFlags(args []string) error {
	switch {
	case flagFile != "" && len(args) > 0:
		return fmt.Errorf("--file and a Figma URL/key are mutually exclusive")
	case flagFile == "" && len(args) == 0:
		return fmt.Errorf("a Figma URL or file key is required (or --file)")
	case flagWorkers < 0:
		return fmt.Errorf("--workers must not be negative")
	}
	return nil
}

// applyFlags overrides config values with flags the user set explicitly.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output_dir") {
		cfg.OutputDir = flagOutputDir
	}
	if flags.Changed("page") {
		cfg.Page = flagPage
	}
	if flags.Changed("workers") && flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}
}

// convert runs the pipeline for every selected page and returns the paths
// written. In --all mode a failing page is logged and skipped; the run then
// reports how many pages failed.
func convert(ctx context.Context, logger *log.Logger, opts convertOptions) ([]string, error) {
	doc, err := loadDocument(ctx, logger, opts)
	if err != nil {
		return nil, err
	}

	pages, err := crawl.DiscoverPages(doc, opts.Config.Page, opts.All)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	writer, err := output.New(opts.Config.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output writer: %w", err)
	}

	p := newPipeline(logger, opts)
	if !opts.All {
		return p.convertPage(pages[0], "", writer)
	}

	logger.Info("Converting pages", "count", len(pages))
	var (
		written  []string
		errCount int
	)
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		logger.Infof("[%d/%d] %s", i+1, len(pages), page.Name)
		paths, err := p.convertPage(page, page.Slug, writer)
		written = append(written, paths...)
		if err != nil {
			logger.Error("Page failed", "page", page.Name, "err", err)
			errCount++
		}
	}
	if errCount > 0 {
		return written, fmt.Errorf("%d/%d pages failed", errCount, len(pages))
	}
	return written, nil
}

// loadDocument reads the document from --file or fetches it from the API.
func loadDocument(ctx context.Context, logger *log.Logger, opts convertOptions) (*figma.File, error) {
	prog := newProgress(logger)
	if opts.File != "" {
		f, err := os.Open(opts.File)
		if err != nil {
			return nil, fmt.Errorf("opening document: %w", err)
		}
		defer f.Close()
		doc, err := figma.Decode(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "reading %s", opts.File)
		}
		prog.done("Loaded " + opts.File)
		return doc, nil
	}

	key, err := crawl.ExtractFileKey(opts.Source)
	if err != nil {
		return nil, err
	}
	fetcher, err := newFetcher(logger, opts)
	if err != nil {
		return nil, err
	}
	res, err := fetcher.Fetch(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if res.Cached {
		prog.done("Loaded " + key + " from cache")
	} else {
		prog.done("Fetched " + key)
	}
	return res.Document, nil
}

func newFetcher(logger *log.Logger, opts convertOptions) (core.Fetcher, error) {
	fc := opts.Config.Figma
	fo := fetch.Options{
		BaseURL:       fc.APIBase,
		Token:         fc.Token,
		RateLimitWait: fc.RateLimitWait,
		MaxAttempts:   fc.MaxAttempts,
		Logger:        logger,
	}
	if !opts.NoCache {
		cache, err := fetch.NewCache(fc.CacheDir, fc.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("opening cache: %w", err)
		}
		fo.Cache = cache
	}
	return fetch.New(fo), nil
}

// artifactRenderer pairs an optional renderer with its output file name.
type artifactRenderer struct {
	name     string
	renderer core.Renderer
}

// pipeline holds the stages shared by every page of a run.
type pipeline struct {
	log        *log.Logger
	normalizer core.Normalizer
	style      core.Renderer
	stylesheet string
	extras     []artifactRenderer
	checker    *bind.Checker
	strict     bool
}

func newPipeline(logger *log.Logger, opts convertOptions) *pipeline {
	cfg := opts.Config
	p := &pipeline{
		log:        logger,
		normalizer: normalize.New(normalize.Options{Workers: cfg.Workers, Logger: logger}),
		style: render.NewStyleRenderer(render.StyleOptions{
			TextOffsetMultiplier: &cfg.TextOffsetMultiplier,
			ViewportWidth:        cfg.ViewportWidth,
			ViewportHeight:       cfg.ViewportHeight,
		}),
		stylesheet: output.FileName(cfg.Stylesheet),
		checker:    bind.New(logger),
		strict:     opts.Check,
	}
	if opts.JSON {
		p.extras = append(p.extras, artifactRenderer{output.JSONFile, render.NewJSONRenderer()})
	}
	if opts.Markdown {
		p.extras = append(p.extras, artifactRenderer{output.MarkdownFile, render.NewMarkdownRenderer()})
	}
	if opts.PDF {
		p.extras = append(p.extras, artifactRenderer{output.PDFFile, render.NewPDFRenderer(cfg.ViewportWidth, cfg.ViewportHeight)})
	}
	return p
}

// convertPage runs one page through normalize → render → check → write.
func (p *pipeline) convertPage(page crawl.PageRef, slug string, writer *output.Writer) ([]string, error) {
	prog := newProgress(p.log)
	root, err := p.normalizer.Normalize(page.Node)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	summary := render.Summarize(root)
	prog.done(fmt.Sprintf("Normalized %d nodes", summary.Nodes))

	prog = newProgress(p.log)
	markup, err := render.NewPageRenderer(p.stylesheet, page.Name).Render(root)
	if err != nil {
		return nil, fmt.Errorf("render markup: %w", err)
	}
	css, err := p.style.Render(root)
	if err != nil {
		return nil, fmt.Errorf("render stylesheet: %w", err)
	}
	artifacts := []output.Artifact{
		{Name: output.IndexFile, Data: markup},
		{Name: p.stylesheet, Data: css},
	}
	for _, extra := range p.extras {
		data, err := extra.renderer.Render(root)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", extra.name, err)
		}
		artifacts = append(artifacts, output.Artifact{Name: extra.name, Data: data})
	}
	prog.done(fmt.Sprintf("Rendered %d artefacts", len(artifacts)))

	report, err := p.checker.CheckTree(root, markup, css)
	if err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}
	if !report.OK() {
		if p.strict {
			return nil, errors.Wrap(errors.ErrCodeInternal, report.Err(), "page %q", page.Name)
		}
		p.log.Warn("Class binding mismatch", "missing", report.MissingRules, "orphan", report.OrphanRules)
	}
	p.log.Debug("Class binding", "elements", report.Elements, "rules", report.Rules)

	paths, err := writer.WriteAll(slug, artifacts)
	if err != nil {
		return paths, fmt.Errorf("write: %w", err)
	}
	return paths, nil
}
