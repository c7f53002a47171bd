package webfontanalyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/kataras/webfont-analyzer/pkg/advisor"
	"github.com/kataras/webfont-analyzer/pkg/browser"
	"github.com/kataras/webfont-analyzer/pkg/fontsource"
	"github.com/kataras/webfont-analyzer/pkg/fontusage"
	"github.com/kataras/webfont-analyzer/pkg/report"
)

// Version is the current version of the module and its CLI.
const Version = "0.1.0"

// ErrNoFonts is returned when no element of the page, including its
// frames, renders any text.
var ErrNoFonts = errors.New("no fonts found on this webpage")

// Options configures the analysis.
type Options struct {
	URL string

	// Renderer loads the page. Nil renders with a headless Chromium
	// configured by Browser.
	Renderer Renderer
	Browser  browser.Options

	// Completer answers chat requests. Nil uses the OpenAI compatible API
	// at APIBaseURL when APIKey is set, otherwise the AI step is skipped.
	Completer  advisor.Completer
	APIKey     string
	APIBaseURL string
	Model      string // empty = advisor.DefaultModel

	FamilyLimit    int  // families sent to the model, 0 = advisor.DefaultFamilyLimit
	FontFileLimit  int  // font files sent to the model, 0 = advisor.DefaultFontFileLimit
	DetectLanguage bool // add the page language to the prompt

	Logger Logger // nil = no logging
}

// Renderer loads a page and captures its raw font data.
// *browser.Driver is the production implementation.
type Renderer interface {
	Render(ctx context.Context, url string) (*browser.Capture, error)
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the analysis output.
type Result struct {
	Report *report.AnalysisReport
	Advice *advisor.Advice // nil when the AI step was skipped or failed
}

func (o *Options) logDebug(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Debugf(f, a...)
	}
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// Run renders the page, builds its font report and, when a model is
// available, asks it for a typographic critique.
//
// If only the AI step fails, Run returns the Result without advice together
// with the error, so callers can still print the report.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Renderer == nil {
		opts.Renderer = browser.New(opts.Browser)
	}

	opts.logInfo("📊 Extracting font information from webpage...")
	capture, err := opts.Renderer.Render(ctx, opts.URL)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.URL, err)
	}

	r, err := buildReport(&opts, capture)
	if err != nil {
		return nil, err
	}
	if len(r.Fonts) == 0 {
		return nil, ErrNoFonts
	}
	opts.logInfo("✓ Found %d unique font usage(s)", len(r.Fonts))

	result := &Result{Report: r}

	completer := opts.Completer
	if completer == nil {
		if opts.APIKey == "" {
			opts.logWarn("No OpenAI API key provided. Showing raw font data only.")
			return result, nil
		}
		completer = advisor.NewClient(opts.APIKey, opts.APIBaseURL)
	}

	cfg := advisor.Config{
		Model:         opts.Model,
		FamilyLimit:   opts.FamilyLimit,
		FontFileLimit: opts.FontFileLimit,
	}
	if opts.DetectLanguage {
		cfg.Languages = advisor.NewLinguaDetector()
	}
	adv := advisor.New(completer, cfg)

	opts.logInfo("🤖 Analyzing typography with AI (%s)...", adv.Model())
	advice, err := adv.Advise(ctx, r)
	if err != nil {
		return result, fmt.Errorf("ai analysis: %w", err)
	}
	opts.logInfo("✓ AI analysis complete")

	result.Advice = advice
	return result, nil
}

// buildReport turns a raw capture into the analysis report. Non-fatal
// problems of the capture are logged at debug level.
func buildReport(opts *Options, c *browser.Capture) (*report.AnalysisReport, error) {
	if c.FontsReadyErr != nil {
		opts.logDebug("%v", c.FontsReadyErr)
	}
	for _, err := range c.Errors {
		opts.logDebug("%v", err)
	}

	main := fontusage.Aggregate(c.Main.Elements)
	frames := make([]fontusage.Snapshot, 0, len(c.Frames))
	for _, f := range c.Frames {
		s := fontusage.Aggregate(f.Elements)
		opts.logDebug("Frame %s: %d font family(ies)", f.URL, len(s))
		frames = append(frames, s)
	}
	fonts := fontusage.Merge(main, frames...)

	docURL := c.DocumentURL
	if docURL == "" {
		docURL = c.URL
	}
	scan, err := fontsource.Scan(c.StyleSheets, c.HTML, docURL)
	if err != nil {
		return nil, fmt.Errorf("scan font sources: %w", err)
	}
	for _, err := range scan.Errors {
		opts.logDebug("%v", err)
	}

	return &report.AnalysisReport{
		Fonts:         fonts,
		FontFaces:     scan.FontFaces,
		ExternalFonts: scan.ExternalFonts,
		FontFiles:     c.FontFiles,
		DeclaredFonts: scan.DeclaredFonts,
		VariableFonts: scan.VariableFonts,
		CSSImports:    scan.CSSImports,
		LoadedFonts:   fontsource.LoadedFonts(c.FontChecks),
		URL:           c.URL,
	}, nil
}
