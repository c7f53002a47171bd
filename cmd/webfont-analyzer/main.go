package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	webfontanalyzer "github.com/kataras/webfont-analyzer"
	"github.com/kataras/webfont-analyzer/pkg/advisor"
	"github.com/kataras/webfont-analyzer/pkg/browser"
	"github.com/kataras/webfont-analyzer/pkg/config"
	"github.com/kataras/webfont-analyzer/pkg/formatter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = webfontanalyzer.Version

type cliFlags struct {
	apiKey      string
	model       string
	json        bool
	markdown    bool
	output      string
	verbose     bool
	timeout     time.Duration
	fontTimeout time.Duration
	configPath  string
	noColor     bool
	browserBin  string
}

// backends replaces the page renderer and the chat client when set.
// Zero values use headless Chromium and the OpenAI compatible API.
type backends struct {
	renderer  webfontanalyzer.Renderer
	completer advisor.Completer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := execute(ctx, newRootCmd(os.Stdout, os.Stderr, backends{}), os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// execute runs cmd and prints the error it returns, if any, to stderr.
// This covers argument and flag errors as well as failed analyses.
func execute(ctx context.Context, cmd *cobra.Command, stderr io.Writer) error {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	log := &cliLogger{w: stderr, verbose: verbose}
	switch {
	case errors.Is(err, webfontanalyzer.ErrNoFonts):
		log.Errorf("No fonts found on this webpage.")
	case verbose:
		log.Errorf("Error: %+v", err)
	default:
		log.Errorf("Error: %v", err)
	}

	return err
}

func newRootCmd(stdout, stderr io.Writer, b backends) *cobra.Command {
	var f cliFlags

	rootCmd := &cobra.Command{
		Use:           "webfont-analyzer <url>",
		Short:         "Analyze the fonts used by a webpage",
		Long:          "Render a webpage in headless Chromium, report which fonts it declares, loads and actually uses, and optionally ask an AI model for a typography critique",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], &f, b, stdout, &cliLogger{w: stderr, verbose: f.verbose})
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&f.apiKey, "api-key", "", "OpenAI API key (or set "+config.EnvAPIKey+")")
	flags.StringVarP(&f.model, "model", "m", config.DefaultModel, "OpenAI model to use")
	flags.BoolVar(&f.json, "json", false, "Output results as JSON")
	flags.BoolVar(&f.markdown, "markdown", false, "Output results as Markdown")
	flags.StringVarP(&f.output, "output", "o", "", "Write the report to a file instead of stdout")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Show detailed output")
	flags.DurationVar(&f.timeout, "timeout", config.DefaultNavigationTimeout, "Page load timeout")
	flags.DurationVar(&f.fontTimeout, "font-timeout", config.DefaultFontTimeout, "Font loading timeout")
	flags.StringVar(&f.configPath, "config", "", "Config file (default "+filepath.Join(config.XDGConfigDir(), config.DefaultConfigFile)+")")
	flags.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&f.browserBin, "browser-bin", "", "Chromium executable (default: detect or download)")

	rootCmd.MarkFlagsMutuallyExclusive("json", "markdown")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "webfont-analyzer version %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	return rootCmd
}

func run(cmd *cobra.Command, url string, f *cliFlags, b backends, stdout io.Writer, log *cliLogger) error {
	cfg, err := loadConfig(cmd, url, f)
	if err != nil {
		return err
	}

	if cfg.NoColor {
		color.NoColor = true
	}

	log.Infof("🔍 Starting font analysis...")
	log.Debugf("Analyzing: %s", cfg.URL)
	log.Debugf("Model: %s", cfg.Model)

	result, err := webfontanalyzer.Run(cmd.Context(), webfontanalyzer.Options{
		URL:      cfg.URL,
		Renderer: b.renderer,
		Browser: browser.Options{
			NavigationTimeout: cfg.NavigationTimeout,
			FontTimeout:       cfg.FontTimeout,
			SettleDelay:       settleDelay(cfg),
			Bin:               cfg.BrowserBin,
		},
		Completer:      b.completer,
		APIKey:         cfg.APIKey,
		APIBaseURL:     cfg.APIBaseURL,
		Model:          cfg.Model,
		FamilyLimit:    cfg.FamilyLimit,
		FontFileLimit:  cfg.FontFileLimit,
		DetectLanguage: cfg.DetectLanguage,
		Logger:         log,
	})
	if result == nil {
		return err
	}
	aiErr := err

	out := stdout
	noColor := cfg.NoColor
	if cfg.Output != "" {
		file, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer file.Close()
		out = file
		noColor = true
	}

	switch {
	case cfg.JSON:
		err = formatter.WriteJSON(out, result.Report, result.Advice)
	case cfg.Markdown:
		err = formatter.WriteMarkdown(out, result.Report, result.Advice)
	default:
		err = formatter.NewTextWriter(out, formatter.DefaultLimits, noColor).Write(result.Report, result.Advice)
	}
	if err != nil {
		return err
	}

	if cfg.Output != "" {
		log.Infof("💾 Report written to %s", cfg.Output)
	}

	return aiErr
}

// loadConfig resolves the settings of a run: flags over environment over
// config file over defaults.
func loadConfig(cmd *cobra.Command, url string, f *cliFlags) (*config.Config, error) {
	cfg := config.NewConfig()

	if path := config.FindConfigFile(f.configPath); path != "" {
		file, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Apply(file)
	}

	cfg.ApplyEnv(os.Getenv)

	flags := cmd.Flags()
	cfg.URL = url
	if flags.Changed("api-key") {
		cfg.APIKey = f.apiKey
	}
	if flags.Changed("model") {
		cfg.Model = f.model
	}
	if flags.Changed("timeout") {
		cfg.NavigationTimeout = f.timeout
	}
	if flags.Changed("font-timeout") {
		cfg.FontTimeout = f.fontTimeout
	}
	if flags.Changed("browser-bin") {
		cfg.BrowserBin = f.browserBin
	}
	if flags.Changed("no-color") {
		cfg.NoColor = f.noColor
	}
	cfg.JSON = f.json
	cfg.Markdown = f.markdown
	cfg.Output = f.output
	cfg.Verbose = f.verbose

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// settleDelay maps a configured zero delay to the driver's "disabled" value.
func settleDelay(cfg *config.Config) time.Duration {
	if cfg.SettleDelay == 0 {
		return -1
	}
	return cfg.SettleDelay
}

// cliLogger implements webfontanalyzer.Logger with colored terminal output.
// Everything goes to w so that stdout carries only the report.
type cliLogger struct {
	w       io.Writer
	verbose bool
}

func (l *cliLogger) Debugf(format string, args ...any) {
	if l.verbose {
		color.New(color.Faint).Fprintf(l.w, format+"\n", args...)
	}
}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(l.w, format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(l.w, "⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(l.w, "✗ "+format+"\n", args...)
}
