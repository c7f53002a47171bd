// Package webfontanalyzer reports how a webpage uses web fonts: which
// families its rendered text uses and how often (including text inside
// readable iframes), which @font-face rules, imports and external font
// services it declares, which font files it downloads and which faces the
// browser confirms as loaded. Optionally a bounded summary is sent to an
// OpenAI compatible chat model for a typography critique.
//
// The CLI lives in cmd/webfont-analyzer; this root package exposes the same
// pipeline as a Go API so that callers can embed the analysis in their own
// tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named webfontanalyzer:
//
//	import "github.com/kataras/webfont-analyzer" // package webfontanalyzer
//
// # Quick start
//
//	result, err := webfontanalyzer.Run(ctx, webfontanalyzer.Options{
//	    URL:    "https://example.com",
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	})
//	if err != nil && result == nil {
//	    log.Fatal(err)
//	}
//	formatter.WriteJSON(os.Stdout, result.Report, result.Advice)
//
// # Rendering
//
// Pages are rendered by [browser.Driver], a headless Chromium controlled
// through go-rod. Pass any [Renderer] in [Options.Renderer] to replace it,
// for example with a recorded capture in tests.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output. Debugf receives diagnostics
// such as cross-origin stylesheets and frames that could not be read.
//
//	type myLogger struct{}
//	func (l *myLogger) Debugf(f string, a ...any) { log.Printf("[DEBUG] "+f, a...) }
//	func (l *myLogger) Infof(f string, a ...any)  { log.Printf("[INFO]  "+f, a...) }
//	func (l *myLogger) Warnf(f string, a ...any)  { log.Printf("[WARN]  "+f, a...) }
//	func (l *myLogger) Errorf(f string, a ...any) { log.Printf("[ERROR] "+f, a...) }
//
// # AI analysis
//
// The AI step runs when [Options.Completer] is set or [Options.APIKey] is
// not empty. Its failures are returned together with the Result, whose
// Advice is then nil, so the raw report can still be printed.
package webfontanalyzer
