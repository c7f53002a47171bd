package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/kataras/webfont-analyzer/pkg/fontsource"
	"github.com/kataras/webfont-analyzer/pkg/fontusage"
	"github.com/kataras/webfont-analyzer/pkg/netwatch"
)

// Defaults used by New for zero Options fields.
const (
	DefaultNavigationTimeout = 60 * time.Second
	DefaultFontTimeout       = 10 * time.Second
	DefaultScrollDelay       = time.Second
	DefaultSettleDelay       = 2 * time.Second
	DefaultViewportWidth     = 1920
	DefaultViewportHeight    = 1080

	// requestIdle is how long the network must stay quiet to count as idle.
	requestIdle = 500 * time.Millisecond

	maxFrameDepth = 5
)

var (
	// ErrLaunch is returned when the browser cannot be started or reached.
	ErrLaunch = errors.New("failed to start browser")
	// ErrNavigation is returned when the page does not load in time.
	ErrNavigation = errors.New("failed to load page")
	// ErrFontsNotReady is recorded when document.fonts does not settle in time.
	// It never fails a render.
	ErrFontsNotReady = errors.New("fonts not ready")
	// ErrFrameInaccessible is recorded for iframes whose document cannot be read.
	ErrFrameInaccessible = errors.New("frame not accessible")
)

// Options configures a Driver.
type Options struct {
	NavigationTimeout time.Duration
	FontTimeout       time.Duration
	ScrollDelay       time.Duration
	SettleDelay       time.Duration
	ViewportWidth     int
	ViewportHeight    int

	// Bin is the Chromium executable. Empty lets rod find or download one.
	Bin string
	// Visible opens a browser window instead of running headless.
	Visible bool
}

// FrameCapture holds the element styles of one document.
type FrameCapture struct {
	URL      string
	Elements []fontusage.ElementStyle
}

// Capture is the raw data collected from a rendered page.
type Capture struct {
	URL         string
	// DocumentURL is location.href after navigation, which differs from URL
	// when the page redirected. Empty when it could not be read.
	DocumentURL string

	Main        FrameCapture
	Frames      []FrameCapture
	StyleSheets []fontsource.StyleSheet
	HTML        string
	FontChecks  []fontsource.FontCheck
	FontFiles   []netwatch.FontFile

	// FontsReadyErr wraps ErrFontsNotReady when font loading did not settle.
	FontsReadyErr error
	// Errors collects non-fatal problems such as unreadable frames.
	Errors        []error
}

// Driver renders pages in a fresh headless Chromium per call.
type Driver struct {
	opts Options
}

// New returns a Driver, filling zero fields of opts with the defaults.
func New(opts Options) *Driver {
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = DefaultNavigationTimeout
	}
	if opts.FontTimeout <= 0 {
		opts.FontTimeout = DefaultFontTimeout
	}
	if opts.ScrollDelay <= 0 {
		opts.ScrollDelay = DefaultScrollDelay
	}
	if opts.SettleDelay < 0 {
		opts.SettleDelay = 0
	} else if opts.SettleDelay == 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.ViewportWidth <= 0 {
		opts.ViewportWidth = DefaultViewportWidth
	}
	if opts.ViewportHeight <= 0 {
		opts.ViewportHeight = DefaultViewportHeight
	}

	return &Driver{opts: opts}
}

// Options returns the effective options of d.
func (d *Driver) Options() Options {
	return d.opts
}

// Render loads pageURL, waits for it and its fonts to settle and collects
// element styles (main document and readable iframes), stylesheet dumps,
// font checks, the rendered HTML and every font response seen on the wire.
func (d *Driver) Render(ctx context.Context, pageURL string) (*Capture, error) {
	l := launcher.New().Context(ctx).Headless(!d.opts.Visible)
	if d.opts.Bin != "" {
		l = l.Bin(d.opts.Bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLaunch, err)
	}
	defer l.Cleanup()

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: connect: %v", ErrLaunch, err)
	}
	defer b.Close()

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: open page: %v", ErrLaunch, err)
	}

	c := &Capture{URL: pageURL}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             d.opts.ViewportWidth,
		Height:            d.opts.ViewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		c.Errors = append(c.Errors, fmt.Errorf("set viewport: %w", err))
	}

	rec := netwatch.NewRecorder()
	stop := observe(ctx, page, rec)
	defer stop()

	if err := d.navigate(page, pageURL); err != nil {
		return nil, err
	}

	fonts := page.Timeout(d.opts.FontTimeout)
	if err := evaluate(fonts, fontsReadyJS, nil); err != nil {
		c.FontsReadyErr = fmt.Errorf("%w: %v", ErrFontsNotReady, err)
	}
	fonts.CancelTimeout()

	if err := evaluate(page, scrollJS, nil, d.opts.ScrollDelay.Milliseconds()); err != nil {
		c.Errors = append(c.Errors, fmt.Errorf("scroll: %w", err))
	}

	if err := sleep(ctx, d.opts.SettleDelay); err != nil {
		return nil, err
	}

	c.Main.URL = pageURL
	if err := evaluate(page, `() => location.href`, &c.DocumentURL); err != nil {
		c.Errors = append(c.Errors, fmt.Errorf("read document url: %w", err))
	} else {
		c.Main.URL = c.DocumentURL
	}
	if err := evaluate(page, elementStylesJS, &c.Main.Elements); err != nil {
		return nil, fmt.Errorf("extract element styles: %w", err)
	}
	if err := evaluate(page, styleSheetsJS, &c.StyleSheets); err != nil {
		return nil, fmt.Errorf("extract stylesheets: %w", err)
	}
	if err := evaluate(page, fontChecksJS, &c.FontChecks, fontsource.CheckWeights, fontsource.CheckStyles); err != nil {
		c.Errors = append(c.Errors, fmt.Errorf("check loaded fonts: %w", err))
	}

	c.Frames = walkFrames(page, c, 1)

	if c.HTML, err = page.HTML(); err != nil {
		return nil, fmt.Errorf("read rendered html: %w", err)
	}

	stop()
	c.FontFiles = rec.Files()

	return c, nil
}

// navigate loads pageURL and waits for the load event and network idle,
// all within the navigation timeout.
func (d *Driver) navigate(page *rod.Page, pageURL string) error {
	nav := page.Timeout(d.opts.NavigationTimeout)
	defer nav.CancelTimeout()

	waitIdle := nav.WaitRequestIdle(requestIdle, nil, nil, nil)

	if err := nav.Navigate(pageURL); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNavigation, pageURL, err)
	}
	if err := nav.WaitLoad(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNavigation, pageURL, err)
	}

	waitIdle()
	if err := nav.GetContext().Err(); err != nil {
		return fmt.Errorf("%w: %s: network did not become idle: %v", ErrNavigation, pageURL, err)
	}

	return nil
}

// observe feeds every network response of page into rec until the returned
// stop function is called. Responses are captured from the moment observe
// returns, so it must run before navigation.
func observe(ctx context.Context, page *rod.Page, rec *netwatch.Recorder) (stop func()) {
	evCtx, cancel := context.WithCancel(ctx)

	wait := page.Context(evCtx).EachEvent(func(e *proto.NetworkResponseReceived) {
		if e.Response == nil {
			return
		}
		rec.Observe(e.Response.URL, contentType(e.Response), e.Response.Status)
	})

	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()

	var stopped bool
	return func() {
		if stopped {
			return
		}
		stopped = true
		cancel()
		<-done
	}
}

// walkFrames collects element styles from the iframes of page, depth first.
// Frames that cannot be read are skipped and noted in c.Errors.
func walkFrames(page *rod.Page, c *Capture, depth int) []FrameCapture {
	if depth > maxFrameDepth {
		return nil
	}

	iframes, err := page.Elements("iframe")
	if err != nil {
		c.Errors = append(c.Errors, fmt.Errorf("list iframes: %w", err))
		return nil
	}

	var frames []FrameCapture
	for _, el := range iframes {
		frame, err := el.Frame()
		if err != nil {
			c.Errors = append(c.Errors, fmt.Errorf("%w: %v", ErrFrameInaccessible, err))
			continue
		}

		var fc FrameCapture
		if err := evaluate(frame, `() => location.href`, &fc.URL); err != nil {
			c.Errors = append(c.Errors, fmt.Errorf("%w: %v", ErrFrameInaccessible, err))
			continue
		}
		if err := evaluate(frame, elementStylesJS, &fc.Elements); err != nil {
			c.Errors = append(c.Errors, fmt.Errorf("%w: %s: %v", ErrFrameInaccessible, fc.URL, err))
			continue
		}

		frames = append(frames, fc)
		frames = append(frames, walkFrames(frame, c, depth+1)...)
	}

	return frames
}

// evaluate runs js on page and decodes its result into v, unless v is nil.
func evaluate(page *rod.Page, js string, v any, args ...any) error {
	res, err := page.Evaluate(&rod.EvalOptions{
		JS:           js,
		JSArgs:       args,
		ByValue:      true,
		AwaitPromise: true,
	})
	if err != nil {
		return err
	}
	if v == nil || res == nil {
		return nil
	}

	raw, err := res.Value.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// contentType returns the Content-Type header of r, falling back to its MIME type.
func contentType(r *proto.NetworkResponse) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, "content-type") {
			return v.Str()
		}
	}
	return r.MIMEType
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
