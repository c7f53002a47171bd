package netwatch

import (
	"net/url"
	"path"
	"strings"
	"sync"
)

// FontFile is a network response that delivered a font resource.
type FontFile struct {
	URL    string `json:"url"`
	Type   string `json:"type"` // response content type, "font" when the server sent none
	Status int    `json:"status"`
}

// fontExtensions are the file extensions treated as font downloads.
var fontExtensions = []string{".woff", ".woff2", ".ttf", ".otf", ".eot"}

// IsFontFile reports whether a response looks like a font download, judged by
// the extension of the URL path or by the response content type.
// SVG responses are never fonts, even when their content type mentions "font".
func IsFontFile(rawURL, contentType string) bool {
	if hasFontExtension(rawURL) {
		return true
	}

	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "font") && !strings.Contains(ct, "svg") {
		return true
	}

	return strings.Contains(ct, "woff") || strings.Contains(ct, "ttf") || strings.Contains(ct, "opentype")
}

func hasFontExtension(rawURL string) bool {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}

	ext := strings.ToLower(path.Ext(p))
	for _, fe := range fontExtensions {
		if ext == fe {
			return true
		}
	}
	return false
}

// Recorder collects font responses observed during a page load.
// Observe may be called from the browser event goroutine while the page loads.
type Recorder struct {
	mu    sync.Mutex
	files []FontFile
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{files: []FontFile{}}
}

// Observe records the response if it is a font. Repeated fetches of the same
// URL are recorded every time. It reports whether the response was recorded.
func (r *Recorder) Observe(rawURL, contentType string, status int) bool {
	if !IsFontFile(rawURL, contentType) {
		return false
	}

	if contentType == "" {
		contentType = "font"
	}

	r.mu.Lock()
	r.files = append(r.files, FontFile{URL: rawURL, Type: contentType, Status: status})
	r.mu.Unlock()

	return true
}

// Files returns a copy of the recorded responses in arrival order.
func (r *Recorder) Files() []FontFile {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]FontFile, len(r.files))
	copy(out, r.files)
	return out
}
