package netwatch

import (
	"fmt"
	"sync"
	"testing"
)

func TestIsFontFile(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		want        bool
	}{
		{
			name: "woff2 by extension",
			url:  "https://fonts.gstatic.com/s/inter/v12/abc.woff2",
			want: true,
		},
		{
			name: "uppercase extension with query",
			url:  "https://cdn.example.com/fonts/Brand.TTF?v=3",
			want: true,
		},
		{
			name:        "font content type",
			url:         "https://cdn.example.com/f/123",
			contentType: "font/woff2",
			want:        true,
		},
		{
			name:        "legacy opentype content type",
			url:         "https://cdn.example.com/f/123",
			contentType: "application/x-font-opentype",
			want:        true,
		},
		{
			name:        "woff in application type",
			url:         "https://cdn.example.com/f/123",
			contentType: "application/font-woff",
			want:        true,
		},
		{
			name:        "svg font is ignored",
			url:         "https://cdn.example.com/icons",
			contentType: "image/svg+xml; font",
			want:        false,
		},
		{
			name:        "stylesheet from a font host",
			url:         "https://fonts.googleapis.com/css2?family=Inter",
			contentType: "text/css; charset=utf-8",
			want:        false,
		},
		{
			name:        "font extension inside a directory name",
			url:         "https://example.com/woff2-guide/index.html",
			contentType: "text/html",
			want:        false,
		},
		{
			name: "fragment after extension",
			url:  "https://cdn.example.com/fonts/Brand.otf#face",
			want: true,
		},
		{
			name:        "extension only in query string",
			url:         "https://example.com/download?file=a.woff",
			contentType: "text/html",
			want:        false,
		},
		{
			name:        "plain image",
			url:         "https://example.com/logo.png",
			contentType: "image/png",
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFontFile(tt.url, tt.contentType); got != tt.want {
				t.Errorf("IsFontFile(%q, %q) = %v, want %v", tt.url, tt.contentType, got, tt.want)
			}
		})
	}
}

func TestRecorder_NoDedupAndDefaultType(t *testing.T) {
	r := NewRecorder()

	r.Observe("https://example.com/a.woff2", "", 200)
	r.Observe("https://example.com/a.woff2", "", 304)
	r.Observe("https://example.com/page.html", "text/html", 200)

	files := r.Files()
	if len(files) != 2 {
		t.Fatalf("Files() = %d entries, want 2", len(files))
	}
	if files[0].Type != "font" {
		t.Errorf("Type = %q, want default \"font\"", files[0].Type)
	}
	if files[1].Status != 304 {
		t.Errorf("second Status = %d, want 304", files[1].Status)
	}

	files[0].URL = "mutated"
	if r.Files()[0].URL == "mutated" {
		t.Error("Files() returned the recorder's backing slice")
	}
}

func TestRecorder_ConcurrentObserve(t *testing.T) {
	r := NewRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Observe(fmt.Sprintf("https://example.com/%d.woff", i), "font/woff", 200)
		}(i)
	}
	wg.Wait()

	if got := len(r.Files()); got != 50 {
		t.Errorf("Files() = %d entries, want 50", got)
	}
}
