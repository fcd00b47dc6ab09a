package docinfo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func serve(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// --- Extract Tests ---

func TestExtract_TitleFromDocumentTitleElement(t *testing.T) {
	srv := serve(t, `<html><head><title>fallback</title></head>
		<body><h1 class="document_title">My Report: 2024</h1></body></html>`)

	info, err := NewExtractor("", time.Second).Extract(context.Background(), srv.URL+"/document/123456/my-report/")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	// Title is sanitized: the colon becomes an underscore.
	if info.Title != "My Report_ 2024" {
		t.Errorf("Title = %q, want %q", info.Title, "My Report_ 2024")
	}
	if info.DocID != "123456" {
		t.Errorf("DocID = %q, want %q", info.DocID, "123456")
	}
}

func TestExtract_FallsBackToPageTitle(t *testing.T) {
	srv := serve(t, `<html><head><title>Page Title</title></head><body><div>no h1</div></body></html>`)

	info, err := NewExtractor("", time.Second).Extract(context.Background(), srv.URL+"/document/7/x/")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if info.Title != "Page Title" {
		t.Errorf("Title = %q, want %q", info.Title, "Page Title")
	}
}

func TestExtract_NoTitle_Placeholder(t *testing.T) {
	srv := serve(t, `<html><body><div></div></body></html>`)

	info, err := NewExtractor("", time.Second).Extract(context.Background(), srv.URL+"/document/7/x/")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if info.Title != PlaceholderTitle {
		t.Errorf("Title = %q, want %q", info.Title, PlaceholderTitle)
	}
}

func TestExtract_FetchFailure_ReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewExtractor("", time.Second).Extract(context.Background(), srv.URL+"/document/7/x/")
	if err == nil {
		t.Fatal("Extract() should return an error on HTTP 500")
	}
}

// --- Fallback Tests ---

func TestFallback(t *testing.T) {
	info := Fallback("https://www.scribd.com/document/42/thing/")
	if info.Title != PlaceholderTitle {
		t.Errorf("Title = %q, want %q", info.Title, PlaceholderTitle)
	}
	if info.DocID != "42" {
		t.Errorf("DocID = %q, want %q", info.DocID, "42")
	}
	if info.SourceURL != "https://www.scribd.com/document/42/thing/" {
		t.Errorf("SourceURL = %q", info.SourceURL)
	}
}
