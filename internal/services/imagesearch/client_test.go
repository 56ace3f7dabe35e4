package imagesearch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mangareel/internal/services/imagesearch"
)

func TestSearchReturnsOriginalURL(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"images_results": [{"original": "https://img.example/berserk.jpg", "thumbnail": "https://img.example/t.jpg"}]}`))
	}))
	defer server.Close()

	client := imagesearch.New("key", server.URL, time.Second)
	url, err := client.Search(context.Background(), "Berserk")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if url != "https://img.example/berserk.jpg" {
		t.Fatalf("unexpected url: %q", url)
	}
	if gotQuery != "Berserk manga cover" {
		t.Fatalf("unexpected query: %q", gotQuery)
	}
}

func TestSearchFallsBackToThumbnail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"images": [{"thumbnail": "https://img.example/t.jpg"}]}`))
	}))
	defer server.Close()

	client := imagesearch.New("key", server.URL, time.Second)
	url, err := client.Search(context.Background(), "Berserk")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if url != "https://img.example/t.jpg" {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestSearchNoResultsReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"images_results": []}`))
	}))
	defer server.Close()

	client := imagesearch.New("key", server.URL, time.Second)
	url, err := client.Search(context.Background(), "Obscure Title")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if url != "" {
		t.Fatalf("expected empty url, got %q", url)
	}
}

func TestDisabledClientFindsNothing(t *testing.T) {
	client := imagesearch.New("", "", time.Second)
	url, err := client.Search(context.Background(), "Berserk")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if url != "" {
		t.Fatalf("expected empty url from disabled client, got %q", url)
	}
}

func TestSearchSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	client := imagesearch.New("key", server.URL, time.Second)
	if _, err := client.Search(context.Background(), "Berserk"); err == nil {
		t.Fatal("expected error for HTTP 403")
	}
}

func TestDownloadWritesFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "cover.jpg")
	if err := imagesearch.Download(context.Background(), server.Client(), server.URL, dest); err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read cover: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("unexpected contents: %q", data)
	}
}

func TestDownloadFailsOnHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "cover.jpg")
	if err := imagesearch.Download(context.Background(), server.Client(), server.URL, dest); err == nil {
		t.Fatal("expected error for HTTP 404")
	}
}
