package source

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/JuliusKoenig/mikrotik-addresslist/internal/errors"
)

func TestDownload_Successful(t *testing.T) {
	tmpDir := t.TempDir()

	testContent := "10.0.0.0/24\n192.168.1.1\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(testContent))
	}))
	defer server.Close()

	path, err := Download(server.URL, "test_list", tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expectedPath := filepath.Join(tmpDir, "test_list.lst")
	if path != expectedPath {
		t.Errorf("Expected path %s, got %s", expectedPath, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read downloaded file: %v", err)
	}
	if string(content) != testContent {
		t.Errorf("Expected content %q, got %q", testContent, string(content))
	}

	// Checksum sidecar must exist
	if _, err := os.Stat(path + ".md5"); err != nil {
		t.Errorf("Expected checksum file to exist: %v", err)
	}
}

func TestDownload_UnchangedContentSkipsWrite(t *testing.T) {
	tmpDir := t.TempDir()

	testContent := "10.0.0.0/24\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(testContent))
	}))
	defer server.Close()

	path, err := Download(server.URL, "test_list", tmpDir)
	if err != nil {
		t.Fatalf("First download failed: %v", err)
	}

	firstStat, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat downloaded file: %v", err)
	}

	if _, err := Download(server.URL, "test_list", tmpDir); err != nil {
		t.Fatalf("Second download failed: %v", err)
	}

	secondStat, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat downloaded file: %v", err)
	}

	if !secondStat.ModTime().Equal(firstStat.ModTime()) {
		t.Error("Expected unchanged content not to rewrite the file")
	}
}

func TestDownload_ConcurrentSameName(t *testing.T) {
	tmpDir := t.TempDir()

	// Each response differs so every download takes the write path.
	var counter atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := counter.Add(1)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "10.0.0.%d/32\n192.168.1.1\n", n%250)
	}))
	defer server.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Download(server.URL, "test_list", tmpDir); err != nil {
				t.Errorf("Concurrent download failed: %v", err)
			}
		}()
	}
	wg.Wait()

	// The file on disk must be one complete response, never a torn write.
	content, err := os.ReadFile(filepath.Join(tmpDir, "test_list.lst"))
	if err != nil {
		t.Fatalf("Failed to read downloaded file: %v", err)
	}
	if !regexp.MustCompile(`^10\.0\.0\.\d+/32\n192\.168\.1\.1\n$`).Match(content) {
		t.Errorf("Expected a complete response on disk, got %q", string(content))
	}

	// No temp files may be left behind.
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to list download directory: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp-") {
			t.Errorf("Leftover temp file: %s", entry.Name())
		}
	}
}

func TestDownload_HTTPError(t *testing.T) {
	tmpDir := t.TempDir()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Download(server.URL, "test_list", tmpDir)
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}
	if errors.CodeOf(err) != errors.ErrCodeDownload {
		t.Errorf("Expected DOWNLOAD_ERROR, got: %v", err)
	}
}

func TestDownload_ConnectionRefused(t *testing.T) {
	tmpDir := t.TempDir()

	// Use a server that is already closed
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := Download(url, "test_list", tmpDir)
	if err == nil {
		t.Fatal("Expected error for unreachable server")
	}
	if errors.CodeOf(err) != errors.ErrCodeDownload {
		t.Errorf("Expected DOWNLOAD_ERROR, got: %v", err)
	}
}
