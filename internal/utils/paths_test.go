package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetAbsolutePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		baseDir  string
		expected string
	}{
		{
			name:     "Absolute path is returned unchanged",
			path:     "/etc/lists/block.txt",
			baseDir:  "/opt/etc",
			expected: "/etc/lists/block.txt",
		},
		{
			name:     "Relative path is joined with base dir",
			path:     "lists/block.txt",
			baseDir:  "/opt/etc",
			expected: "/opt/etc/lists/block.txt",
		},
		{
			name:     "Result is cleaned",
			path:     "./lists/../block.txt",
			baseDir:  "/opt/etc",
			expected: "/opt/etc/block.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetAbsolutePath(tt.path, tt.baseDir); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestIsRegularFile(t *testing.T) {
	tmpDir := t.TempDir()

	filePath := filepath.Join(tmpDir, "file.txt")
	if err := os.WriteFile(filePath, []byte("content"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if !IsRegularFile(filePath) {
		t.Error("Expected regular file to be detected")
	}
	if IsRegularFile(tmpDir) {
		t.Error("Expected directory not to count as regular file")
	}
	if IsRegularFile(filepath.Join(tmpDir, "missing.txt")) {
		t.Error("Expected missing path not to count as regular file")
	}
}
