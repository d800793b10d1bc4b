package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsPDFPath(t *testing.T) {
	tmpDir := t.TempDir()
	pdfPath := filepath.Join(tmpDir, "book.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	tests := []struct {
		name string
		arg  string
		want bool
	}{
		{"existing pdf", pdfPath, true},
		{"missing pdf", filepath.Join(tmpDir, "nope.pdf"), false},
		{"raw text", "a man walked into a forest", false},
		{"text mentioning pdf", "read the.pdf manual", false},
		{"directory named pdf", tmpDir, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPDFPath(tt.arg); got != tt.want {
				t.Errorf("IsPDFPath(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestExtractTextFromStream(t *testing.T) {
	tests := []struct {
		name     string
		stream   string
		expected string
	}{
		{
			name:     "Tj operator",
			stream:   "BT\n(Hello world) Tj\nET",
			expected: "Hello world",
		},
		{
			name:     "TJ array operator",
			stream:   "[(The ) -120 (storm ) -80 (broke)] TJ",
			expected: "The storm broke",
		},
		{
			name:     "multiple strings on one line",
			stream:   "(fog ) (rolled in) Tj",
			expected: "fog rolled in",
		},
		{
			name:     "octal escape",
			stream:   `(dark\040woods) Tj`,
			expected: "dark woods",
		},
		{
			name:     "no text operators",
			stream:   "q\n1 0 0 1 50 50 cm\nQ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractTextFromStream([]byte(tt.stream))
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDecodePDFString(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"plain", "hello", "hello"},
		{"newline escape", `line1\nline2`, "line1\nline2"},
		{"tab escape", `a\tb`, "a\tb"},
		{"backslash escape", `a\\b`, `a\b`},
		{"octal space", `a\040b`, "a b"},
		{"short octal", `bell\7x`, "bell\x07x"},
		{"unknown escape passes through", `a\qb`, "aqb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodePDFString([]byte(tt.raw))
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"collapses runs of whitespace", "a  b\n\nc\t d", "a b c d"},
		{"trims edges", "  hello  ", "hello"},
		{"drops unprintable runes", "a\x00b", "ab"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanText(tt.input)
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPDFPagesRejectsNonPDF(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "fake.pdf")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := PDFPages(path); err == nil {
		t.Fatal("expected error for invalid PDF content")
	}
}
