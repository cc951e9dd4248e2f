package notes

import (
	"bytes"
	"strings"
	"testing"
)

func TestDecodeTranscriptStripsBOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Lecture 1")...)

	got, err := DecodeTranscript(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "Lecture 1" {
		t.Fatalf("unexpected transcript: %q", got)
	}
}

func TestDecodeTranscriptUTF16(t *testing.T) {
	// "Hi" in UTF-16LE with BOM.
	input := []byte{0xFF, 0xFE, 'H', 0x00, 'i', 0x00}

	got, err := DecodeTranscript(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "Hi" {
		t.Fatalf("unexpected transcript: %q", got)
	}
}

func TestDecodeTranscriptKeepsText(t *testing.T) {
	input := "  café\r\nnaïve  \n"

	got, err := DecodeTranscript(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != input {
		t.Fatalf("expected transcript to be unchanged, got %q", got)
	}
}
