package tui

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

func TestIsTTY_NonFileWriter(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("non-*os.File writer should not be a TTY")
	}
}

func TestIsTTY_RegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "test")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	if IsTTY(f) {
		t.Error("regular file should not be a TTY")
	}
}

func TestPrinter_AutoOnBufferIsPlain(t *testing.T) {
	// Given a printer in auto mode writing to a buffer
	var buf bytes.Buffer
	p := NewPrinter(&buf, ColorAuto)

	// When every kind of line is written
	p.Prompt("Enter a command: ")
	p.Result("Contact added.")
	p.Notice("Welcome to the assistant bot!")
	p.Error("Given username was not found in the contact list.")

	// Then no escape codes appear
	if p.Styled() {
		t.Error("auto mode on a buffer should not be styled")
	}
	want := "Enter a command: Contact added.\nWelcome to the assistant bot!\nGiven username was not found in the contact list.\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrinter_AlwaysStyles(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, ColorAlways)

	p.Error("boom")

	if !p.Styled() {
		t.Fatal("always mode should be styled")
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("styled error should carry escape codes, got %q", buf.String())
	}
	if stripANSI(buf.String()) != "boom\n" {
		t.Errorf("text = %q, want %q", stripANSI(buf.String()), "boom\n")
	}
}

func TestPrinter_NeverIsPlain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, ColorNever)

	p.Notice("hi")
	if buf.String() != "hi\n" {
		t.Errorf("output = %q, want %q", buf.String(), "hi\n")
	}
}

func TestPrinter_EmptyResultWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, ColorNever).Result("")
	if buf.Len() != 0 {
		t.Errorf("empty result wrote %q", buf.String())
	}
}

func TestPaneWidths(t *testing.T) {
	tests := []struct {
		total, list, detail int
	}{
		{0, 0, 0},
		{90, 30, 60},
		{30, MinListWidth, 30 - MinListWidth},
		{10, MinListWidth, 0},
	}
	for _, tt := range tests {
		list, detail := PaneWidths(tt.total)
		if list != tt.list || detail != tt.detail {
			t.Errorf("PaneWidths(%d) = %d,%d, want %d,%d", tt.total, list, detail, tt.list, tt.detail)
		}
	}
}
