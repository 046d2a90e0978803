package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestGetSimpleText_TrimsLine(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("  hello world  \n"))
	var out bytes.Buffer

	got, err := GetSimpleText(reader, "Say something", &out)
	if err != nil {
		t.Fatalf("GetSimpleText err: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("got %q, want %q", got, "hello world")
	}
	if !strings.Contains(out.String(), "Say something") {
		t.Fatalf("prompt was not printed: %q", out.String())
	}
}

func TestGetSimpleText_PartialLineBeforeEOF(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("no newline"))
	var out bytes.Buffer

	got, err := GetSimpleText(reader, "p", &out)
	if err != nil {
		t.Fatalf("GetSimpleText err: %v", err)
	}
	if got != "no newline" {
		t.Fatalf("got %q", got)
	}
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	defer func() { readPassword = orig }()

	var out bytes.Buffer
	got, err := GetPassword("Password", &out)
	if err != nil {
		t.Fatalf("GetPassword err: %v", err)
	}
	if got != "s3cret" {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(out.String(), "Password") {
		t.Fatalf("prompt was not printed: %q", out.String())
	}
}

func TestGetConfirm(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"no\n", false},
		{"anything\n", false},
	}

	for _, tt := range tests {
		reader := bufio.NewReader(strings.NewReader(tt.in))
		var out bytes.Buffer
		got, err := GetConfirm(reader, "Sure?", &out)
		if err != nil {
			t.Fatalf("GetConfirm(%q) err: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("GetConfirm(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
