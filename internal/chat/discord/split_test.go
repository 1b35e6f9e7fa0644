package discord

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessageShort(t *testing.T) {
	got := SplitMessage("hello\n\nworld", 100)
	if len(got) != 1 || got[0] != "hello\n\nworld" {
		t.Errorf("Expected text unchanged, got %q", got)
	}
}

func TestSplitMessageAtParagraphs(t *testing.T) {
	paragraphs := []string{
		strings.Repeat("a", 40),
		strings.Repeat("b", 40),
		strings.Repeat("c", 40),
		strings.Repeat("d", 10),
	}
	text := strings.Join(paragraphs, "\n\n")

	got := SplitMessage(text, 90)
	want := []string{
		paragraphs[0] + "\n\n" + paragraphs[1],
		paragraphs[2] + "\n\n" + paragraphs[3],
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d chunks, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Chunk %d = %q, want %q", i, got[i], want[i])
		}
	}
	if strings.Join(got, "\n\n") != text {
		t.Error("Rejoined chunks differ from input")
	}
}

func TestSplitMessageHardCut(t *testing.T) {
	long := strings.Repeat("é", 25)
	got := SplitMessage("intro\n\n"+long, 10)

	for i, c := range got {
		if n := utf8.RuneCountInString(c); n > 10 {
			t.Errorf("Chunk %d has %d characters", i, n)
		}
		if !utf8.ValidString(c) {
			t.Errorf("Chunk %d is not valid UTF-8", i)
		}
	}
	if got[0] != "intro" {
		t.Errorf("Expected intro first, got %q", got[0])
	}
	if strings.Join(got[1:], "") != long {
		t.Error("Hard-cut chunks lost characters")
	}
}

func TestSplitMessageDiscordLimit(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 200; i++ {
		paragraphs = append(paragraphs, "`before market open` • **SYM** (Some Company Inc)\n> Estimate EPS: $1.23")
	}
	text := strings.Join(paragraphs, "\n\n")

	got := SplitMessage(text, MaxMessageLength)
	if len(got) < 2 {
		t.Fatalf("Expected several chunks, got %d", len(got))
	}
	for i, c := range got {
		if utf8.RuneCountInString(c) > MaxMessageLength {
			t.Errorf("Chunk %d exceeds limit", i)
		}
	}
	if strings.Join(got, "\n\n") != text {
		t.Error("Rejoined chunks differ from input")
	}
}
