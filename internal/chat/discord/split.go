package discord

import (
	"strings"
	"unicode/utf8"
)

// MaxMessageLength is Discord's limit for message content.
const MaxMessageLength = 2000

const paragraphSep = "\n\n"

// SplitMessage breaks text into chunks of at most limit characters, cutting
// between paragraphs where possible. Paragraphs longer than limit are cut
// hard.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var (
		chunks []string
		cur    strings.Builder
		curLen int
	)
	flush := func() {
		if curLen > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, p := range strings.Split(text, paragraphSep) {
		pLen := utf8.RuneCountInString(p)
		for pLen > limit {
			flush()
			r := []rune(p)
			chunks = append(chunks, string(r[:limit]))
			p = string(r[limit:])
			pLen -= limit
		}

		sep := 0
		if curLen > 0 {
			sep = len(paragraphSep)
		}
		if curLen+sep+pLen > limit {
			flush()
			sep = 0
		}
		if sep > 0 {
			cur.WriteString(paragraphSep)
		}
		cur.WriteString(p)
		curLen += sep + pLen
	}
	flush()

	return chunks
}
