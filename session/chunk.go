package session

import (
	"regexp"
	"strings"
)

// tokenPattern matches one word together with the whitespace around it, so
// rejoining tokens reproduces the input byte for byte.
var tokenPattern = regexp.MustCompile(`\s*\S+\s*`)

// chunkText splits text into word-group chunks of the given size. The
// concatenation of the chunks is exactly the input, newlines included.
func chunkText(text string, size int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = defaultChunkSize
	}

	tokens := tokenPattern.FindAllString(text, -1)
	if len(tokens) == 0 {
		// Whitespace-only text.
		return []string{text}
	}

	var chunks []string
	for i := 0; i < len(tokens); i += size {
		end := i + size
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, strings.Join(tokens[i:end], ""))
	}
	return chunks
}
