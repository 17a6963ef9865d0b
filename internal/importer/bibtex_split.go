package importer

import (
	"regexp"
	"strings"
)

// chunk is one top-level @-block of a BibTeX file.
type chunk struct {
	kind string // lowercased entry type: article, string, comment, ...
	key  string // citation key as written, best effort
	line int    // 1-based line of the '@'
	text string
}

var chunkHead = regexp.MustCompile(`^@\s*([A-Za-z]+)\s*[{(]\s*([^,\s{}()=]*)`)

// splitEntries cuts text into top-level @-blocks by delimiter balancing.
// Text outside blocks is ignored, as BibTeX does. An unterminated block runs
// to the next line starting with '@' (or the end of input) and is left for
// the parser to reject.
func splitEntries(text string) []chunk {
	var chunks []chunk
	for i := 0; i < len(text); i++ {
		if text[i] != '@' {
			continue
		}
		m := chunkHead.FindStringSubmatch(text[i:])
		if m == nil {
			continue
		}

		end := blockEnd(text, i+len(m[0]))
		chunks = append(chunks, chunk{
			kind: strings.ToLower(m[1]),
			key:  m[2],
			line: strings.Count(text[:i], "\n") + 1,
			text: text[i:end],
		})
		i = end - 1
	}
	return chunks
}

// blockEnd returns the index just past the delimiter closing the block whose
// opening delimiter precedes from.
func blockEnd(text string, from int) int {
	open := strings.LastIndexAny(text[:from], "{(")
	closer := byte('}')
	if text[open] == '(' {
		closer = ')'
	}

	depth := 0
	for j := open + 1; j < len(text); j++ {
		switch c := text[j]; {
		case c == '\\':
			j++
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == closer && depth == 0:
			return j + 1
		}
	}
	if next := strings.Index(text[from:], "\n@"); next >= 0 {
		return from + next + 1
	}
	return len(text)
}
