package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// DefaultMaxTextBytes caps preprocessor input to keep memory bounded
const DefaultMaxTextBytes = 50000

var (
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	emailPattern      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	specialPattern    = regexp.MustCompile(`[^a-zA-Z0-9_\s.,!?'"-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Preprocessor normalizes raw input text before claim extraction
type Preprocessor struct {
	maxBytes int
}

// NewPreprocessor creates a preprocessor with the given input cap
func NewPreprocessor(maxBytes int) *Preprocessor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxTextBytes
	}
	return &Preprocessor{maxBytes: maxBytes}
}

// Clean truncates, strips markup, and normalizes text. Capitalization is
// preserved so entity extraction still works; pass lowercase for search use.
func (p *Preprocessor) Clean(text string, lowercase bool) string {
	if text == "" {
		return ""
	}
	if len(text) > p.maxBytes {
		text = text[:p.maxBytes]
	}

	if looksLikeHTML(text) {
		text = stripHTML(text)
	}

	if lowercase {
		text = strings.ToLower(text)
	}

	text = urlPattern.ReplaceAllString(text, "")
	text = emailPattern.ReplaceAllString(text, "")
	text = specialPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// looksLikeHTML reports whether the input likely contains markup
func looksLikeHTML(text string) bool {
	open := strings.IndexByte(text, '<')
	if open == -1 {
		return false
	}
	return strings.IndexByte(text[open:], '>') != -1
}

// stripHTML extracts visible text nodes, skipping scripts and styles
func stripHTML(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return content
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String()
}

// SplitSentences splits text on sentence terminators. Abbreviation handling
// is heuristic: a terminator only closes a sentence when followed by a space
// or end of input.
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
				sentence := strings.TrimSpace(current.String())
				if sentence != "" {
					sentences = append(sentences, sentence)
				}
				current.Reset()
			}
		}
	}

	if rest := strings.TrimSpace(current.String()); rest != "" {
		sentences = append(sentences, rest)
	}

	return sentences
}

// Words splits text into word tokens, trimming surrounding punctuation
func Words(text string) []string {
	var words []string
	for _, field := range strings.Fields(text) {
		word := strings.Trim(field, ".,;:!?\"'()[]{}")
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}

// IsStopword reports whether a word carries no search value
func IsStopword(word string) bool {
	return stopwords[strings.ToLower(word)]
}

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "been": true, "but": true, "by": true,
	"can": true, "could": true, "did": true, "do": true, "does": true,
	"for": true, "from": true, "had": true, "has": true, "have": true,
	"he": true, "her": true, "his": true, "how": true, "i": true, "if": true,
	"in": true, "into": true, "is": true, "it": true, "its": true,
	"me": true, "my": true, "no": true, "not": true, "of": true, "on": true,
	"or": true, "our": true, "she": true, "so": true, "than": true,
	"that": true, "the": true, "their": true, "them": true, "then": true,
	"there": true, "these": true, "they": true, "this": true, "to": true,
	"was": true, "we": true, "were": true, "what": true, "when": true,
	"where": true, "which": true, "who": true, "will": true, "with": true,
	"would": true, "you": true, "your": true,
}
