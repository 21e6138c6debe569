package engine

import "strings"

// tokenize partitions the text into at most three segments: leading
// text, the anchor span, and trailing text. Without an anchor the whole
// input is a single text token; empty input yields no tokens. The
// partition is lossless: concatenating Raw over all tokens reproduces
// the input exactly.
func tokenize(text string, anchor *candidate) []Token {
	if text == "" {
		return nil
	}
	if anchor == nil {
		return []Token{{Kind: TokenText, Raw: text, Start: 0, End: len(text)}}
	}

	var tokens []Token
	if anchor.start > 0 {
		tokens = append(tokens, Token{Kind: TokenText, Raw: text[:anchor.start], Start: 0, End: anchor.start})
	}
	tokens = append(tokens, Token{Kind: TokenDate, Raw: anchor.raw, Start: anchor.start, End: anchor.end})
	if anchor.end < len(text) {
		tokens = append(tokens, Token{Kind: TokenText, Raw: text[anchor.end:], Start: anchor.end, End: len(text)})
	}
	return tokens
}

// reduceTitle joins the text tokens into the clean title, trimming and
// normalizing whitespace. The anchor's raw text never appears in it.
func reduceTitle(tokens []Token) string {
	var words []string
	for _, t := range tokens {
		if t.Kind == TokenText {
			words = append(words, strings.Fields(t.Raw)...)
		}
	}
	return strings.Join(words, " ")
}
