package ai

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the tiktoken encoding used for prompt budgeting.
const DefaultEncoding = "o200k_base"

// CountTokens returns the number of tokens of text under the given encoding.
func CountTokens(encoding string, text string) (int, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return 0, fmt.Errorf("failed to load token encoding %q: %w", encoding, err)
	}
	return len(enc.Encode(text, nil, nil)), nil
}

// TruncateToTokens cuts text down to at most maxTokens tokens. The second
// return value reports whether anything was cut.
func TruncateToTokens(encoding string, text string, maxTokens int) (string, bool, error) {
	if maxTokens <= 0 {
		return text, false, nil
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return "", false, fmt.Errorf("failed to load token encoding %q: %w", encoding, err)
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text, false, nil
	}
	return enc.Decode(tokens[:maxTokens]), true, nil
}
