package llm

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

var codecOnce = sync.OnceValues(func() (tokenizer.Codec, error) {
	return tokenizer.Get(tokenizer.Cl100kBase)
})

// CountTokens estimates the token count of text using the cl100k_base
// encoding. Backends that report exact usage take precedence; this is the
// fallback for those that do not. Returns 0 when the codec cannot be loaded
// or the text cannot be encoded.
func CountTokens(text string) int {
	codec, err := codecOnce()
	if err != nil {
		return 0
	}
	n, err := codec.Count(text)
	if err != nil {
		return 0
	}
	return n
}
