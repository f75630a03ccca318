package response

import "iter"

// Body is the sequence of byte chunks an application returns.
// A non-nil error ends the sequence and fails the response.
type Body iter.Seq2[[]byte, error]

// Chunks returns a body that yields each chunk in turn
func Chunks(chunks ...[]byte) Body {
	return func(yield func([]byte, error) bool) {
		for _, c := range chunks {
			if !yield(c, nil) {
				return
			}
		}
	}
}

// Strings is Chunks for text
func Strings(chunks ...string) Body {
	return func(yield func([]byte, error) bool) {
		for _, c := range chunks {
			if !yield([]byte(c), nil) {
				return
			}
		}
	}
}

// Empty returns a body with no chunks
func Empty() Body {
	return func(yield func([]byte, error) bool) {}
}
