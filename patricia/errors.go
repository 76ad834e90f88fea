package patricia

import "errors"

var (
	// ErrInvalidWord is returned by Insert for words that are not valid UTF-8 or contain
	// characters outside the configured alphabet.
	ErrInvalidWord = errors.New("patricia: invalid word")

	// ErrDecode wraps every snapshot decoding failure.
	ErrDecode = errors.New("patricia: decode error")

	// ErrInvariant is returned by Check when the node graph is not a valid patricia trie.
	ErrInvariant = errors.New("patricia: invariant violated")
)
