package sl2

import "errors"

// Sentinel errors. Returned errors wrap these with context; test with errors.Is.
var (
	// ErrMalformedContainer is returned when the container framing or a
	// decoded entry is shorter or shaped differently than its layout requires.
	ErrMalformedContainer = errors.New("sl2: malformed container")

	// ErrDecryption is returned when an entry payload cannot be decrypted
	// or its declared plaintext length is out of range. It applies to a single
	// entry; other entries of the same container may still decode.
	ErrDecryption = errors.New("sl2: decryption failed")

	// ErrUnsupportedVariant is returned when the container does not match any
	// known title layout.
	ErrUnsupportedVariant = errors.New("sl2: unsupported variant")
)
