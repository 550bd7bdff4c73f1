package sl2

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/falk/sl2-go/pkg/crypto"
)

const (
	ChecksumSize = 16
	IVSize       = 16
	lengthSize   = 4
)

// DecryptPayload returns the content of an entry payload.
//
// An encrypted payload is laid out as checksum || iv || ciphertext. The
// iv || ciphertext region decrypts to an echo of the iv, a little-endian
// int32 length, the content, and padding. With a nil key the payload is
// stored in the clear and only the checksum is stripped. The checksum is
// never verified.
func DecryptPayload(payload, key []byte) ([]byte, error) {
	if key == nil {
		if len(payload) < ChecksumSize {
			return nil, fmt.Errorf("%w: %d byte payload has no checksum", ErrDecryption, len(payload))
		}
		return append([]byte(nil), payload[ChecksumSize:]...), nil
	}

	if len(payload) < ChecksumSize+IVSize {
		return nil, fmt.Errorf("%w: %d byte payload is shorter than checksum and iv", ErrDecryption, len(payload))
	}
	body := payload[ChecksumSize:]
	iv := body[:IVSize]

	plain, err := crypto.CBCDecrypt(body, key, iv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	if len(plain) < IVSize+lengthSize {
		return nil, fmt.Errorf("%w: plaintext too short for length prefix", ErrDecryption)
	}

	n := int32(binary.LittleEndian.Uint32(plain[IVSize:]))
	start := IVSize + lengthSize
	if n < 0 || int(n) > len(plain)-start {
		return nil, fmt.Errorf("%w: declared length %d exceeds %d available bytes", ErrDecryption, n, len(plain)-start)
	}
	return append([]byte(nil), plain[start:start+int(n)]...), nil
}

// Decrypt sets the entry's Content, or its Err when the payload is invalid.
func (e *Entry) Decrypt(key []byte) error {
	e.Content, e.Err = DecryptPayload(e.Payload, key)
	if e.Err != nil {
		e.Err = fmt.Errorf("entry %d (%s): %w", e.Index, e.Name, e.Err)
	}
	return e.Err
}

// Decrypt decrypts every entry with key. A failing entry records its own
// error and does not stop the others; the joined entry errors are returned.
func (c *Container) Decrypt(key []byte) error {
	var errs []error
	for _, e := range c.Entries {
		if err := e.Decrypt(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
