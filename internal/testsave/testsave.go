// Package testsave builds synthetic BND4 containers for tests.
package testsave

import (
	"encoding/binary"

	"github.com/falk/sl2-go/pkg/crypto"
	"github.com/falk/sl2-go/pkg/cursor"
)

const (
	headerSize      = 64
	entryHeaderSize = 32
	nameSize        = 26
)

// Entry is one entry to place in a container.
type Entry struct {
	Name string
	// Content is encoded as an entry payload with the container key.
	Content []byte
	// Raw, when set, is written as the payload verbatim.
	Raw []byte
}

// Options control how Build frames the container.
type Options struct {
	// Key encrypts contents. Nil stores contents in the clear behind a checksum.
	Key   []byte
	UTF16 bool
}

// IV is the fixed iv Build uses.
var IV = []byte{0x10, 0x32, 0x54, 0x76, 0x98, 0xba, 0xdc, 0xfe, 0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0x23, 0x01}

// Payload frames content the way a title stores an entry.
func Payload(content, key []byte) []byte {
	checksum := make([]byte, 16)
	if key == nil {
		return append(checksum, content...)
	}

	plain := make([]byte, 4, 4+len(content)+16)
	binary.LittleEndian.PutUint32(plain, uint32(len(content)))
	plain = append(plain, content...)
	if pad := len(plain) % 16; pad != 0 {
		plain = append(plain, make([]byte, 16-pad)...)
	}
	ct, err := crypto.CBCEncrypt(plain, key, IV)
	if err != nil {
		panic(err)
	}

	out := append(checksum, IV...)
	return append(out, ct...)
}

// Build returns a complete container holding entries.
func Build(entries []Entry, opts Options) []byte {
	payloads := make([][]byte, len(entries))
	for i, e := range entries {
		if e.Raw != nil {
			payloads[i] = e.Raw
		} else {
			payloads[i] = Payload(e.Content, opts.Key)
		}
	}

	namesStart := headerSize + entryHeaderSize*len(entries)
	dataStart := namesStart + nameSize*len(entries)
	size := dataStart
	for _, p := range payloads {
		size += len(p)
	}
	out := make([]byte, size)

	copy(out, "BND4")
	binary.LittleEndian.PutUint32(out[12:], uint32(len(entries)))
	binary.LittleEndian.PutUint64(out[32:], entryHeaderSize)
	binary.LittleEndian.PutUint64(out[40:], uint64(dataStart))
	if opts.UTF16 {
		out[48] = 1
	}

	off := dataStart
	for i, e := range entries {
		h := out[headerSize+i*entryHeaderSize:]
		binary.LittleEndian.PutUint64(h[0:], 0x50)
		binary.LittleEndian.PutUint64(h[8:], uint64(len(payloads[i])))
		binary.LittleEndian.PutUint32(h[16:], uint32(off))
		nameOff := namesStart + i*nameSize
		binary.LittleEndian.PutUint32(h[20:], uint32(nameOff))

		name := []byte(e.Name)
		if opts.UTF16 {
			name = cursor.EncodeUTF16(e.Name)
		}
		copy(out[nameOff:nameOff+nameSize], name)

		copy(out[off:], payloads[i])
		off += len(payloads[i])
	}
	return out
}

// PutU32 writes v at off in b.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:], v)
}

// PutU64 writes v at off in b.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:], v)
}

// PutUTF16 writes s as UTF-16LE at off in b.
func PutUTF16(b []byte, off int, s string) {
	copy(b[off:], cursor.EncodeUTF16(s))
}
