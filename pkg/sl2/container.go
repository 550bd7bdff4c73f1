// Package sl2 reads BND4 save containers: the header, the entry table, entry
// names and payloads, per-entry decryption, and title detection.
package sl2

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/falk/sl2-go/pkg/cursor"
)

const (
	// Magic is the tag at the start of every container.
	Magic = "BND4"

	HeaderSize      = 64
	EntryHeaderSize = 32
	EntryNameSize   = 26
)

// Header is the fixed 64-byte container header.
type Header struct {
	Magic           [4]byte
	Unknown1        uint64
	EntryCount      uint32
	Unknown2        uint64
	Signature       uint64
	EntryHeaderSize uint64
	DataOffset      uint64
	UTF16Names      bool
	Tail            [15]byte
}

// EntryHeader is one 32-byte record of the entry table.
type EntryHeader struct {
	Padding      uint64
	Size         uint64
	DataOffset   uint32
	NameOffset   uint32
	FooterLength uint64
}

// Entry is a named payload inside a container.
type Entry struct {
	Index   int
	Header  EntryHeader
	RawName [EntryNameSize]byte
	Name    string

	// Payload is the raw entry data as stored. It aliases the container buffer.
	Payload []byte

	// Content is the decrypted payload, set by Decrypt.
	Content []byte
	// Err is the decryption error for this entry, if any.
	Err error
}

// Container is a parsed BND4 file.
type Container struct {
	Header  Header
	Entries []*Entry
}

// Parse reads the container header, entry table, names and payloads from data.
// Payloads are left as stored; see Decrypt.
func Parse(data []byte) (*Container, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrMalformedContainer, len(data))
	}

	var header Header
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedContainer, err)
	}
	if string(header.Magic[:]) != Magic {
		return nil, fmt.Errorf("%w: invalid magic: expected %s, got %q", ErrMalformedContainer, Magic, header.Magic[:])
	}

	count := int(header.EntryCount)
	tableEnd := HeaderSize + uint64(count)*EntryHeaderSize
	if tableEnd > uint64(len(data)) {
		return nil, fmt.Errorf("%w: entry table for %d entries exceeds %d bytes", ErrMalformedContainer, count, len(data))
	}

	headers := make([]EntryHeader, count)
	if err := binary.Read(bytes.NewReader(data[HeaderSize:tableEnd]), binary.LittleEndian, headers); err != nil {
		return nil, fmt.Errorf("%w: entry table: %v", ErrMalformedContainer, err)
	}

	c := &Container{Header: header, Entries: make([]*Entry, 0, count)}
	for i, eh := range headers {
		e, err := readEntry(data, i, eh, header.UTF16Names)
		if err != nil {
			return nil, err
		}
		c.Entries = append(c.Entries, e)
	}

	if len(c.Entries) != int(c.Header.EntryCount) {
		return nil, fmt.Errorf("%w: read %d of %d entries", ErrMalformedContainer, len(c.Entries), c.Header.EntryCount)
	}
	return c, nil
}

func readEntry(data []byte, index int, eh EntryHeader, utf16 bool) (*Entry, error) {
	e := &Entry{Index: index, Header: eh}

	nameEnd := uint64(eh.NameOffset) + EntryNameSize
	if nameEnd > uint64(len(data)) {
		return nil, fmt.Errorf("%w: entry %d: name at %d exceeds %d bytes", ErrMalformedContainer, index, eh.NameOffset, len(data))
	}
	copy(e.RawName[:], data[eh.NameOffset:nameEnd])
	if utf16 {
		e.Name = cursor.DecodeUTF16(e.RawName[:])
	} else {
		e.Name = cursor.DecodeUTF8(e.RawName[:])
	}

	start := uint64(eh.DataOffset)
	if eh.Size > uint64(len(data)) || start > uint64(len(data))-eh.Size {
		return nil, fmt.Errorf("%w: entry %d: %d bytes at %d exceed %d bytes", ErrMalformedContainer, index, eh.Size, start, len(data))
	}
	e.Payload = data[start : start+eh.Size]
	return e, nil
}

// Entry returns the entry at index, or nil if out of range.
func (c *Container) Entry(index int) *Entry {
	if index < 0 || index >= len(c.Entries) {
		return nil
	}
	return c.Entries[index]
}
