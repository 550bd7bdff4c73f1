package sl2

import "github.com/falk/sl2-go/pkg/keys"

// Title identifies which game produced a container.
type Title int

const (
	TitleUnknown Title = iota
	// DSR is the remastered first title: 11 entries, AES encrypted.
	DSR
	// DS2 is the second title: 23 entries, AES encrypted. Only the container
	// and decryption layers are supported.
	DS2
	// DS3 is the third title: 12 entries, AES encrypted.
	DS3
	// ER is the open-world title: 12 entries, stored in the clear.
	ER
)

func (t Title) String() string {
	switch t {
	case DSR:
		return "DSR"
	case DS2:
		return "DS2"
	case DS3:
		return "DS3"
	case ER:
		return "ER"
	default:
		return "unknown"
	}
}

// KeyName returns the key-store name of the title's AES key, or "" when the
// title's entries are not encrypted.
func (t Title) KeyName() string {
	switch t {
	case DSR:
		return keys.DSR
	case DS2:
		return keys.DS2
	case DS3:
		return keys.DS3
	default:
		return ""
	}
}

// Encrypted reports whether entries of this title carry AES-CBC payloads.
func (t Title) Encrypted() bool {
	return t.KeyName() != ""
}

// EntryCount is the number of container entries the title writes.
func (t Title) EntryCount() int {
	switch t {
	case DSR:
		return 11
	case DS2:
		return 23
	case DS3, ER:
		return 12
	default:
		return 0
	}
}
