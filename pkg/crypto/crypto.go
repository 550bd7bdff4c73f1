// Package crypto holds the block-cipher primitives used on save entries.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"sync"
)

// ErrBlockSize is returned when input is not a whole number of AES blocks.
var ErrBlockSize = errors.New("crypto: data length not multiple of block size")

// Cipher cache to avoid recreating AES ciphers for the same key
var (
	cipherCache   = make(map[[16]byte]cipher.Block)
	cipherCacheMu sync.RWMutex
)

func getCachedCipher(key []byte) (cipher.Block, error) {
	if len(key) != aes.BlockSize {
		return nil, fmt.Errorf("key must be 16 bytes, got %d", len(key))
	}

	var keyArr [16]byte
	copy(keyArr[:], key)

	cipherCacheMu.RLock()
	block, ok := cipherCache[keyArr]
	cipherCacheMu.RUnlock()
	if ok {
		return block, nil
	}

	cipherCacheMu.Lock()
	defer cipherCacheMu.Unlock()

	if block, ok = cipherCache[keyArr]; ok {
		return block, nil
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	cipherCache[keyArr] = block
	return block, nil
}

// CBCDecrypt decrypts data with AES-128-CBC. The input is not modified and
// no padding is removed.
func CBCDecrypt(data, key, iv []byte) ([]byte, error) {
	block, err := getCachedCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("iv must be %d bytes, got %d", block.BlockSize(), len(iv))
	}
	if len(data)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBlockSize, len(data))
	}

	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, data)
	return out, nil
}

// CBCEncrypt encrypts data with AES-128-CBC. The caller pads data to the block size.
func CBCEncrypt(data, key, iv []byte) ([]byte, error) {
	block, err := getCachedCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("iv must be %d bytes, got %d", block.BlockSize(), len(iv))
	}
	if len(data)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBlockSize, len(data))
	}

	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, data)
	return out, nil
}
