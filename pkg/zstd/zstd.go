// Package zstd wraps klauspost/compress/zstd with a shared decoder and
// per-level encoder pools.
package zstd

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// MaxDecodedSize bounds the output of Decompress.
const MaxDecodedSize = 256 << 20

// DefaultLevel is the zstd level used by callers that do not pick one.
const DefaultLevel = 3

var (
	decoder = mustDecoder()

	encoderPools = make(map[int]*sync.Pool)
	poolMu       sync.RWMutex
)

func mustDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0),
		zstd.WithDecoderMaxMemory(MaxDecodedSize),
	)
	if err != nil {
		panic(fmt.Sprintf("zstd: creating decoder: %v", err))
	}
	return dec
}

func getEncoderPool(level int) *sync.Pool {
	poolMu.RLock()
	pool, ok := encoderPools[level]
	poolMu.RUnlock()
	if ok {
		return pool
	}

	poolMu.Lock()
	defer poolMu.Unlock()

	if pool, ok = encoderPools[level]; ok {
		return pool
	}

	pool = &sync.Pool{
		New: func() any {
			enc, _ := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
				zstd.WithEncoderConcurrency(1),
			)
			return enc
		},
	}
	encoderPools[level] = pool
	return pool
}

// Compress compresses src at the given zstd level.
func Compress(src []byte, level int) []byte {
	pool := getEncoderPool(level)
	enc := pool.Get().(*zstd.Encoder)
	defer pool.Put(enc)

	return enc.EncodeAll(src, make([]byte, 0, len(src)/2+64))
}

// Decompress decompresses a zstd frame. Output larger than MaxDecodedSize
// is rejected.
func Decompress(src []byte) ([]byte, error) {
	out, err := decoder.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return out, nil
}
