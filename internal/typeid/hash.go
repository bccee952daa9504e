package typeid

import (
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
)

// FNV-1a 32-bit parameters.
const (
	OffsetBasis32 uint32 = 2166136261
	Prime32       uint32 = 16777619
)

// FNV1a32 hashes s with 32-bit FNV-1a.
func FNV1a32(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// Sum64 hashes s with 64-bit xxhash.
func Sum64(s string) uint64 {
	return xxhash.Sum64String(s)
}
