package common

import (
	"golang.org/x/crypto/blake2b"
)

// Blake2b256 hashes data into a Digest32.
func Blake2b256(data []byte) Digest32 {
	return Digest32(blake2b.Sum256(data))
}
