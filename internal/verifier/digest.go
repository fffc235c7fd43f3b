package verifier

import (
	"crypto/sha256"
	"strconv"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// personalMessagePrefix is the domain-separation tag of the personal-message
// hashing convention. Prefixing the message with the tag and its length before
// hashing prevents a signature made in one context from being replayed as a
// token signature.
const personalMessagePrefix = "\x19Ethereum Signed Message:\n"

// SigningDigest returns the 32-byte digest a signature over input is verified
// against. The plain variant is SHA-256 of the signing input; the personal
// variant is keccak256 of the prefix-framed input.
func SigningDigest(input []byte, personal bool) [32]byte {
	if !personal {
		return sha256.Sum256(input)
	}

	framed := make([]byte, 0, len(personalMessagePrefix)+20+len(input))
	framed = append(framed, personalMessagePrefix...)
	framed = append(framed, strconv.Itoa(len(input))...)
	framed = append(framed, input...)

	var digest [32]byte
	copy(digest[:], ethcrypto.Keccak256(framed))
	return digest
}
