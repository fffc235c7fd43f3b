package did

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

// Document is the subset of a resolved DID document that token verification
// cares about: the subject identifier and its ordered verification methods.
// The order is significant, the first method matching a signature wins.
type Document struct {
	ID                  string
	VerificationMethods []VerificationMethod
}

// VerificationMethod is one published key entry of a DID document. ID and
// Controller are passthrough metadata, verification only looks at Key.
type VerificationMethod struct {
	ID         string
	Type       string
	Controller string
	Key        KeyMaterial
}

// KeyMaterial is the key payload of a verification method. Exactly one of the
// four cases is populated per method, enforced at decode time, so consumers
// type-switch instead of probing optional fields.
type KeyMaterial interface {
	keyMaterial()
}

// FullKey is a 65-byte uncompressed SEC1 secp256k1 point (0x04 | X | Y).
type FullKey []byte

// CompressedKey is a 33-byte compressed SEC1 secp256k1 point.
type CompressedKey []byte

// AddressKey is a 0x-prefixed account address derived from a secp256k1 key.
// Addresses compare case-insensitively since checksum casing varies.
type AddressKey string

// Ed25519Key is a raw 32-byte Ed25519 verification key.
type Ed25519Key []byte

func (FullKey) keyMaterial()       {}
func (CompressedKey) keyMaterial() {}
func (AddressKey) keyMaterial()    {}
func (Ed25519Key) keyMaterial()    {}

const (
	uncompressedPointLen = 65
	compressedPointLen   = 33
	ed25519KeyLen        = 32
)

// verificationMethodJSON is the wire form of a verification method. The four
// key fields are mutually exclusive.
type verificationMethodJSON struct {
	ID              string `json:"id"`
	Type            string `json:"type,omitempty"`
	Controller      string `json:"controller,omitempty"`
	PublicKeyHex    string `json:"publicKeyHex,omitempty"`
	PublicKeyBase58 string `json:"publicKeyBase58,omitempty"`
	PublicKeyBase64 string `json:"publicKeyBase64,omitempty"`
	EthereumAddress string `json:"ethereumAddress,omitempty"`
}

// UnmarshalJSON decodes a published verification method, mapping whichever
// key encoding it carries onto the matching KeyMaterial case. A method with
// zero or more than one key field is rejected.
func (m *VerificationMethod) UnmarshalJSON(data []byte) error {
	var wire verificationMethodJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.Wrap(err, "failed to decode verification method")
	}

	populated := 0
	for _, field := range []string{wire.PublicKeyHex, wire.PublicKeyBase58, wire.PublicKeyBase64, wire.EthereumAddress} {
		if field != "" {
			populated++
		}
	}
	if populated != 1 {
		return errors.Errorf("verification method %q must carry exactly one key encoding, got %d", wire.ID, populated)
	}

	key, err := wire.keyMaterial()
	if err != nil {
		return errors.Wrapf(err, "verification method %q", wire.ID)
	}

	*m = VerificationMethod{
		ID:         wire.ID,
		Type:       wire.Type,
		Controller: wire.Controller,
		Key:        key,
	}
	return nil
}

func (w *verificationMethodJSON) keyMaterial() (KeyMaterial, error) {
	switch {
	case w.PublicKeyHex != "":
		raw, err := hex.DecodeString(w.PublicKeyHex)
		if err != nil {
			return nil, errors.Wrap(err, "invalid publicKeyHex")
		}
		switch len(raw) {
		case uncompressedPointLen:
			return FullKey(raw), nil
		case compressedPointLen:
			return CompressedKey(raw), nil
		default:
			return nil, errors.Errorf("publicKeyHex must encode %d or %d bytes, got %d", uncompressedPointLen, compressedPointLen, len(raw))
		}
	case w.PublicKeyBase58 != "":
		raw := base58.Decode(w.PublicKeyBase58)
		if len(raw) != ed25519KeyLen {
			return nil, errors.Errorf("publicKeyBase58 must encode %d bytes, got %d", ed25519KeyLen, len(raw))
		}
		return Ed25519Key(raw), nil
	case w.PublicKeyBase64 != "":
		raw, err := base64.StdEncoding.DecodeString(w.PublicKeyBase64)
		if err != nil {
			return nil, errors.Wrap(err, "invalid publicKeyBase64")
		}
		if len(raw) != ed25519KeyLen {
			return nil, errors.Errorf("publicKeyBase64 must encode %d bytes, got %d", ed25519KeyLen, len(raw))
		}
		return Ed25519Key(raw), nil
	default:
		return AddressKey(w.EthereumAddress), nil
	}
}

// MarshalJSON emits the wire form matching the populated key case.
func (m VerificationMethod) MarshalJSON() ([]byte, error) {
	wire := verificationMethodJSON{
		ID:         m.ID,
		Type:       m.Type,
		Controller: m.Controller,
	}
	switch key := m.Key.(type) {
	case FullKey:
		wire.PublicKeyHex = hex.EncodeToString(key)
	case CompressedKey:
		wire.PublicKeyHex = hex.EncodeToString(key)
	case AddressKey:
		wire.EthereumAddress = string(key)
	case Ed25519Key:
		wire.PublicKeyBase58 = base58.Encode(key)
	default:
		return nil, errors.Errorf("verification method %q has no key material", m.ID)
	}
	return json.Marshal(wire)
}

type documentJSON struct {
	ID                 string               `json:"id"`
	VerificationMethod []VerificationMethod `json:"verificationMethod,omitempty"`
	// publicKey is the pre-verificationMethod field name, still published by
	// older registries.
	PublicKey []VerificationMethod `json:"publicKey,omitempty"`
}

// UnmarshalJSON decodes a DID document, accepting both the current
// verificationMethod field and the legacy publicKey field.
func (d *Document) UnmarshalJSON(data []byte) error {
	var wire documentJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.Wrap(err, "failed to decode DID document")
	}
	methods := wire.VerificationMethod
	if len(methods) == 0 {
		methods = wire.PublicKey
	}
	*d = Document{ID: wire.ID, VerificationMethods: methods}
	return nil
}

// MarshalJSON emits the current verificationMethod form.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(documentJSON{ID: d.ID, VerificationMethod: d.VerificationMethods})
}
