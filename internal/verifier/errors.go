package verifier

import "github.com/pkg/errors"

var (
	// ErrWrongSignatureLength is returned when the decoded signature has the
	// wrong byte count for the scheme: 64 bytes for non-recoverable
	// signatures, 65 for recoverable ones.
	ErrWrongSignatureLength = errors.New("wrong signature length")

	// ErrSignatureInvalid is returned when no candidate verification method
	// validates the signature.
	ErrSignatureInvalid = errors.New("signature does not match any authenticator")

	// ErrUnsupportedAlgorithm is returned by Dispatch for algorithm names it
	// does not recognize, before any candidate is examined.
	ErrUnsupportedAlgorithm = errors.New("unsupported signature algorithm")
)
