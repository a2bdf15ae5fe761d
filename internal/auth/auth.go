// Package auth checks that a request carries proof of identity for every
// principal it names as a signer.
package auth

import (
	"errors"
	"fmt"
	"github.com/gagliardetto/solana-go"
)

var (
	ErrMissingSignature            = errors.New("missing required signature")
	ErrSignatureVerificationFailed = errors.New("signature verification failed")
)

type Signature struct {
	Signer    solana.PublicKey
	Signature solana.Signature
}

type Credentials []Signature

// Sign produces one signature over message per key.
func Sign(message []byte, keys ...solana.PrivateKey) (Credentials, error) {
	credentials := make(Credentials, 0, len(keys))

	for _, key := range keys {
		signature, err := key.Sign(message)
		if err != nil {
			return nil, fmt.Errorf("failed to sign message: %w", err)
		}

		credentials = append(credentials, Signature{Signer: key.PublicKey(), Signature: signature})
	}

	return credentials, nil
}

func (c Credentials) Lookup(signer solana.PublicKey) (solana.Signature, bool) {
	for _, credential := range c {
		if credential.Signer.Equals(signer) {
			return credential.Signature, true
		}
	}
	return solana.Signature{}, false
}

// Verify checks that signer signed message.
func (c Credentials) Verify(signer solana.PublicKey, message []byte) error {
	signature, ok := c.Lookup(signer)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingSignature, signer)
	}

	if !signature.Verify(signer, message) {
		return fmt.Errorf("%w: %s", ErrSignatureVerificationFailed, signer)
	}

	return nil
}
