// Package secure keeps secrets encrypted in memory between the moment
// they are resolved and the moment the API request is built. It wraps
// memguard enclaves: the plaintext lives in locked, guarded memory only
// while a caller holds it open.
package secure

import (
	"github.com/awnumar/memguard"
)

// String is an immutable secret held in an encrypted enclave.
// The zero value is unusable; construct with NewString.
type String struct {
	enclave *memguard.Enclave
}

// NewString seals a secret. The caller should not retain the plaintext.
func NewString(plaintext string) *String {
	if plaintext == "" {
		// memguard rejects zero-length buffers; an absent secret needs
		// no protection anyway.
		return &String{}
	}
	return &String{enclave: memguard.NewEnclave([]byte(plaintext))}
}

// Reveal decrypts the secret, hands it to fn, and wipes the plaintext
// buffer before returning. The value passed to fn must not escape fn.
func (s *String) Reveal(fn func(plaintext string) error) error {
	if s == nil || s.enclave == nil {
		return fn("")
	}
	buf, err := s.enclave.Open()
	if err != nil {
		return err
	}
	defer buf.Destroy()
	return fn(buf.String())
}

// Empty reports whether the secret is absent or zero-length.
func (s *String) Empty() bool {
	if s == nil || s.enclave == nil {
		return true
	}
	return s.enclave.Size() == 0
}
