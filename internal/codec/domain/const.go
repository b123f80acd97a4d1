// Package domain defines the cipher modes, derived key material and error
// taxonomy of the symmetric text codec.
package domain

import "fmt"

// Mode identifies the cipher construction used by a codec instance.
//
// Legacy modes reproduce ciphertext produced by existing deployments: AES-256
// keyed with the hex MD5 digest of the secret, PKCS#7 padded, no embedded
// metadata. They are deterministic and unauthenticated and must only be used for
// low-sensitivity obfuscation (tokens embedded in URLs or cookies).
//
// Authenticated modes draw a random nonce per call and prepend it to the
// sealed output. They are not wire-compatible with the legacy modes.
type Mode string

const (
	// AES256ECB encrypts every 16-byte block independently. Identical plaintext
	// blocks produce identical ciphertext blocks. No IV is used.
	AES256ECB Mode = "aes-256-ecb"

	// AES256CBC chains blocks with an IV taken from the first 16 bytes of the
	// raw secret. The IV is fixed for the lifetime of the secret.
	AES256CBC Mode = "aes-256-cbc"

	// AES256GCM is AES-256-GCM with a random 12-byte nonce and a 16-byte tag.
	AES256GCM Mode = "aes-256-gcm"

	// ChaCha20Poly1305 is ChaCha20-Poly1305 with a random 12-byte nonce and a
	// 16-byte tag.
	ChaCha20Poly1305 Mode = "chacha20-poly1305"
)

// DefaultMode is the mode used when none is configured.
const DefaultMode = AES256ECB

// KeySize is the key length in bytes shared by every supported mode.
const KeySize = 32

// AllModes lists every supported mode in a stable order.
func AllModes() []Mode {
	return []Mode{AES256ECB, AES256CBC, AES256GCM, ChaCha20Poly1305}
}

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
	}
	return m, nil
}

// Valid reports whether m is a supported mode.
func (m Mode) Valid() bool {
	switch m {
	case AES256ECB, AES256CBC, AES256GCM, ChaCha20Poly1305:
		return true
	}
	return false
}

// IVSize returns how many bytes of the raw secret the mode consumes as its IV.
func (m Mode) IVSize() int {
	if m == AES256CBC {
		return 16
	}
	return 0
}

// Authenticated reports whether the mode detects tampering.
func (m Mode) Authenticated() bool {
	return m == AES256GCM || m == ChaCha20Poly1305
}

// Deterministic reports whether encrypting the same plaintext twice yields the
// same ciphertext.
func (m Mode) Deterministic() bool {
	return m == AES256ECB || m == AES256CBC
}

func (m Mode) String() string {
	return string(m)
}
