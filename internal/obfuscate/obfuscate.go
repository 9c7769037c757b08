// Package obfuscate wraps stored game history in a light reversible layer:
// labels become SHA-256 digests and values are AES-GCM encrypted under a
// fixed embedded secret. This deters casual tampering with the backing
// store; it is not a confidentiality boundary, since the key ships with the
// binary.
package obfuscate

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Fixed key material. An earlier scheme derived the key from a per-device
// fingerprint, which silently broke decryption whenever the fingerprint
// changed; the static secret replaced it and must not be swapped out without
// a migration path for existing stored history.
const secret = "tebakkabupaten-history-v1"

var hkdfInfo = []byte("mapquiz history encryption")

// Codec encrypts and decrypts serializable values.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec derives the AES-256 key from the embedded secret via
// HKDF-SHA256 and prepares the GCM cipher.
func NewCodec() (*Codec, error) {
	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, hkdfInfo)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating gcm: %w", err)
	}
	return &Codec{aead: aead}, nil
}

// DeriveKey maps a plaintext label to a stable opaque storage key. The same
// label always yields the same key; this hides labels in the store's key
// set, it is not access control.
func DeriveKey(label string) string {
	sum := sha256.Sum256([]byte(label))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Encrypt serializes v to JSON and seals it with a fresh random nonce. The
// nonce is prepended to the ciphertext and the whole output is
// base64-encoded for storage.
func (c *Codec) Encrypt(v any) (string, error) {
	plain, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("serializing value: %w", err)
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, plain, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt into v. It reports false on any structural,
// authentication, or decoding failure; callers treat that as absent data
// rather than an error.
func (c *Codec) Decrypt(ciphertext string, v any) bool {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return false
	}
	if len(raw) < c.aead.NonceSize() {
		return false
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return false
	}
	return json.Unmarshal(plain, v) == nil
}
