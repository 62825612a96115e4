// Package seal encrypts blobs at rest with AES-256-GCM.
//
// Ciphertext layout: 2-byte big-endian version, 12-byte nonce, then the GCM
// output (ciphertext and tag). The associated data binds a blob to the name
// it was sealed under, so a blob copied to another object key fails to open.
package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	version   uint16 = 1
	nonceSize        = 12
	keySize          = 32
	headerLen        = 2 + nonceSize
)

var (
	ErrInvalidKeyLength   = errors.New("seal: key must be 32 bytes")
	ErrEmptyPlaintext     = errors.New("seal: plaintext is empty")
	ErrCiphertextTooShort = errors.New("seal: ciphertext too short")
	ErrUnsupportedVersion = errors.New("seal: unsupported ciphertext version")
	ErrOpenFailed         = errors.New("seal: open failed")
)

// Sealer encrypts and decrypts blobs bound to a name.
type Sealer interface {
	Seal(plaintext []byte, name string) ([]byte, error)
	Open(ciphertext []byte, name string) ([]byte, error)
}

// AESGCM is a Sealer using a single static AES-256 key.
type AESGCM struct {
	aead  cipher.AEAD
	nonce io.Reader
}

// NewAESGCM builds a sealer from a 32-byte key.
func NewAESGCM(key []byte) (*AESGCM, error) {
	if len(key) != keySize {
		return nil, ErrInvalidKeyLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("seal: aes init: %w", err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, fmt.Errorf("seal: gcm init: %w", err)
	}

	return &AESGCM{aead: aead, nonce: rand.Reader}, nil
}

func (s *AESGCM) Seal(plaintext []byte, name string) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, ErrEmptyPlaintext
	}

	out := make([]byte, headerLen, headerLen+len(plaintext)+s.aead.Overhead())
	binary.BigEndian.PutUint16(out[:2], version)
	if _, err := io.ReadFull(s.nonce, out[2:headerLen]); err != nil {
		return nil, fmt.Errorf("seal: nonce: %w", err)
	}

	return s.aead.Seal(out, out[2:headerLen], plaintext, aad(name)), nil
}

func (s *AESGCM) Open(ciphertext []byte, name string) ([]byte, error) {
	if len(ciphertext) < headerLen+s.aead.Overhead() {
		return nil, ErrCiphertextTooShort
	}
	if v := binary.BigEndian.Uint16(ciphertext[:2]); v != version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	plain, err := s.aead.Open(nil, ciphertext[2:headerLen], ciphertext[headerLen:], aad(name))
	if err != nil {
		return nil, ErrOpenFailed
	}
	return plain, nil
}

func aad(name string) []byte {
	sum := sha256.Sum256([]byte("name=" + name + "\n"))
	return sum[:]
}
