package s3client

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

const (
	cseModeAESGCM      = "aes-gcm"
	cseMetaKey         = "x-npulse-cse"
	cseMetaContentType = "x-npulse-content-type"
)

func normalizeMeta(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

func parseAESGCMKeyHex(keyHex string) ([]byte, error) {
	keyHex = strings.TrimSpace(keyHex)
	if keyHex == "" {
		return nil, fmt.Errorf("client-side encryption key is required")
	}
	raw, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid client-side key hex: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("client-side key must be 32 bytes (AES-256)")
	}
	return raw, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func encryptAESGCM(plaintext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptAESGCM(ciphertext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	ns := gcm.NonceSize()
	if len(ciphertext) < ns+gcm.Overhead() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	return gcm.Open(nil, ciphertext[:ns], ciphertext[ns:], nil)
}

// applyCSE encrypts payload when a client-side key is configured, moving the original content
// type into object metadata.
func (a *S3ClientAdapter) applyCSE(payload []byte, contentType string) ([]byte, string, map[string]string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if len(a.cseKey) == 0 {
		return payload, contentType, nil, nil
	}
	enc, err := encryptAESGCM(payload, a.cseKey)
	if err != nil {
		return nil, "", nil, err
	}
	meta := map[string]string{cseMetaKey: cseModeAESGCM, cseMetaContentType: contentType}
	return enc, "application/octet-stream", meta, nil
}

func (a *S3ClientAdapter) decryptIfNeeded(meta map[string]string, payload []byte) ([]byte, error) {
	mode := strings.ToLower(strings.TrimSpace(normalizeMeta(meta)[cseMetaKey]))
	if mode == "" {
		return payload, nil
	}
	if len(a.cseKey) == 0 {
		return nil, fmt.Errorf("s3client: client-side encryption key missing for encrypted object")
	}
	if mode != cseModeAESGCM {
		return nil, fmt.Errorf("unsupported client-side encryption mode: %s", mode)
	}
	return decryptAESGCM(payload, a.cseKey)
}
