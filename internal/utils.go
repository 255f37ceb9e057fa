package internal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"io"
	"os"
	"runtime"

	"github.com/pkg/errors"
)

// GetBinaryDir returns the directory the bridge treats as its working home,
// used as the default location for config and log files.
func GetBinaryDir() string {
	if runtime.GOOS == "windows" {
		return "C:\\MotioneyeBridge"
	}
	currentDir, _ := os.Getwd()
	return currentDir
}

// EncryptString encrypts text with AES-GCM under a 32 byte key and returns
// base64(nonce || ciphertext).
func EncryptString(key, text string) (string, error) {
	keyBytes := []byte(key)
	if len(keyBytes) != 32 {
		return "", errors.New("key must be 32 bytes")
	}
	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return "", err
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aesGCM.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	ciphertext := aesGCM.Seal(nonce, nonce, []byte(text), nil)
	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// DecryptString reverses EncryptString.
func DecryptString(key, text string) (string, error) {
	keyBytes := []byte(key)
	if len(keyBytes) != 32 {
		return "", errors.New("key must be 32 bytes")
	}
	textBytes, err := base64.URLEncoding.DecodeString(text)
	if err != nil {
		return "", err
	}
	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return "", err
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonceSize := aesGCM.NonceSize()
	if len(textBytes) < nonceSize {
		return "", errors.New("ciphertext too short")
	}
	nonce, ciphertext := textBytes[:nonceSize], textBytes[nonceSize:]
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
