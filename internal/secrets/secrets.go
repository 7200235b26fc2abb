package secrets

import (
	"encoding/hex"
	"fmt"

	"github.com/gtank/cryptopasta"
)

// Cipher is a hex-encoded 256-bit key used to keep credentials encrypted
// at rest.
type Cipher string

func (c Cipher) secureKey() (*[32]byte, error) {
	secureKey, err := hex.DecodeString(string(c))
	if err != nil {
		return nil, err
	}
	if len(secureKey) != 32 {
		return nil, fmt.Errorf("cipher key must be 32 bytes, got %d", len(secureKey))
	}

	return (*[32]byte)(secureKey), nil
}

// Seal encrypts a value and returns it hex-encoded.
func (c Cipher) Seal(value string) (string, error) {
	secureKey, err := c.secureKey()
	if err != nil {
		return "", err
	}

	sealedValue, err := cryptopasta.Encrypt([]byte(value), secureKey)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(sealedValue), nil
}

// Open decrypts a value produced by Seal.
func (c Cipher) Open(value string) (string, error) {
	secureKey, err := c.secureKey()
	if err != nil {
		return "", err
	}

	decodedValue, err := hex.DecodeString(value)
	if err != nil {
		return "", err
	}

	openedValue, err := cryptopasta.Decrypt(decodedValue, secureKey)
	if err != nil {
		return "", err
	}

	return string(openedValue), nil
}
