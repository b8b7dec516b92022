package fieldcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// encryptCBC pads plaintext with PKCS#7 and encrypts it with AES-CBC.
// The result is appended to dst.
func encryptCBC(dst, key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("fieldcrypt: creating block cipher: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	defer wipe(padded)

	start := len(dst)
	dst = append(dst, make([]byte, len(padded))...)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(dst[start:], padded)
	return dst, nil
}

// decryptCBC decrypts an AES-CBC ciphertext and strips PKCS#7 padding.
// Misaligned input and bad padding both return ErrDecryptionFailed.
func decryptCBC(key, iv, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrDecryptionFailed
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("fieldcrypt: creating block cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		wipe(plaintext)
		return nil, err
	}
	return unpadded, nil
}

// pkcs7Pad returns a new slice holding data followed by 1..blockSize padding bytes.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padding)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padding)
	}
	return padded
}

// pkcs7Unpad validates and removes PKCS#7 padding.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	length := len(data)
	if length == 0 || length%blockSize != 0 {
		return nil, ErrDecryptionFailed
	}

	padding := int(data[length-1])
	if padding == 0 || padding > blockSize {
		return nil, ErrDecryptionFailed
	}

	// Check every padding byte
	for i := length - padding; i < length; i++ {
		if data[i] != byte(padding) {
			return nil, ErrDecryptionFailed
		}
	}
	return data[:length-padding], nil
}
