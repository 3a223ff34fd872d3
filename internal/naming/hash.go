package naming

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// hashChunk is the read size used when streaming files through the hasher.
const hashChunk = 64 * 1024

// HashFile returns the lowercase hex SHA-256 of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, hashChunk)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
