package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateSessionToken returns a 64-character hex token for login sessions.
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateShareToken returns a time-salted token for public share links.
// The millisecond prefix keeps tokens unique even across identical random
// suffixes; the suffix keeps them unguessable.
func GenerateShareToken() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix[:16])
}
