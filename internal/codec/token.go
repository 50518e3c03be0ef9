package codec

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
)

// GenerateToken returns a fresh handshake token: 32 bytes of cryptographic
// randomness read as sixteen 16-bit values, each rendered as 4 lowercase hex
// digits. The result is always 64 characters. Tokens identify a session
// during the handshake and must never be reused across connection attempts.
func GenerateToken() (string, error) {
	var raw [32]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}

	var b strings.Builder
	b.Grow(64)
	for i := 0; i < len(raw); i += 2 {
		fmt.Fprintf(&b, "%04x", binary.LittleEndian.Uint16(raw[i:i+2]))
	}

	return b.String(), nil
}
