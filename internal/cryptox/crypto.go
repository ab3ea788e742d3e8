// Package cryptox hashes and verifies user passwords with argon2id.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/dmitrijs2005/bloodbuddy/internal/common"
	"golang.org/x/crypto/argon2"
)

// hashPrefix marks an encoded credential produced by HashPassword.
const hashPrefix = "$argon2id$"

const saltSize = 16

var b64 = base64.RawStdEncoding

// DeriveKey stretches password with salt into a 32-byte key.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashPassword returns "$argon2id$<salt>$<key>" for password, using a fresh
// random salt.
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(saltSize)
	return encode(salt, DeriveKey(password, salt))
}

// VerifyPassword reports whether password matches an encoded credential
// produced by HashPassword. Malformed input never matches.
func VerifyPassword(encoded string, password []byte) bool {
	salt, key, ok := decode(encoded)
	if !ok {
		return false
	}
	candidate := DeriveKey(password, salt)
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

// IsHashed reports whether s looks like the output of HashPassword.
func IsHashed(s string) bool {
	_, _, ok := decode(s)
	return ok
}

func encode(salt, key []byte) string {
	return hashPrefix + b64.EncodeToString(salt) + "$" + b64.EncodeToString(key)
}

func decode(s string) (salt, key []byte, ok bool) {
	rest, found := strings.CutPrefix(s, hashPrefix)
	if !found {
		return nil, nil, false
	}
	parts := strings.Split(rest, "$")
	if len(parts) != 2 {
		return nil, nil, false
	}
	salt, err := b64.DecodeString(parts[0])
	if err != nil || len(salt) == 0 {
		return nil, nil, false
	}
	key, err = b64.DecodeString(parts[1])
	if err != nil || len(key) == 0 {
		return nil, nil, false
	}
	return salt, key, true
}
