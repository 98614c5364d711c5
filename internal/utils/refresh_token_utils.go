package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashRefreshToken generates a SHA256 hash of a refresh token.
func HashRefreshToken(token string) string {
	hasher := sha256.New()
	hasher.Write([]byte(token))
	return hex.EncodeToString(hasher.Sum(nil))
}

// CompareRefreshTokenHash compares a plain refresh token with its stored
// SHA256 hash.
func CompareRefreshTokenHash(token string, storedHash string) bool {
	return HashRefreshToken(token) == storedHash
}

// JoinRefreshCookie packs a user id and a raw refresh token into a single
// cookie value so the refresh endpoint can locate the user without a
// separate lookup key.
func JoinRefreshCookie(userID string, token string) string {
	return userID + ":" + token
}

// SplitRefreshCookie is the inverse of JoinRefreshCookie.
func SplitRefreshCookie(cookie string) (userID string, token string, ok bool) {
	userID, token, ok = strings.Cut(cookie, ":")
	if userID == "" || token == "" {
		return "", "", false
	}
	return userID, token, ok
}
