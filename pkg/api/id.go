package api

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// IDs carry 128 bits of randomness, enough to avoid collision within a
// process lifetime without coordination.
const idBytes = 16

const (
	responseIDPrefix = "resp_"
	itemIDPrefix     = "item_"
)

var (
	responseIDPattern = regexp.MustCompile(`^resp_[0-9a-f]{32}$`)
	itemIDPattern     = regexp.MustCompile(`^item_[0-9a-f]{32}$`)
)

// NewResponseID generates a new response ID with the "resp_" prefix
// followed by 32 random hex characters.
func NewResponseID() string {
	return responseIDPrefix + randomHex(idBytes)
}

// NewItemID generates a new item ID with the "item_" prefix
// followed by 32 random hex characters.
func NewItemID() string {
	return itemIDPrefix + randomHex(idBytes)
}

// ValidateResponseID checks whether the given string is a well-formed
// response ID.
func ValidateResponseID(id string) bool {
	return responseIDPattern.MatchString(id)
}

// ValidateItemID checks whether the given string is a well-formed item ID.
func ValidateItemID(id string) bool {
	return itemIDPattern.MatchString(id)
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}
