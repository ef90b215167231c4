package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

type ContactKind string

const (
	ContactEmail ContactKind = "email"
	ContactPhone ContactKind = "phone"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// 10-digit local mobile number, first digit 6-9
	phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
)

// ClassifyContact reports whether the contact is a well-formed email or a
// 10-digit mobile number. ok is false for everything else.
func ClassifyContact(contact string) (ContactKind, bool) {
	contact = NormalizeContact(contact)

	switch {
	case emailPattern.MatchString(contact):
		return ContactEmail, true
	case phonePattern.MatchString(contact):
		return ContactPhone, true
	default:
		return "", false
	}
}

// NormalizeContact lowercases and trims a contact string. Digests and user
// lookups always operate on the normalized form.
func NormalizeContact(contact string) string {
	return strings.ToLower(strings.TrimSpace(contact))
}

// ContactDigest is the one-way digest over the normalized contact
// concatenated with the code. The contact acts as the salt.
func ContactDigest(contact, code string) string {
	sum := sha256.Sum256([]byte(NormalizeContact(contact) + code))
	return hex.EncodeToString(sum[:])
}
