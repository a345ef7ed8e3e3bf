// Package service declares the domain capabilities that depend on an
// external algorithm and are injected into the use cases.
package service

// PasswordHasher turns account and moderator passwords into stored hashes.
type PasswordHasher interface {
	// Hash returns a salted, one-way hash of password.
	Hash(password string) (string, error)

	// Check reports whether password produces hash.
	Check(password, hash string) bool
}
