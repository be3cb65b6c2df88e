// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService hashes and checks account passwords.
type PasswordService interface {
	// HashPassword derives a storable hash from a plain-text password.
	HashPassword(password string) (string, error)

	// VerifyPassword checks a plain-text password against a stored hash and
	// errors on mismatch.
	VerifyPassword(hashedPassword, password string) error
}
