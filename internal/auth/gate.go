// Package auth implements the local login gate in front of the client.
package auth

import "crypto/subtle"

// MaxAttempts is the number of tries the prompt allows before giving up.
const MaxAttempts = 3

// Gate compares entered credentials with the configured pair.
type Gate struct {
	Username string
	Password string
}

// Enabled is false when no credentials are configured; the gate is skipped.
func (g Gate) Enabled() bool {
	return g.Username != "" || g.Password != ""
}

// Check requires an exact match of both fields.
func (g Gate) Check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.Password)) == 1
	return userOK && passOK
}
