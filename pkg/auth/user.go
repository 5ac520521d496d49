// Package auth carries the opaque identity handed to form sessions. The form
// engine only ever reads the ID to scope persistence queries.
package auth

// User identifies the person a form session acts for.
type User struct {
	ID    string
	Email string
}

// Valid reports whether the user carries an ID.
func (u *User) Valid() bool {
	return u != nil && u.ID != ""
}
