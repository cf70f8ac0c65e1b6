package models

// User is an account holder. It maps to the `users` table.
// Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
}
