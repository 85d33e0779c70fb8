package backend

import "github.com/janhq/jan-translator/internal/domain/auth"

// Account is a registered user with the bcrypt hash of their password.
type Account struct {
	User         auth.User
	PasswordHash []byte
}
