package ports

// TokenService is the auth collaborator: it hashes credentials and turns
// bearer tokens into usernames. The rest of the system treats tokens as
// opaque strings.
type TokenService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool
	Issue(username string) (string, error)
	// Verify returns the username the token was issued for, or
	// domain.ErrUnauthorized.
	Verify(token string) (string, error)
}
