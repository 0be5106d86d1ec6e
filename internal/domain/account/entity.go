package account

// Account is the identity a session token was issued for.
type Account struct {
	ID    string
	Email string
}
