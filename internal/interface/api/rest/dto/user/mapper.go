package user

import (
	"github.com/supanut9/store-it/internal/domain/user"
)

// ToResponseUser maps u; avatar replaces the stored avatar URL.
func ToResponseUser(u user.User, avatar string) User {
	return User{
		ID:        u.ID,
		AccountID: u.AccountID,
		Email:     u.Email,
		FullName:  u.FullName,
		Avatar:    avatar,
	}
}
