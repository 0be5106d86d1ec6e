package user

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

type (
	User struct {
		ID        string
		AccountID string
		Email     string
		FullName  string
		Avatar    string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
