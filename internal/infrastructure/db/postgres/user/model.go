package user

import "time"

type User struct {
	ID        string
	AccountID string
	Email     string
	FullName  string
	Avatar    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
