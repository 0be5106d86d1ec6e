package user

type User struct {
	ID        string `json:"$id"`
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Avatar    string `json:"avatar"`
}
