package user

const (
	SelectUserByAccountID = `
		SELECT id, account_id, email, full_name, avatar, created_at, updated_at
		FROM %s
		WHERE account_id = $1
	`
)
