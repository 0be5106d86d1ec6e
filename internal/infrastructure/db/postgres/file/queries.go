package file

// Table names are substituted with a sanitized identifier.
const (
	columns = `id, type, name, url, extension, size, owner, account_id, users, bucket_file_id, created_at, updated_at`

	insertFile = `
		INSERT INTO %s (id, type, name, url, extension, size, owner, account_id, users, bucket_file_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + columns

	selectFiles = `
		SELECT ` + columns + `, count(*) OVER() AS total
		FROM %s`

	updateFile = `
		UPDATE %s
		SET name = COALESCE($2::text, name),
		    users = COALESCE($3::text[], users),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + columns

	deleteFile = `
		DELETE FROM %s
		WHERE id = $1
		RETURNING ` + columns
)
