package sessions

const (
	queryInsert = `
		INSERT INTO refresh_tokens (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`

	// single-statement consume: the row is gone the moment it is read,
	// so two concurrent refreshes of the same token cannot both win
	queryConsume = `
		DELETE FROM refresh_tokens
		WHERE token = $1
		RETURNING token, user_id, expires_at
	`

	queryDelete = `
		DELETE FROM refresh_tokens
		WHERE token = $1
	`
)
