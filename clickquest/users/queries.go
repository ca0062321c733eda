package users

const userColumns = `id, name, email, password_hash, provider, provider_id, is_verified,
		verification_token, verification_token_expires_at,
		reset_password_token, reset_password_expires_at, created_at, updated_at`

const (
	queryCreate = `
		INSERT INTO users (name, email, password_hash, verification_token, verification_token_expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	queryFindByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	queryFindByEmail = `
		SELECT ` + userColumns + `
		FROM users
		WHERE lower(email) = lower($1)
	`

	queryFindByVerificationToken = `
		SELECT ` + userColumns + `
		FROM users
		WHERE verification_token = $1
	`

	queryMarkVerified = `
		UPDATE users
		SET is_verified = TRUE,
			verification_token = NULL,
			verification_token_expires_at = NULL,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	querySetResetToken = `
		UPDATE users
		SET reset_password_token = $1,
			reset_password_expires_at = $2,
			updated_at = NOW()
		WHERE id = $3
		RETURNING ` + userColumns

	queryFindByResetToken = `
		SELECT ` + userColumns + `
		FROM users
		WHERE reset_password_token = $1
	`

	queryUpdatePassword = `
		UPDATE users
		SET password_hash = $1,
			reset_password_token = NULL,
			reset_password_expires_at = NULL,
			updated_at = NOW()
		WHERE id = $2
		RETURNING ` + userColumns

	queryFindByProvider = `
		SELECT ` + userColumns + `
		FROM users
		WHERE provider = $1 AND provider_id = $2
	`

	queryLinkProvider = `
		UPDATE users
		SET provider = $1,
			provider_id = $2,
			is_verified = TRUE,
			updated_at = NOW()
		WHERE id = $3
		RETURNING ` + userColumns

	queryCreateOAuth = `
		INSERT INTO users (name, email, provider, provider_id, is_verified)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING ` + userColumns
)
