package user

const (
	SelectUserByUUID = `
		SELECT id, uuid, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE uuid = $1
	`
	SelectUserByEmail = `
		SELECT id, uuid, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	InsertUser = `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING
		  id, uuid, username, email, password_hash, created_at, updated_at
	`
	UpdateProfileByUUID = `
		UPDATE users
		SET username = $1,
		    email = $2,
		    updated_at = now()
		WHERE uuid = $3
		RETURNING
		  id, uuid, username, email, password_hash, created_at, updated_at
	`
	UpdatePasswordByUUID = `
		UPDATE users
		SET password_hash = $1,
		    updated_at = now()
		WHERE uuid = $2
	`
	SelectIdByUUID = `SELECT id FROM users WHERE uuid = $1::uuid`
)
