package file

const (
	// SelectFiles applies both listing filters in one statement: an empty
	// name/tags argument disables the matching clause. The name argument must
	// arrive with LIKE metacharacters escaped so it matches literally. Tags
	// are stored lowercased, so array containment gives case-insensitive AND
	// semantics.
	SelectFiles = `
		SELECT id, uuid, owner_id, stored_name, original_name, mime_type, size_bytes, location_pointer, download_url, tags, uploaded_at
		FROM files
		WHERE ($1 = '' OR original_name ILIKE '%' || $1 || '%' ESCAPE '\')
		  AND (cardinality($2::text[]) = 0 OR tags @> $2::text[])
		ORDER BY uploaded_at DESC
	`
	SelectFileByUUID = `
		SELECT id, uuid, owner_id, stored_name, original_name, mime_type, size_bytes, location_pointer, download_url, tags, uploaded_at
		FROM files
		WHERE uuid = $1
	`
	InsertFile = `
		INSERT INTO files (owner_id, stored_name, original_name, mime_type, size_bytes, location_pointer, download_url, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING
		  id, uuid, owner_id, stored_name, original_name, mime_type, size_bytes, location_pointer, download_url, tags, uploaded_at
	`
	UpdateTagsByUUID = `
		UPDATE files
		SET tags = $1
		WHERE uuid = $2
		RETURNING
		  id, uuid, owner_id, stored_name, original_name, mime_type, size_bytes, location_pointer, download_url, tags, uploaded_at
	`
	DeleteFileByUUID = `
		DELETE FROM files
		WHERE uuid = $1
		RETURNING
		  id, uuid, owner_id, stored_name, original_name, mime_type, size_bytes, location_pointer, download_url, tags, uploaded_at
	`
)
