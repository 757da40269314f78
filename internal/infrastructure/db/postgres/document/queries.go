package document

const (
	SelectDocumentByID = `
		SELECT id, patient_id, owner_user_id, bucket, object_key, content_type, original_filename, status, size_bytes, sha256, created_at, updated_at
		FROM patient_documents
		WHERE id = $1
	`
	InsertDocument = `
		INSERT INTO patient_documents (patient_id, owner_user_id, bucket, object_key, content_type, original_filename, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING
		  id, patient_id, owner_user_id, bucket, object_key, content_type, original_filename, status, size_bytes, sha256, created_at, updated_at
	`
	MarkStoredByOwner = `
		UPDATE patient_documents
		SET status = 'stored',
		    size_bytes = $2,
		    sha256 = COALESCE($3, sha256),
		    updated_at = now()
		WHERE id = $1 AND owner_user_id = $4
	`
	MarkStoredAny = `
		UPDATE patient_documents
		SET status = 'stored',
		    size_bytes = $2,
		    sha256 = COALESCE($3, sha256),
		    updated_at = now()
		WHERE id = $1
	`
)
