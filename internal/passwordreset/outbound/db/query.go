package db

import "fmt"

const tokenColumns = `id, user_type, email, code_hash, expires_at, verified_at, used, used_at, created_at`

const (
	queryGetLatestUnusedToken = `SELECT ` + tokenColumns + `
FROM password_reset_tokens
WHERE email = $1 AND code_hash = $2 AND user_type = $3 AND used = false
ORDER BY created_at DESC
LIMIT 1`

	queryGetUnusedToken = `SELECT ` + tokenColumns + `
FROM password_reset_tokens
WHERE id = $1 AND email = $2 AND user_type = $3 AND used = false`

	queryListPurgeableTokens = `SELECT ` + tokenColumns + `
FROM password_reset_tokens
WHERE (used = true AND used_at < $1) OR expires_at < $1
ORDER BY created_at
LIMIT $2`

	queryCreateToken = `INSERT INTO password_reset_tokens
	(id, user_type, email, code_hash, expires_at, used, created_at)
VALUES ($1, $2, $3, $4, $5, false, $6)`

	queryMarkTokenVerified = `UPDATE password_reset_tokens
SET verified_at = COALESCE(verified_at, $2)
WHERE id = $1`

	queryClaimToken = `UPDATE password_reset_tokens
SET used = true, used_at = $2
WHERE id = $1 AND used = false
RETURNING id`

	queryDeleteTokens = `DELETE FROM password_reset_tokens WHERE id = ANY($1::uuid[])`
)

// Account tables are chosen from entity.Role.Table, never from user input.

func queryGetAccount(table string) string {
	return fmt.Sprintf(`SELECT email, first_name, last_name, status FROM %s WHERE email = $1 LIMIT 1`, table)
}

func queryUpdatePassword(table string) string {
	return fmt.Sprintf(`UPDATE %s SET password = $1, updated_at = $2 WHERE email = $3`, table)
}
