package entity

import "time"

// CodeTTL is how long an issued code, and the reset token derived from it,
// stays usable.
const CodeTTL = 10 * time.Minute

// ResetToken is one issuance of a one-time code. CodeHash holds the keyed
// hash of the code, never the code itself.
type ResetToken struct {
	ID         string     `json:"id"`
	Role       Role       `json:"user_type"`
	Email      string     `json:"email"`
	CodeHash   string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	Used       bool       `json:"used"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Expired reports whether now is past the token expiry.
func (t ResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

func (t ResetToken) Verified() bool { return t.VerifiedAt != nil }

// CommitPassword is the atomic consume-and-write of a verified token.
type CommitPassword struct {
	TokenID string
	Role    Role
	Email   string
	// Password is the value written to the account row, already run through
	// the configured password hasher.
	Password string
	At       time.Time
}

// CodeMail is what the email adapter needs to deliver a code.
type CodeMail struct {
	Account Account
	Role    Role
	Code    string
	TTL     time.Duration
}

// PurgeResult reports one retention cycle.
type PurgeResult struct {
	Skipped     bool
	Deleted     int
	Archived    int
	ArchiveKeys []string
}
