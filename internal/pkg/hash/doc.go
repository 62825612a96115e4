// Package hash hashes and verifies secrets.
//
// Account passwords are stored as the account tables expect them: plaintext
// by default, or through a slow, salted hasher (bcrypt or Argon2id).
// One-time codes go through a keyed HMAC so that the stored value is
// deterministic and can still be matched with a plain equality lookup.
package hash
