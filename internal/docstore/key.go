package docstore

import "regexp"

var (
	unsafeChars     = regexp.MustCompile(`[^A-Za-z0-9]`)
	unsafeCharsDots = regexp.MustCompile(`[^A-Za-z0-9.]`)
)

// SafeKey maps a raw user identifier to a file-safe document key by
// replacing every character outside [A-Za-z0-9] with an underscore.
// Distinct raw identifiers can collide ("a.b@x.com" and "a_b@x_com"
// share a key); that is an accepted limitation of the naming scheme.
func SafeKey(raw string) string {
	return unsafeChars.ReplaceAllString(raw, "_")
}

// SafeKeyKeepDots behaves like SafeKey but preserves periods, keeping
// email addresses mostly readable. Checkout logs are keyed this way.
func SafeKeyKeepDots(raw string) string {
	return unsafeCharsDots.ReplaceAllString(raw, "_")
}
