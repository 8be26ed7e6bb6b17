package notion

import "strings"

// idLength is the number of hex characters in an undashed Notion ID.
const idLength = 32

// NormalizeID removes dashes from a Notion page/database ID.
func NormalizeID(id string) string {
	return strings.ReplaceAll(id, "-", "")
}

// IsValidID reports whether s is a 32-character lowercase hex string,
// the undashed form of a Notion UUID.
func IsValidID(s string) bool {
	if len(s) != idLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// FormatID inserts dashes into a 32-character hex string to form the
// 8-4-4-4-12 UUID presentation. Inputs that are not exactly 32 hex
// characters after dash removal are returned unchanged.
func FormatID(id string) string {
	clean := NormalizeID(id)
	if len(clean) != idLength {
		return id
	}
	return clean[:8] + "-" + clean[8:12] + "-" + clean[12:16] + "-" + clean[16:20] + "-" + clean[20:]
}
