package content

import "strings"

// IsPublished decides, from metadata alone, whether an item is eligible for output.
// Eligible iff status is present and case-insensitively equals "published".
// Absent status, drafts, and every other value are ineligible.
func IsPublished(meta Metadata) bool {
	return meta.Status != "" && strings.EqualFold(meta.Status, "published")
}
