package valueobjects

import (
	"fmt"
	"strings"
)

// KeyDelimiter separates the segments of every partition and sort key
const KeyDelimiter = "#"

// Key prefixes of the single-table layout
const (
	OrgPrefix       = "ORG#"
	UserPrefix      = "USER#"
	VideoPrefix     = "VIDEO#"
	ProfilePrefix   = "PROFILE#"
	DetectionPrefix = "DETECTION#"
	AttributePrefix = "ATTR#"
	TimePrefix      = "TIME#"
)

// Dimension is a searchable person attribute projected into the attribute index
type Dimension string

const (
	DimensionColor   Dimension = "color"
	DimensionEmotion Dimension = "emotion"
	// The pipeline writes age buckets under the short "age" token.
	DimensionAge     Dimension = "age"
)

// OrgKey returns the partition key owning every record of an organization
func OrgKey(orgID string) string {
	return OrgPrefix + orgID
}

// UserKey returns the partition key of a user's profile
func UserKey(userID string) string {
	return UserPrefix + userID
}

// VideoKey is used both as the video sort key and as the video index key
func VideoKey(videoID string) string {
	return VideoPrefix + videoID
}

// ProfileKey returns the sort key of a user's profile
func ProfileKey(userID string) string {
	return ProfilePrefix + userID
}

// DetectionKey returns the sort key of a single person detection
func DetectionKey(videoID, personID, timestamp string) string {
	return fmt.Sprintf("%s%s#%s#%s", DetectionPrefix, videoID, personID, timestamp)
}

// AttributeKey returns the attribute index key for one dimension value
func AttributeKey(dim Dimension, value string) string {
	return fmt.Sprintf("%s%s#%s", AttributePrefix, dim, value)
}

// TimeKey returns the time index key for a YYYY-MM-DD day
func TimeKey(day string) string {
	return TimePrefix + day
}

// OrgIDFromKey strips the ORG# prefix, returning false for any other key
func OrgIDFromKey(pk string) (string, bool) {
	if !strings.HasPrefix(pk, OrgPrefix) {
		return "", false
	}
	return strings.TrimPrefix(pk, OrgPrefix), true
}
