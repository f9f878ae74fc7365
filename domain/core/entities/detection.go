package entities

import (
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
)

// PersonDetection is one annotated appearance of a person in a video.
// Detections are written by the processing pipeline only.
type PersonDetection struct {
	PK     string `dynamodbav:"PK,omitempty"`
	SK     string `dynamodbav:"SK,omitempty"`
	GSI1PK string `dynamodbav:"GSI1PK,omitempty"`
	GSI1SK string `dynamodbav:"GSI1SK,omitempty"`
	GSI2PK string `dynamodbav:"GSI2PK,omitempty"`
	GSI2SK string `dynamodbav:"GSI2SK,omitempty"`
	GSI3PK string `dynamodbav:"GSI3PK,omitempty"`
	GSI3SK string `dynamodbav:"GSI3SK,omitempty"`

	PersonID   string                  `dynamodbav:"personId"`
	VideoID    string                  `dynamodbav:"videoId"`
	OrgID      string                  `dynamodbav:"orgId,omitempty"`
	Timestamp  string                  `dynamodbav:"timestamp"`
	Confidence valueobjects.Confidence `dynamodbav:"confidence"`
	Attributes DetectionAttributes     `dynamodbav:"attributes"`
}

// DetectionAttributes are the classifier outputs attached to a detection
type DetectionAttributes struct {
	AgeBucket  string   `dynamodbav:"ageBucket,omitempty" json:"ageBucket,omitempty"`
	Gender     string   `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	Emotion    string   `dynamodbav:"emotion,omitempty" json:"emotion,omitempty"`
	Mask       *bool    `dynamodbav:"mask,omitempty" json:"mask,omitempty"`
	HairColor  string   `dynamodbav:"hairColor,omitempty" json:"hairColor,omitempty"`
	UpperColor string   `dynamodbav:"upperColor,omitempty" json:"upperColor,omitempty"`
	LowerColor string   `dynamodbav:"lowerColor,omitempty" json:"lowerColor,omitempty"`
	Objects    []string `dynamodbav:"objects,omitempty" json:"objects,omitempty"`
}

// Color returns the value indexed under the color dimension
func (a DetectionAttributes) Color() string {
	if a.UpperColor != "" {
		return a.UpperColor
	}
	return a.LowerColor
}

// IndexedDetection fills the key projections of a detection for one indexed
// dimension value, in the layout the search indexes expect. The same
// detection is written once per dimension it is searchable by.
func IndexedDetection(orgID string, d PersonDetection, dim valueobjects.Dimension, value string) PersonDetection {
	d.OrgID = orgID
	d.PK = valueobjects.OrgKey(orgID)
	d.SK = valueobjects.DetectionKey(d.VideoID, d.PersonID, d.Timestamp)
	if dim != "" {
		d.SK += "#" + string(dim)
		d.GSI1PK = valueobjects.AttributeKey(dim, value)
		d.GSI1SK = d.Timestamp
	}
	d.GSI2PK = valueobjects.VideoKey(d.VideoID)
	d.GSI2SK = d.SK
	if day, err := (valueobjects.TimeRange{Start: d.Timestamp, End: d.Timestamp}).StartDay(); err == nil {
		d.GSI3PK = valueobjects.TimeKey(day)
		d.GSI3SK = d.Timestamp
	}
	return d
}
