package valueobjects

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVideoID(t *testing.T) {
	id := NewVideoID()

	assert.NotEmpty(t, id.String())
	assert.False(t, id.IsZero())
	assert.True(t, id.IsUUID())

	_, err := uuid.Parse(id.String())
	assert.NoError(t, err)
}

func TestNewVideoIDFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errMsg  string
	}{
		{name: "uuid", input: uuid.New().String()},
		{name: "pipeline id", input: "v1"},
		{name: "empty string", input: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "whitespace only", input: "   ", wantErr: true, errMsg: "cannot be empty"},
		{name: "key delimiter", input: "v1#x", wantErr: true, errMsg: "cannot contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewVideoIDFromString(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.True(t, id.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "ORG#acme", OrgKey("acme"))
	assert.Equal(t, "USER#u1", UserKey("u1"))
	assert.Equal(t, "VIDEO#v1", VideoKey("v1"))
	assert.Equal(t, "PROFILE#u1", ProfileKey("u1"))
	assert.Equal(t, "DETECTION#v1#p1#2024-01-01T00:00:00Z", DetectionKey("v1", "p1", "2024-01-01T00:00:00Z"))
	assert.Equal(t, "ATTR#color#red", AttributeKey(DimensionColor, "red"))
	assert.Equal(t, "ATTR#age#adult", AttributeKey(DimensionAge, "adult"))
	assert.Equal(t, "TIME#2024-01-01", TimeKey("2024-01-01"))

	org, ok := OrgIDFromKey("ORG#acme")
	assert.True(t, ok)
	assert.Equal(t, "acme", org)

	_, ok = OrgIDFromKey("USER#u1")
	assert.False(t, ok)
}

func TestVideoStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to VideoStatus
		allowed  bool
	}{
		{StatusUploading, StatusProcessing, true},
		{StatusUploading, StatusError, true},
		{StatusProcessing, StatusProcessed, true},
		{StatusProcessing, StatusError, true},
		{StatusProcessing, StatusUploading, false},
		{StatusProcessed, StatusProcessing, false},
		{StatusError, StatusProcessed, false},
		{StatusUploading, StatusProcessed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.True(t, StatusProcessed.IsPlayable())
	assert.False(t, StatusProcessing.IsPlayable())

	_, err := ParseVideoStatus("DONE")
	assert.Error(t, err)
}

func TestConfidence(t *testing.T) {
	c, err := NewConfidence(0.95)
	require.NoError(t, err)

	assert.Equal(t, 0.95, c.Fraction())
	assert.Equal(t, 95, c.Percent())
	assert.Equal(t, "95%", c.Label())

	_, err = NewConfidence(95)
	assert.Error(t, err)
	_, err = NewConfidence(-0.1)
	assert.Error(t, err)
}

func TestTimeRange(t *testing.T) {
	r := TimeRange{Start: "2024-01-02T10:00:00Z", End: "2024-01-05T00:00:00Z"}
	require.NoError(t, r.Validate())

	day, err := r.StartDay()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", day)

	assert.Error(t, TimeRange{Start: "2024-01-02"}.Validate())
	assert.Error(t, TimeRange{Start: "yesterday", End: "today"}.Validate())

	assert.Equal(t, "2024-03-04", DayOf(time.Date(2024, 3, 4, 23, 0, 0, 0, time.UTC)))
}
