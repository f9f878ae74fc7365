package entities

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// Record is one untyped item of the data table, keyed by PK and SK
type Record map[string]interface{}

// Key attribute names of the single-table layout
const (
	AttrPK     = "PK"
	AttrSK     = "SK"
	AttrGSI1PK = "GSI1PK"
	AttrGSI1SK = "GSI1SK"
	AttrGSI2PK = "GSI2PK"
	AttrGSI2SK = "GSI2SK"
	AttrGSI3PK = "GSI3PK"
	AttrGSI3SK = "GSI3SK"
)

// String returns a string attribute or "" when absent or of another type
func (r Record) String(name string) string {
	s, _ := r[name].(string)
	return s
}

func (r Record) PK() string { return r.String(AttrPK) }
func (r Record) SK() string { return r.String(AttrSK) }

// Identity is the primary key pair, used to deduplicate query results
func (r Record) Identity() string {
	return r.PK() + "|" + r.SK()
}

// Attributes returns the nested detection attributes map, if present
func (r Record) Attributes() (map[string]interface{}, bool) {
	attrs, ok := r["attributes"].(map[string]interface{})
	return attrs, ok
}

// Clone returns a shallow copy
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// DecodeRecord converts a record into a typed entity using its dynamodbav tags
func DecodeRecord(r Record, out interface{}) error {
	av, err := attributevalue.MarshalMap(map[string]interface{}(r))
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := attributevalue.UnmarshalMap(av, out); err != nil {
		return fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return nil
}

// EncodeRecord converts a typed entity into a record using its dynamodbav tags
func EncodeRecord(in interface{}) (Record, error) {
	av, err := attributevalue.MarshalMap(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	var out map[string]interface{}
	if err := attributevalue.UnmarshalMap(av, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return Record(out), nil
}
