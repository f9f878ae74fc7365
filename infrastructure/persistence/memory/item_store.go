// Package memory provides an in-process ItemStore with the same key and
// index layout as the DynamoDB table. It backs local runs and tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/rahulAtGit/ZentriqVision/application/ports"
	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"
)

// ItemStore is a thread-safe map of records keyed by PK and SK
type ItemStore struct {
	mu    sync.RWMutex
	items map[string]entities.Record
	// insertion order keeps equal sort keys stable
	order []string
}

var (
	_ ports.ItemStore          = (*ItemStore)(nil)
	_ ports.VideoStatusUpdater = (*ItemStore)(nil)
)

// indexKeys maps each logical index onto its partition and sort attributes
var indexKeys = map[ports.IndexName][2]string{
	ports.AttributeIndex: {entities.AttrGSI1PK, entities.AttrGSI1SK},
	ports.VideoIndex:     {entities.AttrGSI2PK, entities.AttrGSI2SK},
	ports.TimeIndex:      {entities.AttrGSI3PK, entities.AttrGSI3SK},
}

// NewItemStore creates an empty store
func NewItemStore() *ItemStore {
	return &ItemStore{items: make(map[string]entities.Record)}
}

// Get returns a copy of the record, or nil when absent
func (s *ItemStore) Get(ctx context.Context, pk, sk string) (entities.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.items[pk+"|"+sk]
	if !ok {
		return nil, nil
	}
	return rec.Clone(), nil
}

// Put stores a copy of the record
func (s *ItemStore) Put(ctx context.Context, record entities.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record.PK() == "" || record.SK() == "" {
		return errors.New("record requires PK and SK")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := record.Identity()
	if _, exists := s.items[id]; !exists {
		s.order = append(s.order, id)
	}
	s.items[id] = record.Clone()
	return nil
}

// Query returns the partition's records with the sort key prefix, ordered by SK
func (s *ItemStore) Query(ctx context.Context, pk, skPrefix string) ([]entities.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entities.Record
	for _, id := range s.order {
		rec := s.items[id]
		if rec.PK() == pk && strings.HasPrefix(rec.SK(), skPrefix) {
			out = append(out, rec.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SK() < out[j].SK() })
	return out, nil
}

// QueryIndex returns the records projected into the index under indexPK
func (s *ItemStore) QueryIndex(ctx context.Context, index ports.IndexName, indexPK string) ([]entities.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keys, ok := indexKeys[index]
	if !ok {
		return nil, errors.New("unknown index: " + string(index))
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entities.Record
	for _, id := range s.order {
		rec := s.items[id]
		if rec.String(keys[0]) == indexPK {
			out = append(out, rec.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].String(keys[1]) < out[j].String(keys[1]) })
	return out, nil
}

// TransitionStatus applies a conditional status change
func (s *ItemStore) TransitionStatus(ctx context.Context, orgID, videoID string, from, to valueobjects.VideoStatus, attrs map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := valueobjects.OrgKey(orgID) + "|" + valueobjects.VideoKey(videoID)
	rec, ok := s.items[id]
	if !ok {
		return apperrors.NewNotFoundError("video")
	}
	if rec.String("status") != string(from) {
		return apperrors.NewConflictError("video status changed concurrently").
			WithDetails(map[string]interface{}{"status": rec.String("status")})
	}

	updated := rec.Clone()
	for k, v := range attrs {
		updated[k] = v
	}
	updated["status"] = string(to)
	s.items[id] = updated
	return nil
}

// Len returns the number of stored records
func (s *ItemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
