package handlers

import (
	"context"
	"errors"

	"github.com/rahulAtGit/ZentriqVision/application/ports"
	"github.com/rahulAtGit/ZentriqVision/application/queries"
	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"go.uber.org/zap"
)

// Search branches, reported in logs and metrics
const (
	BranchVideoLookup = "video_lookup"
	BranchAttribute   = "attribute_union"
	BranchVideoIndex  = "video_index"
	BranchTimeIndex   = "time_index"
	BranchDefault     = "org_videos"
)

// SearchLimits bounds the number of returned records
type SearchLimits struct {
	Default int
	Max     int
}

// DefaultSearchLimits returns the stock limit settings
func DefaultSearchLimits() SearchLimits {
	return SearchLimits{Default: 50, Max: 100}
}

// SearchRouter picks exactly one access path for a filter set, then applies
// the post-filters and the limit. Dispatch order is fixed: a lone videoId,
// attribute dimensions, videoId with other filters, time range, org listing.
type SearchRouter struct {
	store  ports.ItemStore
	limits SearchLimits
	logger *zap.Logger
}

// NewSearchRouter creates a new search router
func NewSearchRouter(store ports.ItemStore, limits SearchLimits, logger *zap.Logger) *SearchRouter {
	if limits.Default <= 0 {
		limits.Default = DefaultSearchLimits().Default
	}
	if limits.Max <= 0 {
		limits.Max = DefaultSearchLimits().Max
	}
	if limits.Default > limits.Max {
		limits.Default = limits.Max
	}
	return &SearchRouter{
		store:  store,
		limits: limits,
		logger: logger,
	}
}

// Branch reports which access path Search takes for the filters
func Branch(f queries.SearchFilters) string {
	switch {
	case f.VideoOnly():
		return BranchVideoLookup
	case f.HasAttributeFilter():
		return BranchAttribute
	case f.VideoID != "":
		return BranchVideoIndex
	case f.TimeRange != nil:
		return BranchTimeIndex
	default:
		return BranchDefault
	}
}

// Search returns the records visible to orgID that match the filters
func (r *SearchRouter) Search(ctx context.Context, orgID string, f queries.SearchFilters) ([]entities.Record, error) {
	records, branch, err := r.candidates(ctx, orgID, f)
	if err != nil {
		return nil, err
	}

	limit := r.limit(f.Limit)
	if len(records) > limit {
		records = records[:limit]
	}

	r.logger.Debug("Search completed",
		zap.String("orgID", orgID),
		zap.String("branch", branch),
		zap.Int("count", len(records)),
		zap.Int("limit", limit),
	)
	return records, nil
}

// candidates runs the chosen branch and the post-filters, without the limit
func (r *SearchRouter) candidates(ctx context.Context, orgID string, f queries.SearchFilters) ([]entities.Record, string, error) {
	if orgID == "" {
		return nil, "", apperrors.NewValidationError("organization ID is required")
	}
	if err := f.Validate(); err != nil {
		return nil, "", err
	}

	orgKey := valueobjects.OrgKey(orgID)
	branch := Branch(f)

	var (
		records []entities.Record
		err     error
	)
	switch branch {
	case BranchVideoLookup:
		records, err = r.videoLookup(ctx, orgID, f.VideoID)
	case BranchAttribute:
		records, err = r.attributeUnion(ctx, orgKey, f.AttributeKeys())
	case BranchVideoIndex:
		records, err = r.queryIndex(ctx, orgKey, ports.VideoIndex, valueobjects.VideoKey(f.VideoID))
	case BranchTimeIndex:
		var day string
		day, err = f.TimeRange.StartDay()
		if err != nil {
			return nil, branch, apperrors.NewValidationError(err.Error())
		}
		records, err = r.queryIndex(ctx, orgKey, ports.TimeIndex, valueobjects.TimeKey(day))
	default:
		records, err = r.store.Query(ctx, orgKey, valueobjects.VideoPrefix)
	}
	if err != nil {
		return nil, branch, storeFailure("search", err)
	}

	if branch != BranchVideoLookup {
		records = postFilter(records, f)
	}
	return records, branch, nil
}

func (r *SearchRouter) limit(requested int) int {
	if requested <= 0 {
		return r.limits.Default
	}
	if requested > r.limits.Max {
		return r.limits.Max
	}
	return requested
}

func (r *SearchRouter) videoLookup(ctx context.Context, orgID, videoID string) ([]entities.Record, error) {
	rec, err := r.store.Get(ctx, valueobjects.OrgKey(orgID), valueobjects.VideoKey(videoID))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return []entities.Record{}, nil
	}
	if owner := rec.String("orgId"); owner != orgID {
		r.logger.Warn("Security event: video record owner does not match its partition",
			zap.String("orgID", orgID),
			zap.String("recordOrgID", owner),
			zap.String("videoID", videoID),
			zap.Bool("security_event", true),
		)
		return []entities.Record{}, nil
	}
	return []entities.Record{rec}, nil
}

// attributeUnion queries each dimension in turn and ORs the results
func (r *SearchRouter) attributeUnion(ctx context.Context, orgKey string, keys []string) ([]entities.Record, error) {
	seen := make(map[string]struct{})
	var out []entities.Record
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, err := r.queryIndex(ctx, orgKey, ports.AttributeIndex, key)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			id := rec.Identity()
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *SearchRouter) queryIndex(ctx context.Context, orgKey string, index ports.IndexName, key string) ([]entities.Record, error) {
	recs, err := r.store.QueryIndex(ctx, index, key)
	if err != nil {
		return nil, err
	}
	owned := make([]entities.Record, 0, len(recs))
	for _, rec := range recs {
		if rec.PK() == orgKey {
			owned = append(owned, rec)
		}
	}
	return owned, nil
}

func postFilter(recs []entities.Record, f queries.SearchFilters) []entities.Record {
	if f.PersonID == "" && f.Mask == nil {
		return recs
	}
	out := make([]entities.Record, 0, len(recs))
	for _, rec := range recs {
		if f.PersonID != "" && rec.String("personId") != f.PersonID {
			continue
		}
		if f.Mask != nil {
			attrs, ok := rec.Attributes()
			if !ok {
				continue
			}
			mask, ok := attrs["mask"].(bool)
			if !ok || mask != *f.Mask {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

// storeFailure keeps application errors and cancellation as they are and
// reports anything else as a store failure
func storeFailure(op string, err error) error {
	if apperrors.IsAppError(err) || ctxErr(err) {
		return err
	}
	return apperrors.NewDatabaseError(op, err)
}

func ctxErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
