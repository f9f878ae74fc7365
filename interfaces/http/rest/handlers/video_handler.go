package handlers

import (
	"net/http"
	"strings"

	"github.com/rahulAtGit/ZentriqVision/application/commands"
	"github.com/rahulAtGit/ZentriqVision/application/commands/bus"
	"github.com/rahulAtGit/ZentriqVision/application/queries"
	querybus "github.com/rahulAtGit/ZentriqVision/application/queries/bus"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// VideoHandler handles upload, search and video read requests
type VideoHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errs *apperrors.ErrorHandler,
	logger *zap.Logger,
) *VideoHandler {
	return &VideoHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errs,
		logger:     logger,
	}
}

// UploadRequest is the body of POST /upload. orgId is advisory; the
// principal's organization always wins.
type UploadRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	FileSize *int64 `json:"fileSize,omitempty"`
	OrgID    string `json:"orgId,omitempty"`
}

// RequestUpload handles POST /upload
func (h *VideoHandler) RequestUpload(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req UploadRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.RequestUploadCommand{
		OrgID:          user.OrgID,
		UserID:         user.UserID,
		FileName:       strings.TrimSpace(req.FileName),
		FileType:       req.FileType,
		FileSize:       req.FileSize,
		RequestedOrgID: req.OrgID,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result, h.logger)
}

// Search handles GET /search
func (h *VideoHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	filters, err := ParseSearchFilters(r.URL.Query())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.SearchVideosQuery{
		OrgID:          user.OrgID,
		RequestedOrgID: r.URL.Query().Get("orgId"),
		Filters:        filters,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result, h.logger)
}

// ListVideos handles GET /videos
func (h *VideoHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	limit, err := parseLimit(r.URL.Query())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListVideosQuery{
		OrgID:  user.OrgID,
		Status: strings.ToUpper(r.URL.Query().Get("status")),
		Limit:  limit,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result, h.logger)
}

// GetVideo handles GET /videos/{videoID}
func (h *VideoHandler) GetVideo(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetVideoQuery{
		OrgID:   user.OrgID,
		VideoID: chi.URLParam(r, "videoID"),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result, h.logger)
}

// GetPlayback handles GET /videos/{videoID}/playback
func (h *VideoHandler) GetPlayback(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetPlaybackQuery{
		OrgID:   user.OrgID,
		VideoID: chi.URLParam(r, "videoID"),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result, h.logger)
}
