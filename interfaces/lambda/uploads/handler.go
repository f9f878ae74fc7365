// Package uploads turns S3 ObjectCreated notifications into video status
// transitions.
package uploads

import (
	"context"
	"net/url"
	"strings"

	"github.com/rahulAtGit/ZentriqVision/application/commands"
	"github.com/rahulAtGit/ZentriqVision/application/commands/bus"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// VideoSuffix selects the objects that start processing
const VideoSuffix = ".mp4"

// Summary counts what a notification batch did
type Summary struct {
	Transitioned int
	Unchanged    int
	Skipped      int
}

// Handler dispatches each uploaded object as a MarkProcessingCommand
type Handler struct {
	commandBus *bus.CommandBus
	logger     *zap.Logger
}

// NewHandler creates a new upload notification handler
func NewHandler(commandBus *bus.CommandBus, logger *zap.Logger) *Handler {
	return &Handler{commandBus: commandBus, logger: logger}
}

// Handle processes every record of the notification. Records that cannot
// name a video are skipped; store failures are returned together so the
// batch is redelivered.
func (h *Handler) Handle(ctx context.Context, event events.S3Event) (Summary, error) {
	var (
		summary Summary
		errs    error
	)
	for _, record := range event.Records {
		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			h.logger.Warn("Skipping object with undecodable key",
				zap.String("key", record.S3.Object.Key),
				zap.Error(err),
			)
			summary.Skipped++
			continue
		}
		if !strings.HasSuffix(strings.ToLower(key), VideoSuffix) {
			summary.Skipped++
			continue
		}

		result, err := h.commandBus.Send(ctx, commands.MarkProcessingCommand{
			Bucket: record.S3.Bucket.Name,
			Key:    key,
			Size:   record.S3.Object.Size,
		})
		if err != nil {
			if apperrors.IsValidation(err) {
				h.logger.Warn("Skipping object outside the video layout",
					zap.String("key", key),
					zap.Error(err),
				)
				summary.Skipped++
				continue
			}
			errs = multierr.Append(errs, err)
			continue
		}

		if res, ok := result.(*commands.MarkProcessingResult); ok && res.Transition {
			summary.Transitioned++
		} else {
			summary.Unchanged++
		}
	}

	h.logger.Info("Upload notifications processed",
		zap.Int("records", len(event.Records)),
		zap.Int("transitioned", summary.Transitioned),
		zap.Int("unchanged", summary.Unchanged),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, errs
}
