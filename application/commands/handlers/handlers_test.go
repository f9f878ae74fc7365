package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rahulAtGit/ZentriqVision/application/commands"
	"github.com/rahulAtGit/ZentriqVision/application/ports/mocks"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	"github.com/rahulAtGit/ZentriqVision/domain/events"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/persistence/memory"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func strPtr(s string) *string { return &s }

func TestRequestUploadHandler_Handle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewItemStore()
	blobs := new(mocks.MockBlobStore)
	publisher := new(mocks.MockEventPublisher)
	blobs.On("PresignPut", ctx, mock.MatchedBy(func(key string) bool {
		return len(key) > len("videos/acme/") && key[:len("videos/acme/")] == "videos/acme/"
	}), "video/mp4", time.Hour).Return("https://upload.example/put", nil)
	publisher.On("Publish", ctx, mock.AnythingOfType("events.VideoUploadRequested")).Return(nil)

	handler := NewRequestUploadHandler(store, blobs, publisher, fixedClock, time.Hour, zap.NewNop())
	size := int64(4096)
	result, err := handler.Handle(ctx, commands.RequestUploadCommand{
		OrgID:          "acme",
		UserID:         "u1",
		FileName:       "clip.mp4",
		FileType:       "video/mp4",
		FileSize:       &size,
		RequestedOrgID: "globex",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://upload.example/put", result.PresignedURL)
	assert.Equal(t, 3600, result.ExpiresIn)
	assert.Equal(t, "videos/acme/"+result.VideoID+"/clip.mp4", result.S3Key)
	id, err := valueobjects.NewVideoIDFromString(result.VideoID)
	require.NoError(t, err)
	assert.True(t, id.IsUUID())

	rec, err := store.Get(ctx, "ORG#acme", "VIDEO#"+result.VideoID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "UPLOADING", rec.String("status"))
	assert.Equal(t, "TIME#2024-03-10", rec.String("GSI3PK"))
	assert.Equal(t, "VIDEO#"+result.VideoID, rec.String("GSI2PK"))
	assert.Equal(t, "acme", rec.String("orgId"))

	blobs.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRequestUploadHandler_PublishFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	blobs := new(mocks.MockBlobStore)
	publisher := new(mocks.MockEventPublisher)
	blobs.On("PresignPut", ctx, mock.Anything, mock.Anything, mock.Anything).Return("https://upload.example/put", nil)
	publisher.On("Publish", ctx, mock.Anything).Return(errors.New("bus down"))

	handler := NewRequestUploadHandler(memory.NewItemStore(), blobs, publisher, fixedClock, 0, zap.NewNop())
	result, err := handler.Handle(ctx, commands.RequestUploadCommand{OrgID: "acme", UserID: "u1", FileName: "a.mov", FileType: "video/quicktime"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.VideoID)
}

func TestRequestUploadHandler_PresignFailure(t *testing.T) {
	ctx := context.Background()
	blobs := new(mocks.MockBlobStore)
	blobs.On("PresignPut", ctx, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("no credentials"))

	handler := NewRequestUploadHandler(memory.NewItemStore(), blobs, new(mocks.MockEventPublisher), fixedClock, 0, zap.NewNop())
	_, err := handler.Handle(ctx, commands.RequestUploadCommand{OrgID: "acme", UserID: "u1", FileName: "a.mp4", FileType: "video/mp4"})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestRequestUploadCommand_Validate(t *testing.T) {
	valid := commands.RequestUploadCommand{OrgID: "acme", UserID: "u1", FileName: "a.mp4", FileType: "video/mp4"}
	require.NoError(t, valid.Validate())

	tests := map[string]func(c *commands.RequestUploadCommand){
		"missing org":     func(c *commands.RequestUploadCommand) { c.OrgID = "" },
		"image type":      func(c *commands.RequestUploadCommand) { c.FileType = "image/png" },
		"path in name":    func(c *commands.RequestUploadCommand) { c.FileName = "../a.mp4" },
		"missing name":    func(c *commands.RequestUploadCommand) { c.FileName = "" },
		"zero size":       func(c *commands.RequestUploadCommand) { zero := int64(0); c.FileSize = &zero },
		"missing user id": func(c *commands.RequestUploadCommand) { c.UserID = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cmd := valid
			mutate(&cmd)
			assert.True(t, apperrors.IsValidation(cmd.Validate()))
		})
	}
}

func TestUpdateProfileHandler_Handle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewItemStore()
	publisher := new(mocks.MockEventPublisher)
	publisher.On("Publish", ctx, mock.MatchedBy(func(e events.UserProfileUpdated) bool {
		return e.UserID == "u1" && len(e.ChangedFields) == 1 && e.ChangedFields[0] == "phoneNumber"
	})).Return(nil)

	handler := NewUpdateProfileHandler(store, publisher, fixedClock, zap.NewNop())
	result, err := handler.Handle(ctx, commands.UpdateProfileCommand{
		UserID:      "u1",
		Email:       "ada@example.com",
		GivenName:   "Ada",
		OrgID:       "acme",
		PhoneNumber: strPtr("+15551234567"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Ada", result.GivenName)
	assert.Equal(t, "+15551234567", result.PhoneNumber)
	assert.Equal(t, "acme", result.OrgID)

	rec, _ := store.Get(ctx, "USER#u1", "PROFILE#u1")
	assert.Equal(t, "+15551234567", rec.String("phoneNumber"))
	publisher.AssertExpectations(t)
}

func TestUpdateProfileCommand_Validate(t *testing.T) {
	assert.True(t, apperrors.IsValidation(commands.UpdateProfileCommand{UserID: "u1"}.Validate()))
	assert.True(t, apperrors.IsValidation(commands.UpdateProfileCommand{UserID: "u1", PhoneNumber: strPtr("555")}.Validate()))
	assert.NoError(t, commands.UpdateProfileCommand{UserID: "u1", NewGivenName: strPtr("Ada")}.Validate())
}

func TestUpdateProfileHandler_BlankName(t *testing.T) {
	handler := NewUpdateProfileHandler(memory.NewItemStore(), new(mocks.MockEventPublisher), fixedClock, zap.NewNop())

	_, err := handler.Handle(context.Background(), commands.UpdateProfileCommand{UserID: "u1", NewGivenName: strPtr("   ")})

	assert.True(t, apperrors.IsValidation(err))
}

func presignAll() *mocks.MockBlobStore {
	blobs := new(mocks.MockBlobStore)
	blobs.On("PresignPut", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("https://upload.example/put", nil)
	return blobs
}

func quietPublisher() *mocks.MockEventPublisher {
	publisher := new(mocks.MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	return publisher
}

func TestMarkProcessingHandler_Handle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewItemStore()
	upload, err := NewRequestUploadHandler(store, presignAll(), quietPublisher(), fixedClock, 0, zap.NewNop()).
		Handle(ctx, commands.RequestUploadCommand{OrgID: "acme", UserID: "u1", FileName: "clip.mp4", FileType: "video/mp4"})
	require.NoError(t, err)

	publisher := new(mocks.MockEventPublisher)
	publisher.On("Publish", ctx, mock.MatchedBy(func(e events.VideoProcessingStarted) bool {
		return e.VideoID == upload.VideoID && e.OrgID == "acme" && e.FileSize == 2048 && e.Bucket == "videos-bucket"
	})).Return(nil).Once()
	handler := NewMarkProcessingHandler(store, publisher, fixedClock, zap.NewNop())
	cmd := commands.MarkProcessingCommand{Bucket: "videos-bucket", Key: upload.S3Key, Size: 2048}

	result, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, result.Transition)

	rec, _ := store.Get(ctx, "ORG#acme", "VIDEO#"+upload.VideoID)
	assert.Equal(t, "PROCESSING", rec.String("status"))
	assert.Equal(t, "2024-03-10T12:00:00Z", rec.String("processingStartedAt"))

	again, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, again.Transition)
	publisher.AssertExpectations(t)
}

func TestMarkProcessingHandler_UnknownVideo(t *testing.T) {
	handler := NewMarkProcessingHandler(memory.NewItemStore(), new(mocks.MockEventPublisher), fixedClock, zap.NewNop())

	result, err := handler.Handle(context.Background(), commands.MarkProcessingCommand{Bucket: "b", Key: "videos/acme/v9/a.mp4", Size: 1})

	require.NoError(t, err)
	assert.False(t, result.Transition)
}

func TestMarkProcessingHandler_StoreFailure(t *testing.T) {
	ctx := context.Background()
	updater := new(mocks.MockItemStore)
	updater.On("TransitionStatus", ctx, "acme", "v1", valueobjects.StatusUploading, valueobjects.StatusProcessing, mock.Anything).
		Return(errors.New("throttled"))

	_, err := NewMarkProcessingHandler(updater, new(mocks.MockEventPublisher), fixedClock, zap.NewNop()).
		Handle(ctx, commands.MarkProcessingCommand{Bucket: "b", Key: "videos/acme/v1/a.mp4", Size: 1})

	assert.True(t, apperrors.IsDatabase(err))
}

func TestMarkProcessingCommand_Validate(t *testing.T) {
	assert.NoError(t, commands.MarkProcessingCommand{Bucket: "b", Key: "videos/acme/v1/a.mp4"}.Validate())
	assert.Error(t, commands.MarkProcessingCommand{Bucket: "b", Key: "uploads/a.mp4"}.Validate())
	assert.Error(t, commands.MarkProcessingCommand{Key: "videos/acme/v1/a.mp4"}.Validate())
}
