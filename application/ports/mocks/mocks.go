// Package mocks provides testify mocks of the application ports.
package mocks

import (
	"context"
	"time"

	"github.com/rahulAtGit/ZentriqVision/application/ports"
	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	"github.com/rahulAtGit/ZentriqVision/domain/events"

	"github.com/stretchr/testify/mock"
)

var (
	_ ports.ItemStore          = (*MockItemStore)(nil)
	_ ports.VideoStatusUpdater = (*MockItemStore)(nil)
	_ ports.BlobStore          = (*MockBlobStore)(nil)
	_ ports.EventPublisher     = (*MockEventPublisher)(nil)
	_ ports.IdentityProvider   = (*MockIdentityProvider)(nil)
)

type MockItemStore struct {
	mock.Mock
}

func (m *MockItemStore) Get(ctx context.Context, pk, sk string) (entities.Record, error) {
	args := m.Called(ctx, pk, sk)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entities.Record), args.Error(1)
}

func (m *MockItemStore) Put(ctx context.Context, record entities.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockItemStore) Query(ctx context.Context, pk, skPrefix string) ([]entities.Record, error) {
	args := m.Called(ctx, pk, skPrefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Record), args.Error(1)
}

func (m *MockItemStore) QueryIndex(ctx context.Context, index ports.IndexName, indexPK string) ([]entities.Record, error) {
	args := m.Called(ctx, index, indexPK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Record), args.Error(1)
}

func (m *MockItemStore) TransitionStatus(ctx context.Context, orgID, videoID string, from, to valueobjects.VideoStatus, attrs map[string]interface{}) error {
	args := m.Called(ctx, orgID, videoID, from, to, attrs)
	return args.Error(0)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) PresignGet(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, ttl)
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) SignUp(ctx context.Context, in ports.SignUpInput) (*ports.SignUpResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.SignUpResult), args.Error(1)
}

func (m *MockIdentityProvider) SignIn(ctx context.Context, email, password string) (*ports.AuthTokens, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.AuthTokens), args.Error(1)
}

func (m *MockIdentityProvider) ConfirmSignUp(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func (m *MockIdentityProvider) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockIdentityProvider) ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error {
	args := m.Called(ctx, email, code, newPassword)
	return args.Error(0)
}
