package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rahulAtGit/ZentriqVision/application/ports"
	"github.com/rahulAtGit/ZentriqVision/application/ports/mocks"
	"github.com/rahulAtGit/ZentriqVision/application/services"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/config"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/di"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/persistence/memory"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/persistence/seed"
	"github.com/rahulAtGit/ZentriqVision/pkg/auth"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"
	"github.com/rahulAtGit/ZentriqVision/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	handler   http.Handler
	blobs     *mocks.MockBlobStore
	identity  *mocks.MockIdentityProvider
	signer    *auth.JWTSigner
	collector *observability.Collector
}

func newTestServer(t *testing.T, opts ...Option) *testServer {
	t.Helper()
	ctx := context.Background()
	cfg := config.Default()
	logger := zap.NewNop()

	store := memory.NewItemStore()
	records, err := seed.Demo("acme", "u1", time.Now())
	require.NoError(t, err)
	_, err = seed.Load(ctx, store, records, logger)
	require.NoError(t, err)

	blobs := new(mocks.MockBlobStore)
	publisher := new(mocks.MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	identity := new(mocks.MockIdentityProvider)
	clock := ports.Clock(time.Now)
	metrics := observability.NopMetrics{}

	mark := di.ProvideMarkProcessingHandler(store, publisher, clock, logger)
	commandBus, err := di.ProvideCommandBus(store, blobs, publisher, mark, clock, cfg, metrics, logger)
	require.NoError(t, err)
	queryBus, err := di.ProvideQueryBus(store, blobs, di.ProvideSearchRouter(store, cfg, logger), clock, cfg, metrics, logger)
	require.NoError(t, err)

	validator, err := auth.NewJWTValidator(ctx, cfg.JWT())
	require.NoError(t, err)
	signer, err := auth.NewJWTSigner(config.DevJWTSecret, cfg.JWTIssuer, nil, time.Hour)
	require.NoError(t, err)

	collector := observability.NewCollector("zv")
	opts = append([]Option{WithCollector(collector)}, opts...)
	router := NewRouter(
		commandBus,
		queryBus,
		services.NewAccountService(identity, validator, logger),
		validator,
		apperrors.NewErrorHandler(logger, false),
		logger,
		opts...,
	)

	return &testServer{
		handler:   router.Setup(),
		blobs:     blobs,
		identity:  identity,
		signer:    signer,
		collector: collector,
	}
}

func (s *testServer) token(t *testing.T, orgID string) string {
	t.Helper()
	token, err := s.signer.Sign(auth.UserContext{UserID: "u1", Email: "ada@acme.io", GivenName: "Ada", OrgID: orgID}, time.Now())
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])

	rec, body = s.do(t, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, true, body["error"])

	metrics, _ := s.do(t, http.MethodGet, "/metrics", "", "")
	assert.Contains(t, metrics.Body.String(), `route="/health"`)
}

func TestRouter_Readiness(t *testing.T) {
	s := newTestServer(t, WithReadinessCheck(func(context.Context) error { return errors.New("table unreachable") }))

	rec, _ := s.do(t, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodGet, "/videos", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, true, body["error"])

	rec, _ = s.do(t, http.MethodGet, "/videos", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ListAndSearch(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "acme")

	rec, body := s.do(t, http.MethodGet, "/videos", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(3), body["count"])
	assert.Equal(t, "acme", body["orgId"])

	rec, body = s.do(t, http.MethodGet, "/videos?status=processed", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])

	rec, body = s.do(t, http.MethodGet, "/search?color=red&orgId=globex", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, "acme", body["orgId"])

	rec, _ = s.do(t, http.MethodGet, "/search?mask=maybe", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Another organization sees nothing of acme
	rec, body = s.do(t, http.MethodGet, "/videos", s.token(t, "globex"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["count"])
}

func TestRouter_VideoAndPlayback(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "acme")
	ids := seed.VideoIDs("acme")
	processed, processing := ids[0], ids[1]
	s.blobs.On("PresignGet", mock.Anything, mock.Anything, "video/mp4", time.Hour).Return("https://videos.example/get", nil)

	rec, body := s.do(t, http.MethodGet, "/videos/"+processed, token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "PROCESSED", body["status"])

	rec, body = s.do(t, http.MethodGet, "/videos/"+processed+"/playback", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "https://videos.example/get", body["presignedUrl"])
	assert.Equal(t, float64(3600), body["expiresIn"])

	rec, body = s.do(t, http.MethodGet, "/videos/"+processing+"/playback", token, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok, rec.Body.String())
	assert.Equal(t, "PROCESSING", details["status"])

	rec, _ = s.do(t, http.MethodGet, "/videos/"+processed, s.token(t, "globex"), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Upload(t *testing.T) {
	s := newTestServer(t)
	s.blobs.On("PresignPut", mock.Anything, mock.Anything, "video/mp4", time.Hour).Return("https://videos.example/put", nil)

	rec, body := s.do(t, http.MethodPost, "/upload", s.token(t, "acme"), `{"fileName":"lobby.mp4","fileType":"video/mp4","orgId":"globex"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "https://videos.example/put", body["presignedUrl"])
	assert.True(t, strings.HasPrefix(body["s3Key"].(string), "videos/acme/"))

	rec, _ = s.do(t, http.MethodPost, "/upload", s.token(t, "acme"), `{"fileType":"video/mp4"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Profile(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "acme")

	rec, body := s.do(t, http.MethodGet, "/user/profile", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "u1", body["userId"])
	assert.Equal(t, "Ada", body["givenName"])

	rec, _ = s.do(t, http.MethodPut, "/user/profile", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = s.do(t, http.MethodPut, "/user/profile", token, `{"givenName":"Grace"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Grace", body["givenName"])
}

func TestRouter_SignIn(t *testing.T) {
	s := newTestServer(t)
	s.identity.On("SignIn", mock.Anything, "ada@acme.io", "pw").
		Return(&ports.AuthTokens{AccessToken: "at", IDToken: "it", ExpiresIn: 3600}, nil)

	rec, body := s.do(t, http.MethodPost, "/auth/signin", "", `{"email":"Ada@acme.io","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "at", body["accessToken"])
	assert.Equal(t, "it", body["idToken"])

	rec, _ = s.do(t, http.MethodPost, "/auth/signin", "", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AuthRateLimit(t *testing.T) {
	s := newTestServer(t, WithAuthRateLimiter(auth.NewIPRateLimiter(1)))

	first, _ := s.do(t, http.MethodPost, "/auth/forgot-password", "", `{"email":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, first.Code)

	second, _ := s.do(t, http.MethodPost, "/auth/forgot-password", "", `{"email":"bad"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
