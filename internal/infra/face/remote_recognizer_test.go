package face

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"faceauth/config"
	"faceauth/internal/domain/entity"
	domainerrors "faceauth/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newFaceService(t *testing.T, faces map[string][]entity.Descriptor) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /descriptors", func(w http.ResponseWriter, r *http.Request) {
		var req descriptorsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)

			return
		}
		if req.Image == "broken" {
			w.WriteHeader(http.StatusInternalServerError)

			return
		}
		descriptors := faces[req.Image]
		if descriptors == nil {
			descriptors = []entity.Descriptor{}
		}
		_ = json.NewEncoder(w).Encode(descriptorsResponse{Descriptors: descriptors})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func newTestRecognizer(url string) *RemoteRecognizer {
	return NewRemoteRecognizer(&config.FaceConfig{
		ServiceURL:        url + "/",
		DistanceThreshold: 0.6,
		Timeout:           time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRemoteRecognizer_Detect(t *testing.T) {
	server := newFaceService(t, map[string][]entity.Descriptor{
		"two-faces": {{0.1, 0.2}, {0.3, 0.4}},
	})
	recognizer := newTestRecognizer(server.URL)

	descriptors, err := recognizer.Detect(context.Background(), "two-faces")
	require.NoError(t, err)
	assert.Equal(t, []entity.Descriptor{{0.1, 0.2}, {0.3, 0.4}}, descriptors)

	descriptors, err = recognizer.Detect(context.Background(), "no-face")
	require.NoError(t, err)
	assert.Empty(t, descriptors)
}

func TestRemoteRecognizer_DetectServiceFailure(t *testing.T) {
	server := newFaceService(t, nil)
	recognizer := newTestRecognizer(server.URL)

	_, err := recognizer.Detect(context.Background(), "broken")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrFaceServiceFailed))
}

func TestRemoteRecognizer_DetectOversizedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// valid JSON once the leading whitespace is skipped
		_, _ = io.WriteString(w, strings.Repeat(" ", maxResponseSize)+`{"descriptors":[[0.1]]}`)
	}))
	t.Cleanup(server.Close)

	_, err := newTestRecognizer(server.URL).Detect(context.Background(), "face")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrFaceServiceFailed))
	assert.Contains(t, err.Error(), "exceeds 1 MiB")
}

func TestRemoteRecognizer_LabelDescriptors(t *testing.T) {
	server := newFaceService(t, map[string][]entity.Descriptor{
		"face": {{0.1, 0.2}, {0.3, 0.4}},
	})
	recognizer := newTestRecognizer(server.URL)

	labeled, err := recognizer.LabelDescriptors(context.Background(), []string{"a@x.com", "b@x.com"}, []string{"face", "blank"})
	require.NoError(t, err)
	require.Len(t, labeled, 2)

	assert.Equal(t, "a@x.com", labeled[0].Label)
	assert.Equal(t, []entity.Descriptor{{0.1, 0.2}}, labeled[0].Descriptors)
	assert.Equal(t, "b@x.com", labeled[1].Label)
	assert.Empty(t, labeled[1].Descriptors)

	_, err = recognizer.LabelDescriptors(context.Background(), []string{"a"}, nil)
	assert.Error(t, err)
}

func TestRemoteRecognizer_MatchedLabels(t *testing.T) {
	recognizer := newTestRecognizer("http://unused")

	labels := recognizer.MatchedLabels(
		[]entity.Descriptor{{0, 0.1}},
		[]entity.LabeledDescriptors{{Label: "a@x.com", Descriptors: []entity.Descriptor{{0, 0}}}},
	)
	assert.Equal(t, []string{"a@x.com"}, labels)
}

func TestNewFaceRecognizer_StartupProbe(t *testing.T) {
	server := newFaceService(t, nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	lc := fxtest.NewLifecycle(t)
	_, err := NewFaceRecognizer(RecognizerParams{
		Lc:     lc,
		Config: &config.Config{Face: &config.FaceConfig{ServiceURL: server.URL, Timeout: time.Second}},
		Logger: logger,
	})
	require.NoError(t, err)
	require.NoError(t, lc.Start(context.Background()))
	require.NoError(t, lc.Stop(context.Background()))

	down := fxtest.NewLifecycle(t)
	_, err = NewFaceRecognizer(RecognizerParams{
		Lc:     down,
		Config: &config.Config{Face: &config.FaceConfig{ServiceURL: "http://127.0.0.1:1", Timeout: time.Second}},
		Logger: logger,
	})
	require.NoError(t, err)
	assert.Error(t, down.Start(context.Background()))
}

func TestNewFaceRecognizer_RequiresURL(t *testing.T) {
	_, err := NewFaceRecognizer(RecognizerParams{
		Lc:     fxtest.NewLifecycle(t),
		Config: &config.Config{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	assert.Error(t, err)
}
