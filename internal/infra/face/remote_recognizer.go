package face

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"faceauth/config"
	"faceauth/internal/domain/entity"
	domainerrors "faceauth/internal/domain/errors"
	"faceauth/internal/domain/service"
	"faceauth/internal/errors"
	"faceauth/internal/util"

	"go.uber.org/fx"
)

// maxResponseSize caps a descriptor service response at 1MB.
const maxResponseSize = 1 << 20

type descriptorsRequest struct {
	Image string `json:"image"`
}

type descriptorsResponse struct {
	Descriptors []entity.Descriptor `json:"descriptors"`
}

// RemoteRecognizer extracts descriptors through the HTTP face service and
// matches them in process.
type RemoteRecognizer struct {
	baseURL    string
	httpClient *http.Client
	matcher    *Matcher
	logger     *slog.Logger
}

// RecognizerParams holds dependencies for FaceRecognizer, injected by Fx
type RecognizerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewFaceRecognizer builds the recognizer and probes the face service on start.
func NewFaceRecognizer(params RecognizerParams) (service.FaceRecognizer, error) {
	cfg := params.Config.Face
	if cfg == nil || cfg.ServiceURL == "" {
		return nil, errors.New("face.serviceUrl is required")
	}

	recognizer := NewRemoteRecognizer(cfg, params.Logger)

	if !cfg.SkipStartupProbe {
		params.Lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := recognizer.Ping(ctx); err != nil {
					return errors.Wrap(err, "face service is not reachable")
				}
				params.Logger.Info("Face service reachable", slog.String("url", cfg.ServiceURL))

				return nil
			},
		})
	}

	return recognizer, nil
}

// NewRemoteRecognizer creates a recognizer for the service at cfg.ServiceURL.
func NewRemoteRecognizer(cfg *config.FaceConfig, logger *slog.Logger) *RemoteRecognizer {
	return &RemoteRecognizer{
		baseURL: strings.TrimRight(cfg.ServiceURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		matcher: NewMatcher(cfg.DistanceThreshold),
		logger:  logger,
	}
}

// Ping checks the service health endpoint.
func (r *RemoteRecognizer) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/health", http.NoBody)
	if err != nil {
		return errors.WithStack(err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("face service health returned status: %d", resp.StatusCode)
	}

	return nil
}

// Detect returns one descriptor per face found in image.
func (r *RemoteRecognizer) Detect(ctx context.Context, image string) ([]entity.Descriptor, error) {
	body, err := json.Marshal(descriptorsRequest{Image: image})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/descriptors", bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.ErrFaceServiceFailed.WrapMessage(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil, domainerrors.ErrFaceServiceFailed.WrapMessage("descriptor extraction returned status " + resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, domainerrors.ErrFaceServiceFailed.WrapMessage("read descriptor response: " + err.Error())
	}
	if len(raw) > maxResponseSize {
		return nil, domainerrors.ErrFaceServiceFailed.WrapMessage("descriptor response exceeds " + util.FormatSize(maxResponseSize))
	}

	var decoded descriptorsResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, domainerrors.ErrFaceServiceFailed.WrapMessage("malformed descriptor response: " + err.Error())
	}

	descriptors := make([]entity.Descriptor, 0, len(decoded.Descriptors))
	for _, descriptor := range decoded.Descriptors {
		if len(descriptor) > 0 {
			descriptors = append(descriptors, descriptor)
		}
	}

	return descriptors, nil
}

// LabelDescriptors pairs each label with the first face detected in the matching image.
func (r *RemoteRecognizer) LabelDescriptors(ctx context.Context, labels, images []string) ([]entity.LabeledDescriptors, error) {
	if len(labels) != len(images) {
		return nil, errors.Errorf("labels and images differ in length: %d != %d", len(labels), len(images))
	}

	labeled := make([]entity.LabeledDescriptors, 0, len(labels))
	for i, label := range labels {
		descriptors, err := r.Detect(ctx, images[i])
		if err != nil {
			return nil, err
		}

		entry := entity.LabeledDescriptors{Label: label, Descriptors: []entity.Descriptor{}}
		if len(descriptors) > 0 {
			entry.Descriptors = append(entry.Descriptors, descriptors[0])
		} else {
			r.logger.Debug("No face detected in image", slog.String("label", label))
		}
		labeled = append(labeled, entry)
	}

	return labeled, nil
}

// MatchedLabels returns the reference labels matched by any probe.
func (r *RemoteRecognizer) MatchedLabels(probes []entity.Descriptor, reference []entity.LabeledDescriptors) []string {
	return r.matcher.Match(probes, reference).MatchedLabels
}

// Module provides the face recognizer FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewFaceRecognizer),
)
