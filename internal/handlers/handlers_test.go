package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/productforge/backend/internal/exporter"
	"github.com/productforge/backend/internal/models"
	"github.com/productforge/backend/internal/service"
)

// MockHumanizeService is a mock implementation of HumanizeServiceInterface
type MockHumanizeService struct {
	mock.Mock
}

func (m *MockHumanizeService) Humanize(ctx context.Context, in service.HumanizeInput) (*service.HumanizeOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HumanizeOutput), args.Error(1)
}

func (m *MockHumanizeService) Profiles() []service.ProfileInfo {
	return m.Called().Get(0).([]service.ProfileInfo)
}

// MockExportService is a mock implementation of ExportServiceInterface
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context, owner string, project *models.ExportableProject, format string, opts exporter.Options) (*exporter.Artifact, exporter.Result) {
	args := m.Called(ctx, owner, project, format, opts)
	artifact, _ := args.Get(0).(*exporter.Artifact)
	return artifact, args.Get(1).(exporter.Result)
}

func (m *MockExportService) History(ctx context.Context, owner string) ([]models.ExportHistoryEntry, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExportHistoryEntry), args.Error(1)
}

func (m *MockExportService) Stats(ctx context.Context, owner string) (*models.ExportStats, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExportStats), args.Error(1)
}

func (m *MockExportService) Formats() []exporter.FormatInfo {
	return m.Called().Get(0).([]exporter.FormatInfo)
}

// MockHealthChecker is a mock implementation of HealthChecker
type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// envelope mirrors utils.Response with raw data for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		Page       int `json:"page"`
		PageSize   int `json:"page_size"`
		TotalItems int `json:"total_items"`
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}
