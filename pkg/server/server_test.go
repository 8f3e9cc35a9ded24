package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/claims-report/pkg/models/api"
	"github.com/de-tools/claims-report/pkg/models/domain"
	reportsvc "github.com/de-tools/claims-report/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockReports struct {
	mock.Mock
}

func (m *mockReports) Get(ctx context.Context, req reportsvc.Request) (*domain.Report, error) {
	args := m.Called(ctx, req)
	rep, _ := args.Get(0).(*domain.Report)
	return rep, args.Error(1)
}

func (m *mockReports) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var v T
		err := json.Unmarshal(data, &v)
		return v, err
	}
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	reports := new(mockReports)

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Reports: reports,
			Logger:  logger,
		},
	}
	testServer := httptest.NewServer(ConfigureRouter(config))
	defer testServer.Close()

	weekly := &domain.Report{
		Mode:    domain.ModeWeekly,
		Window:  domain.DateWindow{Mode: domain.ModeWeekly, From: "2025-03-09", To: "2025-03-16", Today: "2025-03-12"},
		Columns: domain.Columns,
		Rows: []domain.Row{
			{ClaimID: "c-1", Client: "Acme", Status: domain.StatusDelivered, CourierName: "Ana"},
		},
	}

	tests := []struct {
		name           string
		method         string
		path           string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "ListModes",
			method:         http.MethodGet,
			path:           "/api/v1/modes",
			setupMocks:     func() {},
			expectedStatus: http.StatusOK,
			expected: []api.Mode{
				{Name: "Weekly"}, {Name: "Monthly"}, {Name: "Received"},
				{Name: "Today"}, {Name: "Yesterday"}, {Name: "Tomorrow"},
			},
			parseResponse: unmarshalResponse[[]api.Mode](),
		},
		{
			name:   "ListCouriers",
			method: http.MethodGet,
			path:   "/api/v1/reports/weekly/couriers",
			setupMocks: func() {
				reports.On("Get", mock.Anything, reportsvc.Request{Mode: domain.ModeWeekly}).Return(weekly, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       []string{"Ana"},
			parseResponse:  unmarshalResponse[[]string](),
		},
		{
			name:           "GetReport_InvalidStart",
			method:         http.MethodGet,
			path:           "/api/v1/reports/today?start=invalid-date",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expected:       "invalid 'start' date format. Expected format: YYYY-MM-DD\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:   "Refresh",
			method: http.MethodPost,
			path:   "/api/v1/reports/refresh",
			setupMocks: func() {
				reports.On("Refresh", mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
			expected:       "",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()

			req, err := http.NewRequest(tt.method, testServer.URL+tt.path, nil)
			require.NoError(t, err)
			resp, err := testServer.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			got, err := tt.parseResponse(body)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	reports.AssertExpectations(t)
}

func TestWebAPI_Run_StopsOnContextCancel(t *testing.T) {
	webAPI := NewWebAPI(Config{
		Addr:         "127.0.0.1:0",
		Dependencies: Dependencies{Reports: new(mockReports), Logger: zerolog.Nop()},
	})
	assert.Equal(t, defaultShutdownTimeout, webAPI.shutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NoError(t, webAPI.Run(ctx))
}
