package analysis

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spend-analytics/internal/analytics"
	"github.com/carson-networks/spend-analytics/internal/logging"
)

// TrendsResponseBody is the response body for monthly trends.
type TrendsResponseBody struct {
	Message string `json:"message,omitempty" doc:"Set when no transactions are stored"`
	analytics.TrendResult
}

// TrendsOutput is the Huma output for monthly trends.
type TrendsOutput struct {
	Body TrendsResponseBody
}

// trendsReader is the interface for computing monthly trends.
type trendsReader interface {
	Trends(ctx context.Context) (*analytics.TrendResult, error)
}

// TrendsHandler handles GET /trends.
type TrendsHandler struct {
	AnalyticsService trendsReader
}

// NewTrendsHandler creates a new TrendsHandler.
func NewTrendsHandler(svc trendsReader) *TrendsHandler {
	return &TrendsHandler{AnalyticsService: svc}
}

// Register registers the trends endpoint with the Huma API.
func (h *TrendsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-trends",
		Method:      http.MethodGet,
		Path:        "/trends",
		Summary:     "Monthly trends",
		Description: "Returns spending per calendar month, oldest month first.",
		Tags:        []string{"Analytics"},
	}, h.handle)
}

func (h *TrendsHandler) handle(ctx context.Context, _ *struct{}) (*TrendsOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("trendsMs")
	}
	result, err := h.AnalyticsService.Trends(ctx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		if logData != nil {
			logData.AddData("error", err.Error())
		}
		return nil, huma.Error500InternalServerError("Server error: " + err.Error())
	}

	if logData != nil {
		logData.AddData("monthsCount", result.MonthsCount)
	}

	body := TrendsResponseBody{TrendResult: *result}
	if result.MonthsCount == 0 {
		body.Message = noDataMessage
	}
	return &TrendsOutput{Body: body}, nil
}
