package analysis

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spend-analytics/internal/analytics"
	"github.com/carson-networks/spend-analytics/internal/logging"
)

const noDataMessage = "No transactions found. Please upload data first."

// SummaryResponseBody is the response body for the spending summary.
type SummaryResponseBody struct {
	Message string `json:"message,omitempty" doc:"Set when no transactions are stored"`
	analytics.SummaryResult
}

// SummaryOutput is the Huma output for the spending summary.
type SummaryOutput struct {
	Body SummaryResponseBody
}

// summaryReader is the interface for computing the summary.
type summaryReader interface {
	Summary(ctx context.Context) analytics.SummaryResult
}

// SummaryHandler handles GET /summary.
type SummaryHandler struct {
	AnalyticsService summaryReader
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(svc summaryReader) *SummaryHandler {
	return &SummaryHandler{AnalyticsService: svc}
}

// Register registers the summary endpoint with the Huma API.
func (h *SummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-summary",
		Method:      http.MethodGet,
		Path:        "/summary",
		Summary:     "Spending summary",
		Description: "Returns totals, counts, averages, shares and extremes per category.",
		Tags:        []string{"Analytics"},
	}, h.handle)
}

func (h *SummaryHandler) handle(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("summaryMs")
	}
	result := h.AnalyticsService.Summary(ctx)
	if stopTimer != nil {
		stopTimer()
	}

	if logData != nil {
		logData.AddData("categoriesCount", result.CategoriesCount)
	}

	body := SummaryResponseBody{SummaryResult: result}
	if result.TotalTransactions == 0 {
		body.Message = noDataMessage
	}
	return &SummaryOutput{Body: body}, nil
}
