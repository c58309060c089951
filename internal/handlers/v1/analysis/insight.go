package analysis

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// InsightResponseBody is the response body for spending insights.
type InsightResponseBody struct {
	Insights []string `json:"insights" doc:"Human readable observations"`
}

// InsightOutput is the Huma output for spending insights.
type InsightOutput struct {
	Body InsightResponseBody
}

// insightReader is the interface for generating insights.
type insightReader interface {
	Insights(ctx context.Context) []string
}

// InsightHandler handles GET /insight.
type InsightHandler struct {
	AnalyticsService insightReader
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(svc insightReader) *InsightHandler {
	return &InsightHandler{AnalyticsService: svc}
}

// Register registers the insight endpoint with the Huma API.
func (h *InsightHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-insights",
		Method:      http.MethodGet,
		Path:        "/insight",
		Summary:     "Spending insights",
		Description: "Returns a short list of observations about the stored transactions.",
		Tags:        []string{"Analytics"},
	}, h.handle)
}

func (h *InsightHandler) handle(ctx context.Context, _ *struct{}) (*InsightOutput, error) {
	return &InsightOutput{Body: InsightResponseBody{Insights: h.AnalyticsService.Insights(ctx)}}, nil
}
