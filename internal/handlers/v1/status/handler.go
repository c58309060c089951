package status

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spend-analytics/internal/service"
)

// HealthResponseBody is the response body for the health check.
type HealthResponseBody struct {
	Status            string `json:"status" doc:"Always healthy while the process serves requests"`
	TransactionsCount int    `json:"transactions_count" doc:"Number of stored transactions"`
	BatchID           string `json:"batch_id,omitempty" doc:"UUID of the stored batch, absent before the first upload"`
	UploadedAt        string `json:"uploaded_at,omitempty" doc:"RFC3339 time of the last upload"`
	CachedResults     int    `json:"cached_results" doc:"Number of analytics results cached for the stored batch"`
}

// HealthOutput is the Huma output for the health check.
type HealthOutput struct {
	Body HealthResponseBody
}

// statusReader is the interface for reading store status.
type statusReader interface {
	Status(ctx context.Context) service.StoreStatus
}

type Handler struct {
	TransactionService statusReader
}

func NewHandler(svc statusReader) *Handler {
	return &Handler{TransactionService: svc}
}

// Register registers the health endpoint with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Status"},
	}, h.handle)
}

func (h *Handler) handle(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	status := h.TransactionService.Status(ctx)

	body := HealthResponseBody{
		Status:            "healthy",
		TransactionsCount: status.TransactionCount,
		CachedResults:     status.CachedResults,
	}
	if status.BatchID != uuid.Nil {
		body.BatchID = status.BatchID.String()
		body.UploadedAt = status.UploadedAt.Format(time.RFC3339)
	}

	return &HealthOutput{Body: body}, nil
}
