package analysis

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spend-analytics/internal/analytics"
	"github.com/carson-networks/spend-analytics/internal/handlers/v1/transaction"
	"github.com/carson-networks/spend-analytics/internal/logging"
)

// CategoryDetailsInput is the Huma input for a category drill-down.
type CategoryDetailsInput struct {
	Category string `path:"category" doc:"Exact, case-sensitive category label"`
}

// CategoryDetailsResponseBody is the response body for a category drill-down.
type CategoryDetailsResponseBody struct {
	Category     string                    `json:"category" doc:"Category label"`
	Total        float64                   `json:"total" doc:"Sum of amounts"`
	Count        int                       `json:"count" doc:"Number of transactions"`
	Average      float64                   `json:"average" doc:"Mean amount"`
	Highest      float64                   `json:"highest" doc:"Largest amount, unrounded"`
	Lowest       float64                   `json:"lowest" doc:"Smallest amount, unrounded"`
	Transactions []transaction.Transaction `json:"transactions" doc:"Transactions sorted by date"`
}

// CategoryDetailsOutput is the Huma output for a category drill-down.
type CategoryDetailsOutput struct {
	Body CategoryDetailsResponseBody
}

// categoryDetailsReader is the interface for the category drill-down.
type categoryDetailsReader interface {
	CategoryDetails(ctx context.Context, category string) (*analytics.DetailResult, error)
}

// CategoryDetailsHandler handles GET /category-details/{category}.
type CategoryDetailsHandler struct {
	AnalyticsService categoryDetailsReader
}

// NewCategoryDetailsHandler creates a new CategoryDetailsHandler.
func NewCategoryDetailsHandler(svc categoryDetailsReader) *CategoryDetailsHandler {
	return &CategoryDetailsHandler{AnalyticsService: svc}
}

// Register registers the category details endpoint with the Huma API.
func (h *CategoryDetailsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-category-details",
		Method:      http.MethodGet,
		Path:        "/category-details/{category}",
		Summary:     "Category details",
		Description: "Returns the statistics and transactions of a single category.",
		Tags:        []string{"Analytics"},
	}, h.handle)
}

func (h *CategoryDetailsHandler) handle(ctx context.Context, input *CategoryDetailsInput) (*CategoryDetailsOutput, error) {
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("category", input.Category)
	}

	result, err := h.AnalyticsService.CategoryDetails(ctx, input.Category)
	if err != nil {
		var notFound *analytics.CategoryNotFoundError
		switch {
		case errors.Is(err, analytics.ErrNoTransactions):
			return nil, huma.Error404NotFound("No transactions found")
		case errors.As(err, &notFound):
			return nil, huma.Error404NotFound("No transactions found for category: " + notFound.Category)
		}
		if logData != nil {
			logData.AddData("error", err.Error())
		}
		return nil, huma.Error500InternalServerError("Server error: " + err.Error())
	}

	if logData != nil {
		logData.AddData("transactionCount", result.Count)
	}

	return &CategoryDetailsOutput{Body: CategoryDetailsResponseBody{
		Category:     result.Category,
		Total:        result.Total,
		Count:        result.Count,
		Average:      result.Average,
		Highest:      result.Highest,
		Lowest:       result.Lowest,
		Transactions: transaction.NewTransactions(result.Transactions),
	}}, nil
}
