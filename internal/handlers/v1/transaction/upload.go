package transaction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spend-analytics/internal/logging"
	"github.com/carson-networks/spend-analytics/internal/service"
	stored "github.com/carson-networks/spend-analytics/internal/storage/transaction"
)

const uploadSuccessMessage = "Transactions uploaded successfully"

// UploadInput is the Huma input for uploading a batch. The body is read raw so
// the validator can report shape errors itself.
type UploadInput struct {
	RawBody []byte `contentType:"application/json"`
}

// UploadResponseBody is the response body for a successful upload.
type UploadResponseBody struct {
	Message    string   `json:"message" doc:"Human readable result"`
	Count      int      `json:"count" doc:"Number of stored transactions"`
	Categories []string `json:"categories" doc:"Distinct categories in the batch"`
	BatchID    string   `json:"batch_id" doc:"UUID of the stored batch"`
}

// UploadOutput is the Huma output for uploading a batch.
type UploadOutput struct {
	Body UploadResponseBody
}

// transactionUploader is the interface for replacing the stored batch.
type transactionUploader interface {
	Upload(ctx context.Context, raw []byte) (*service.UploadResult, error)
}

// UploadHandler handles POST /upload.
type UploadHandler struct {
	TransactionService transactionUploader
	MaxBodyBytes       int64
}

// NewUploadHandler creates a new UploadHandler. A maxBodyBytes of zero keeps
// Huma's default limit.
func NewUploadHandler(svc transactionUploader, maxBodyBytes int64) *UploadHandler {
	return &UploadHandler{TransactionService: svc, MaxBodyBytes: maxBodyBytes}
}

// Register registers the upload endpoint with the Huma API.
func (h *UploadHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:  "upload-transactions",
		Method:       http.MethodPost,
		Path:         "/upload",
		Summary:      "Upload transactions",
		Description:  "Replaces the stored transactions with a JSON array of {id, amount, category, date} records. The whole batch is rejected if any record is invalid.",
		Tags:         []string{"Transactions"},
		MaxBodyBytes: h.MaxBodyBytes,
	}, h.handle)
}

func (h *UploadHandler) handle(ctx context.Context, input *UploadInput) (*UploadOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("uploadMs")
	}
	result, err := h.TransactionService.Upload(ctx, input.RawBody)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		var validationErr *stored.ValidationError
		if errors.As(err, &validationErr) {
			if logData != nil {
				logData.AddData("validationReason", string(validationErr.Reason))
				logData.AddData("validationIndex", validationErr.Index)
			}
			return nil, huma.Error400BadRequest(validationErr.Error())
		}
		if logData != nil {
			logData.AddData("error", err.Error())
		}
		return nil, huma.Error500InternalServerError("Server error: " + err.Error())
	}

	if logData != nil {
		logData.AddData("transactionCount", result.Count)
		logData.AddData("batchID", result.BatchID.String())
	}

	categories := result.Categories
	if categories == nil {
		categories = []string{}
	}

	return &UploadOutput{Body: UploadResponseBody{
		Message:    uploadSuccessMessage,
		Count:      result.Count,
		Categories: categories,
		BatchID:    result.BatchID.String(),
	}}, nil
}
