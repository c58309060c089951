package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingOutput struct {
	Body struct {
		HasLogData bool `json:"hasLogData"`
	}
}

func newTestLogger() (*bytes.Buffer, *LogData) {
	buf := &bytes.Buffer{}
	logger := SetupLogging()
	logger.Out = buf
	return buf, NewLogData(logger)
}

func newMiddlewareTestAPI(t *testing.T, buf *bytes.Buffer, status int) humatest.TestAPI {
	t.Helper()
	logger := SetupLogging()
	logger.Out = buf

	_, api := humatest.New(t)
	api.UseMiddleware(LoggingMiddleware(logger))
	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
	}, func(ctx context.Context, _ *struct{}) (*pingOutput, error) {
		logData := GetLogData(ctx)
		if logData != nil {
			logData.AddData("pinged", true)
		}
		if status != http.StatusOK {
			return nil, huma.NewError(status, "ping failed")
		}
		out := &pingOutput{}
		out.Body.HasLogData = logData != nil
		return out, nil
	})
	return api
}

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	return line
}

// -- LogData tests --

func TestLogData_FieldsAndTimings(t *testing.T) {
	buf, logData := newTestLogger()

	logData.AddData("transactionCount", 3)
	stop := logData.AddTiming("summaryMs")
	stop()
	logData.Log().Info("done")

	line := decodeLogLine(t, buf)
	assert.Equal(t, "info", line["loglevel"])
	assert.Equal(t, float64(3), line["transactionCount"])
	assert.Contains(t, line, "summaryMs")
}

func TestGetLogData_MissingFromContext(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))
}

func TestGetLogData_RoundTrip(t *testing.T) {
	_, logData := newTestLogger()
	ctx := WithLogData(context.Background(), logData)

	assert.Same(t, logData, GetLogData(ctx))
}

// -- LoggingMiddleware tests --

func TestLoggingMiddleware_Complete(t *testing.T) {
	buf := &bytes.Buffer{}
	resp := newMiddlewareTestAPI(t, buf, http.StatusOK).Get("/ping")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, resp.Header().Get(RequestIDHeader))
	assert.Contains(t, resp.Body.String(), `"hasLogData":true`)

	line := decodeLogLine(t, buf)
	assert.Equal(t, "Handler.ping.Complete", line["msg"])
	assert.Equal(t, true, line["pinged"])
	assert.Equal(t, resp.Header().Get(RequestIDHeader), line["requestID"])
}

func TestLoggingMiddleware_KeepsIncomingRequestID(t *testing.T) {
	buf := &bytes.Buffer{}
	resp := newMiddlewareTestAPI(t, buf, http.StatusOK).Get("/ping", RequestIDHeader+": abc-123")

	assert.Equal(t, "abc-123", resp.Header().Get(RequestIDHeader))
}

func TestLoggingMiddleware_ServerError(t *testing.T) {
	buf := &bytes.Buffer{}
	resp := newMiddlewareTestAPI(t, buf, http.StatusInternalServerError).Get("/ping")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	line := decodeLogLine(t, buf)
	assert.Equal(t, "Handler.ping.Error", line["msg"])
	assert.Equal(t, "error", line["loglevel"])
}
