package api

import (
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// ErrorBody is the JSON shape of every error response: {"error": "..."}.
type ErrorBody struct {
	status  int
	Message string `json:"error" doc:"Human readable reason"`
}

func (e *ErrorBody) Error() string {
	return e.Message
}

func (e *ErrorBody) GetStatus() int {
	return e.status
}

// newError replaces huma.NewError so that handler and framework errors share
// the ErrorBody format. Detail errors, such as schema violations, are
// appended to the message.
func newError(status int, message string, errs ...error) huma.StatusError {
	var details []string
	for _, err := range errs {
		if err == nil {
			continue
		}
		var detailer huma.ErrorDetailer
		if errors.As(err, &detailer) {
			details = append(details, detailer.ErrorDetail().Error())
			continue
		}
		details = append(details, err.Error())
	}
	if len(details) > 0 {
		message = message + ": " + strings.Join(details, "; ")
	}
	return &ErrorBody{status: status, Message: message}
}
