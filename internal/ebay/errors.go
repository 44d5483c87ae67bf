package ebay

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ebaymcp/ebaymcp/internal/shared/stringutils"
)

const errorBodyPreview = 300

// ErrorParameter is one entry of an eBay error's parameters list.
type ErrorParameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ErrorDetail is one element of the eBay REST error envelope.
type ErrorDetail struct {
	ErrorID     int              `json:"errorId"`
	Domain      string           `json:"domain"`
	Subdomain   string           `json:"subdomain,omitempty"`
	Category    string           `json:"category"`
	Message     string           `json:"message"`
	LongMessage string           `json:"longMessage,omitempty"`
	Parameters  []ErrorParameter `json:"parameters,omitempty"`
}

// APIError is returned for every non-2xx response from eBay.
type APIError struct {
	StatusCode int
	Errors     []ErrorDetail
	Body       string
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		d := e.Errors[0]
		msg := d.LongMessage
		if msg == "" {
			msg = d.Message
		}
		return fmt.Sprintf("ebay: HTTP %d: %s (errorId %d)", e.StatusCode, msg, d.ErrorID)
	}
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("ebay: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("ebay: HTTP %d: %s", e.StatusCode, stringutils.Truncate(body, errorBodyPreview))
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: string(body)}
	var envelope struct {
		Errors []ErrorDetail `json:"errors"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		apiErr.Errors = envelope.Errors
	}
	return apiErr
}

// ArgumentError reports a call whose arguments do not bind to the method's
// declared parameters.
type ArgumentError struct {
	Area   string
	Method string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("ebay: %s.%s: %s", e.Area, e.Method, e.Reason)
}
