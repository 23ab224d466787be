package adminsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrConnection wraps transport-level failures (connection refused, DNS,
// timeouts). Callers should surface a generic connectivity message rather
// than the underlying transport error.
var ErrConnection = errors.New("network error: please check your connection and try again")

// ErrNoEffectiveChange reports an update the server rejected because nothing
// actually changed. It is a benign no-op: callers should exit the edit
// quietly rather than alarm the operator.
var ErrNoEffectiveChange = errors.New("no effective change")

// APIError is a non-2xx response from the backend. Message carries the
// server's own wording when the body contained one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, http.StatusText(e.Status))
}

// IsConflict reports a duplicate/conflict rejection (409), e.g. an already
// registered email or phone, or a duplicate role name.
func (e *APIError) IsConflict() bool { return e.Status == http.StatusConflict }

// IsBenignNoOp reports whether err is the "nothing to change" rejection that
// should be treated as success.
func IsBenignNoOp(err error) bool {
	return errors.Is(err, ErrNoEffectiveChange)
}

// parseErrorResponse turns a non-2xx response body into an *APIError.
// The backend is inconsistent about error shapes: some endpoints return
// plain text, others {"message": ...}, login returns {"success": false,
// "message": ...}. All of them reduce to the message text.
func parseErrorResponse(status int, body []byte) error {
	text := strings.TrimSpace(string(body))

	var withMessage struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &withMessage); err == nil && withMessage.Message != "" {
		text = withMessage.Message
	}

	return &APIError{Status: status, Message: text}
}

// noEffectiveChange recognises the benign no-op rejection by its body text.
func noEffectiveChange(body []byte) bool {
	lower := strings.ToLower(string(body))
	return strings.Contains(lower, "no changes") || strings.Contains(lower, "not modified")
}
