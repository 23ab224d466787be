package adminsdk

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Client is a client for the user registration REST API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Limiter throttles outgoing requests so scripted console use cannot
	// hammer the backend. Nil disables throttling.
	Limiter *rate.Limiter
}

// DefaultTimeout bounds every request; the backend is a local CRUD service
// and anything slower than this is effectively down.
const DefaultTimeout = 10 * time.Second

// NewClient creates a client with the default timeout and a generous
// request limiter.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		Limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}
