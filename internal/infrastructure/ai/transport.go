package ai

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/doeshing/askcmd/internal/ports"
)

// RestyTransport performs HTTPS POSTs. Requests are bounded by the caller's
// context and, when set, by a client timeout.
type RestyTransport struct {
	client *resty.Client
}

// NewRestyTransport builds a transport. A timeout <= 0 leaves the deadline to the context.
func NewRestyTransport(timeout time.Duration) *RestyTransport {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &RestyTransport{client: client}
}

// Post implements ports.Transport. Error statuses are returned, not treated as failures.
func (t *RestyTransport) Post(ctx context.Context, url string, headers map[string]string, body []byte) (int, []byte, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetBody(body).
		Post(url)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode(), resp.Body(), nil
}

var _ ports.Transport = (*RestyTransport)(nil)
