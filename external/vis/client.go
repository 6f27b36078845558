package vis

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/skykauf/fivb-leaderboard/internal/platform/logging"
)

const (
	defaultBaseURL = "https://www.fivb.org/Vis2009/XmlRequest.asmx"
	userAgent      = "Mozilla/5.0 (compatible; fivb-leaderboard-etl/1.0)"
	maxBodyBytes   = 64 << 20
)

// ErrNotApplicable marks a VIS error payload saying the request does not
// apply to the target entity (e.g. a round ranking for a round kind without
// standings). Callers treat it as "no data", unlike a transport failure.
var ErrNotApplicable = crerr.New("vis request not applicable")

var errUnknownOperation = crerr.New("unknown vis operation")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client talks to the single VIS endpoint. One Invoke is one POST; there is
// no caching and no retrying here — re-running the ingestion is the retry.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
	ops        map[string]operation
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 60 * time.Second
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
		ops:        operationTable(),
	}
}

// Invoke sends one request and returns the parsed records. req.Fields empty
// means the operation's default field set. A non-2xx response is an error;
// an empty or malformed body is a logged warning and an empty result.
func (c *Client) Invoke(ctx context.Context, req Request) ([]Record, error) {
	op, ok := c.ops[req.Type]
	if !ok {
		return nil, crerr.Wrapf(errUnknownOperation, "%s", req.Type)
	}
	if req.Fields == "" {
		req.Fields = op.fields
	}

	body, contentType, err := c.post(ctx, req.encode(op.wrapRequest), op.jsonAllowed)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		c.logger.WarnContext(ctx, "vis empty response", "request_type", req.Type)
		return []Record{}, nil
	}

	outcome, err := parseResponse(body, contentType, op.nodePath)
	if err != nil {
		c.logger.WarnContext(ctx, "vis response parse failed",
			"request_type", req.Type,
			"content_type", contentType,
			"error", err,
		)
		return []Record{}, nil
	}
	if outcome.errorText != "" {
		return nil, crerr.Wrapf(ErrNotApplicable, "%s: %s", req.Type, outcome.errorText)
	}
	return outcome.records, nil
}

func (c *Client) post(ctx context.Context, envelope string, acceptJSON bool) ([]byte, string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(envelope))
	if err != nil {
		return nil, "", crerr.Wrap(err, "build vis request")
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Content-Type", "application/xml; charset=utf-8")
	if acceptJSON {
		httpReq.Header.Set("Accept", "application/json")
	} else {
		httpReq.Header.Set("Accept", "application/xml")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", crerr.Wrap(err, "send vis request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "", crerr.Wrap(err, "read vis response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", crerr.Newf("vis status=%d body=%s", resp.StatusCode, abbreviateBody(body))
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func abbreviateBody(body []byte) string {
	const max = 256
	text := strings.TrimSpace(string(body))
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
