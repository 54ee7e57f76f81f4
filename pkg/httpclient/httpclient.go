// Package httpclient is a small JSON-over-HTTP client on fasthttp.
package httpclient

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"net/url"
	"path"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/pkg/logger"
	"github.com/valyala/fasthttp"
)

const DefaultTimeout = 30 * time.Second

type Config struct {
	// Debug logs every request.
	Debug bool

	// Headers are sent with every request.
	Headers map[string]string

	// Timeout bounds each request when the context has no earlier deadline. Default: [DefaultTimeout].
	Timeout time.Duration
}

type Client struct {
	baseURL url.URL
	config  Config
	client  *fasthttp.Client
}

func New(baseURL string, config ...Config) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't parse base url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Newf("base url %q must be absolute", baseURL)
	}
	var conf Config
	if len(config) > 0 {
		conf = config[0]
	}
	if conf.Timeout <= 0 {
		conf.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL: *u,
		config:  conf,
		client:  &fasthttp.Client{Name: "mint-authority"},
	}, nil
}

type RequestOptions struct {
	// Body is sent as application/json when non-nil.
	Body   []byte
	Query  url.Values
	Header map[string]string
}

type Response struct {
	URL         string
	status      int
	contentType string
	body        []byte
}

func (r *Response) StatusCode() int { return r.status }

func (r *Response) Body() []byte { return r.body }

// UnmarshalBody decodes a JSON response body into out.
func (r *Response) UnmarshalBody(out any) error {
	mediaType, _, _ := mime.ParseMediaType(r.contentType)
	if mediaType != "application/json" {
		return errors.Errorf("unsupported content type %q from %s: %q", r.contentType, r.URL, string(r.body))
	}
	if err := json.Unmarshal(r.body, out); err != nil {
		return errors.Wrapf(err, "can't unmarshal json body from %s", r.URL)
	}
	return nil
}

// URL resolves p against the base url. The base path is kept as a prefix.
func (c *Client) URL(p string, query url.Values) string {
	u := c.baseURL
	u.Path = path.Join("/", u.Path, p)
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *Client) Do(ctx context.Context, method, p string, opts RequestOptions) (*Response, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	target := c.URL(p, opts.Query)
	req.SetRequestURI(target)
	req.Header.SetMethod(method)
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}
	for k, v := range opts.Header {
		req.Header.Set(k, v)
	}
	if opts.Body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(opts.Body)
	}

	deadline := time.Now().Add(c.config.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	start := time.Now()
	err := c.client.DoDeadline(req, resp, deadline)
	if c.config.Debug {
		logger.DebugContext(ctx, "Finished http request",
			slog.String("package", "httpclient"),
			slog.String("method", method),
			slog.String("url", target),
			slog.Int("status_code", resp.StatusCode()),
			slog.Duration("latency", time.Since(start)),
			slog.Any("error", err),
		)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, target)
	}

	body, err := resp.BodyUncompressed()
	if err != nil {
		return nil, errors.Wrapf(err, "can't read response body from %s", target)
	}
	return &Response{
		URL:         target,
		status:      resp.StatusCode(),
		contentType: string(resp.Header.ContentType()),
		body:        append([]byte(nil), body...),
	}, nil
}

func (c *Client) Get(ctx context.Context, p string, opts RequestOptions) (*Response, error) {
	return c.Do(ctx, fasthttp.MethodGet, p, opts)
}

func (c *Client) Post(ctx context.Context, p string, opts RequestOptions) (*Response, error) {
	return c.Do(ctx, fasthttp.MethodPost, p, opts)
}
