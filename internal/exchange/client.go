// Package exchange looks up the USD/HNL rate and converts display amounts
// with it.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/davecgh/go-spew/spew"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const maxBody = 1 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: newHTTPClient(timeout),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			TLSHandshakeTimeout:   5 * time.Second,
			ResponseHeaderTimeout: timeout,
			IdleConnTimeout:       90 * time.Second,
			MaxIdleConns:          10,
		},
	}
}

// FetchRate returns how many target units one base unit buys. The second
// result is false when the service is unreachable, answers non-200, or the
// body has no numeric rate for target.
func (c *Client) FetchRate(ctx context.Context, base, target string) (decimal.Decimal, bool) {
	log := c.logger.WithFields(logrus.Fields{"base": base, "target": target})

	u, err := url.Parse(c.baseURL)
	if err != nil {
		log.WithError(err).Warn("Exchange.FetchRate.badURL")
		return decimal.Zero, false
	}
	q := u.Query()
	q.Set("base", base)
	q.Set("symbols", target)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		log.WithError(err).Warn("Exchange.FetchRate.request")
		return decimal.Zero, false
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("Exchange.FetchRate.unreachable")
		return decimal.Zero, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Warn("Exchange.FetchRate.status")
		return decimal.Zero, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		log.WithError(err).Warn("Exchange.FetchRate.read")
		return decimal.Zero, false
	}

	rate, err := extractRate(body, target)
	if err != nil {
		log.WithError(err).WithField("body", spew.Sdump(string(body))).Warn("Exchange.FetchRate.invalid")
		return decimal.Zero, false
	}
	return rate, true
}

func extractRate(body []byte, target string) (decimal.Decimal, error) {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return decimal.Zero, fmt.Errorf("response body is not valid JSON: %w", err)
	}

	v, err := jsonpath.Get(fmt.Sprintf("$.rates[%q]", target), doc)
	if err != nil {
		return decimal.Zero, err
	}
	f, ok := v.(float64)
	if !ok {
		return decimal.Zero, fmt.Errorf("rate for %s is %T, not a number", target, v)
	}
	return decimal.NewFromFloat(f), nil
}
