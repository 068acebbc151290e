// Package collyfetcher implements metadata.Fetcher using gocolly.
package collyfetcher

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/JakeFAU/share-preview/internal/metadata"
	"github.com/JakeFAU/share-preview/internal/metrics"
)

// Defaults applied when Config leaves a value empty.
const (
	DefaultUserAgent = "Mozilla/5.0 (compatible; FinterestMetadataBot/1.0)"
	DefaultAccept    = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	DefaultTimeout   = 10 * time.Second
)

// Config controls collector behavior.
type Config struct {
	UserAgent string
	Accept    string
	Timeout   time.Duration
}

// Fetcher implements metadata.Fetcher using the Colly collector.
type Fetcher struct {
	cfg           Config
	baseCollector *colly.Collector
	logger        *zap.Logger
}

var _ metadata.Fetcher = (*Fetcher)(nil)

type collectorHooks interface {
	OnRequest(colly.RequestCallback)
	OnResponse(colly.ResponseCallback)
	OnError(colly.ErrorCallback)
}

// fetchState collects what the collector callbacks observe during one visit.
type fetchState struct {
	doc        metadata.Document
	status     int
	statusLine string
	err        error
}

type fetchStateKey struct{}

// statusLineTransport records the upstream status line on the fetchState carried
// by the request context. Colly only exposes the numeric code.
type statusLineTransport struct {
	base http.RoundTripper
}

func (t *statusLineTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if resp != nil {
		if state, ok := req.Context().Value(fetchStateKey{}).(*fetchState); ok {
			state.statusLine = resp.Status
		}
	}
	return resp, err
}

// New builds a Fetcher. Every visit is a single GET: robots.txt is not consulted,
// the same URL may be fetched repeatedly and the body is buffered whole.
func New(cfg Config, logger *zap.Logger) *Fetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Accept == "" {
		cfg.Accept = DefaultAccept
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := colly.NewCollector(
		colly.Async(false),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
		colly.ParseHTTPErrorResponse(),
		colly.UserAgent(cfg.UserAgent),
	)
	c.MaxBodySize = 0
	c.WithTransport(&statusLineTransport{base: newHTTPTransport()})
	c.SetRequestTimeout(cfg.Timeout)

	return &Fetcher{
		cfg:           cfg,
		baseCollector: c,
		logger:        logger,
	}
}

// Fetch executes a single bounded HTTP GET using Colly.
func (f *Fetcher) Fetch(ctx context.Context, target *url.URL) (metadata.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	start := time.Now()
	state := &fetchState{}
	collector := f.buildCollector(ctx, state)
	runErr := f.runCollector(ctx, collector, target.String(), state)
	err := classify(ctx, runErr, state.status, state.statusLine)

	outcome := outcomeOf(err)
	metrics.ObserveFetch(target.String(), outcome, len(state.doc.Text), time.Since(start))
	if err != nil {
		f.logger.Debug("fetch failed",
			zap.String("url", target.String()),
			zap.String("outcome", outcome),
			zap.Error(err),
		)
		return metadata.Document{}, err
	}
	f.logger.Debug("fetch succeeded",
		zap.String("url", target.String()),
		zap.String("final_url", state.doc.FinalURL),
		zap.Int("bytes", len(state.doc.Text)),
		zap.Duration("duration", time.Since(start)),
	)
	return state.doc, nil
}

func (f *Fetcher) buildCollector(ctx context.Context, state *fetchState) *colly.Collector {
	collector := f.baseCollector.Clone()
	collector.UserAgent = f.cfg.UserAgent
	collector.Context = context.WithValue(ctx, fetchStateKey{}, state)
	f.configureCollectorHooks(collector, state)
	return collector
}

func (f *Fetcher) configureCollectorHooks(hooks collectorHooks, state *fetchState) {
	hooks.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", f.cfg.Accept)
	})

	hooks.OnResponse(func(r *colly.Response) {
		state.status = r.StatusCode
		if r.StatusCode < http.StatusOK || r.StatusCode >= http.StatusMultipleChoices {
			return
		}
		state.doc = metadata.Document{
			Text:     string(r.Body),
			FinalURL: r.Request.URL.String(),
		}
	})

	hooks.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			state.status = r.StatusCode
		}
		state.err = err
	})
}

func (f *Fetcher) runCollector(ctx context.Context, collector *colly.Collector, rawURL string, state *fetchState) error {
	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(rawURL)
	}()

	select {
	case <-ctx.Done():
		// The request shares ctx, so Visit unwinds promptly; wait for it so the
		// callbacks are done touching state.
		<-done
		return fmt.Errorf("colly fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("colly visit failed: %w", err)
		}
		if state.err != nil {
			return fmt.Errorf("colly response failed: %w", state.err)
		}
		return nil
	}
}

// classify maps a visit result onto the metadata fetch error classes. Non-2xx
// responses keep the upstream reason phrase from statusLine.
func classify(ctx context.Context, err error, status int, statusLine string) error {
	if status != 0 && (status < http.StatusOK || status >= http.StatusMultipleChoices) {
		return metadata.NewHTTPStatusError(status, reasonPhrase(status, statusLine))
	}
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return fmt.Errorf("%w: %w", metadata.ErrFetchTimeout, err)
	case ctx.Err() != nil:
		return err
	case isConnectionFailure(err):
		return fmt.Errorf("%w: %w", metadata.ErrConnectionFailed, err)
	default:
		return err
	}
}

// reasonPhrase strips the leading code from a status line such as "403 Blocked By WAF".
// An empty result lets NewHTTPStatusError fall back to the standard text.
func reasonPhrase(status int, statusLine string) string {
	code := strconv.Itoa(status)
	if !strings.HasPrefix(statusLine, code) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(statusLine, code))
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isConnectionFailure reports refused, reset, DNS and TLS failures.
func isConnectionFailure(err error) bool {
	var (
		opErr        *net.OpError
		dnsErr       *net.DNSError
		verifyErr    *tls.CertificateVerificationError
		recordErr    tls.RecordHeaderError
		alertErr     tls.AlertError
		authorityErr x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		invalidErr   x509.CertificateInvalidError
	)
	switch {
	case errors.As(err, &opErr), errors.As(err, &dnsErr):
		return true
	case errors.As(err, &verifyErr), errors.As(err, &recordErr), errors.As(err, &alertErr):
		return true
	case errors.As(err, &authorityErr), errors.As(err, &hostnameErr), errors.As(err, &invalidErr):
		return true
	default:
		return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
	}
}

func outcomeOf(err error) string {
	var statusErr *metadata.HTTPStatusError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &statusErr):
		return metrics.OutcomeHTTPError
	case errors.Is(err, metadata.ErrFetchTimeout):
		return metrics.OutcomeTimeout
	case errors.Is(err, metadata.ErrConnectionFailed):
		return metrics.OutcomeConnectionFailed
	default:
		return metrics.OutcomeError
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
