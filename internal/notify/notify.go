// Package notify publishes resolution results to a socket.io server, so that
// editors or dashboards can react to a finished run without parsing output.
package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/aftersort/internal/ctxlog"
	"github.com/vk/aftersort/internal/report"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event is the socket.io event name used for every project.
const Event = "resolution"

// DefaultTimeout bounds how long Publish waits for the connection.
const DefaultTimeout = 10 * time.Second

// Config describes the server to publish to.
type Config struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	Timeout            time.Duration
}

// emitFunc sends one event to the connected server.
type emitFunc func(event string, args ...any) error

// Publisher sends one event per project report.
type Publisher struct {
	cfg  Config
	dial func(ctx context.Context, cfg Config) (emitFunc, func(), error)
}

// New creates a Publisher for cfg.
func New(cfg Config) *Publisher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Publisher{cfg: cfg, dial: dialSocketIO}
}

// Publish connects, emits every project of doc and disconnects.
func (p *Publisher) Publish(ctx context.Context, doc report.Document) error {
	logger := ctxlog.FromContext(ctx).With("notify_url", p.cfg.URL)

	emit, closeFn, err := p.dial(ctx, p.cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	for _, pr := range doc.Projects {
		payload := Payload(pr)
		logger.Debug("Emitting resolution event.", "project", pr.Name)
		if err := emit(Event, payload); err != nil {
			return fmt.Errorf("failed to emit %s for %s: %w", Event, pr.Name, err)
		}
	}
	logger.Info("Published resolution results.", "projects", len(doc.Projects))
	return nil
}

// Payload is the event body for one project.
func Payload(pr report.ProjectReport) map[string]any {
	errs := make([]map[string]any, 0, len(pr.Errors))
	for _, e := range pr.Errors {
		item := map[string]any{"kind": string(e.Kind), "message": e.Message}
		if e.File != "" {
			item["file"] = e.File
		}
		if e.Importer != "" {
			item["importer"] = e.Importer
		}
		if len(e.Path) > 0 {
			item["path"] = e.Path
		}
		errs = append(errs, item)
	}
	payload := map[string]any{
		"project":  pr.Name,
		"root":     pr.Root,
		"entry":    pr.Entry,
		"ok":       len(pr.Errors) == 0 && pr.ManifestError == "",
		"order":    pr.Order,
		"errors":   errs,
		"orphans":  pr.Orphans,
		"manifest": pr.Manifest,
	}
	if pr.ManifestError != "" {
		payload["manifest_error"] = pr.ManifestError
	}
	return payload
}

func dialSocketIO(ctx context.Context, cfg Config) (emitFunc, func(), error) {
	logger := ctxlog.FromContext(ctx).With("notify_url", cfg.URL)

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse notify URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected to notify server.", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connectChan <- err
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		emit := func(event string, args ...any) error {
			io.Emit(event, args...)
			return nil
		}
		return emit, func() { io.Disconnect() }, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(cfg.Timeout):
		io.Disconnect()
		return nil, nil, fmt.Errorf("timed out after %s waiting for socket.io connection", cfg.Timeout)
	}
}
