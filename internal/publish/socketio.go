package publish

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync/atomic"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/specialistvlad/beamgrid/internal/config"
	"github.com/specialistvlad/beamgrid/internal/ctxlog"
)

// Publisher delivers a run's payload somewhere.
type Publisher interface {
	Publish(ctx context.Context, payload *Payload) error
}

// SocketIO publishes payloads over a socket.io WebSocket connection.
type SocketIO struct {
	cfg config.Publish
}

// NewSocketIO creates a publisher for cfg, filling in defaults for any
// optional field left empty.
func NewSocketIO(cfg config.Publish) *SocketIO {
	return &SocketIO{cfg: cfg.WithDefaults()}
}

// Config returns the effective configuration.
func (s *SocketIO) Config() config.Publish {
	return s.cfg
}

// Publish connects, emits payload on the configured event and, if an ack
// event is configured, waits for the server to send it. The whole exchange
// is bounded by the configured timeout.
func (s *SocketIO) Publish(ctx context.Context, payload *Payload) error {
	logger := ctxlog.FromContext(ctx).With("publisher", "socketio", "url", s.cfg.URL, "event", s.cfg.Event)
	logger.Debug("Publish started.")
	defer logger.Debug("Publish finished.")

	data, err := payload.Map()
	if err != nil {
		return err
	}

	parsedURL, err := url.Parse(s.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to parse publish URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return fmt.Errorf("publish URL %q must be absolute", s.cfg.URL)
	}

	opCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	if s.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification.")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(s.cfg.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client.")
		io.Disconnect()
	}()

	var connected atomic.Bool
	done := make(chan error, 1)
	finish := func(err error) {
		select {
		case done <- err:
		default:
		}
	}

	io.On(types.EventName("connect"), func(...any) {
		connected.Store(true)
		logger.Debug("Connected.", "namespace", s.cfg.Namespace, "sid", io.Id())
		io.Emit(s.cfg.Event, data)
		logger.Info("📡 Results published.", "run_id", payload.RunID)
		if s.cfg.AckEvent == "" {
			finish(nil)
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				finish(fmt.Errorf("failed to connect to %s: %w", s.cfg.URL, err))
				return
			}
		}
		finish(fmt.Errorf("failed to connect to %s", s.cfg.URL))
	})

	if s.cfg.AckEvent != "" {
		io.On(types.EventName(s.cfg.AckEvent), func(...any) {
			logger.Debug("Ack received.", "ack_event", s.cfg.AckEvent)
			finish(nil)
		})
	}

	io.Connect()

	select {
	case <-opCtx.Done():
		if connected.Load() {
			logger.Warn("Timed out waiting for ack.", "ack_event", s.cfg.AckEvent)
			return fmt.Errorf("timed out after publishing while waiting for event %q: %w", s.cfg.AckEvent, opCtx.Err())
		}
		return fmt.Errorf("timed out connecting to %s: %w", s.cfg.URL, opCtx.Err())
	case err := <-done:
		return err
	}
}
