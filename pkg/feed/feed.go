// Package feed bridges external WebSocket streams into reactive containers.
//
// A feed is a producer-side adapter: it connects to a message stream, decodes
// each message, and writes the result into a container, cascading through
// whatever operators and observers are attached downstream.
//
//	f, err := feed.Dial(ctx, "wss://quotes.example.com/btc", feed.JSON[Quote]())
//	if err != nil { ... }
//	defer f.Close()
//	latest := f.Container()
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/reval-dev/reval/pkg/reval"
)

// ErrClosed is returned when an operation is attempted on a closed feed.
var ErrClosed = errors.New("feed: closed")

// Decoder turns one wire message into a value.
type Decoder[T any] func([]byte) (T, error)

// JSON returns a Decoder that unmarshals each message as JSON.
func JSON[T any]() Decoder[T] {
	return func(msg []byte) (T, error) {
		var v T
		err := json.Unmarshal(msg, &v)
		return v, err
	}
}

// Config holds feed connection settings.
type Config struct {
	// Logger receives read and decode errors. Default: slog.Default().
	Logger *slog.Logger

	// ReadTimeout is the maximum time to wait for a message.
	ReadTimeout time.Duration

	// PingInterval is how often a heartbeat ping is sent.
	PingInterval time.Duration
}

// Option configures a feed connection.
type Option func(*Config)

// WithLogger sets the logger for connection errors.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithReadTimeout sets the read deadline per message.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.ReadTimeout = d
	}
}

// WithPingInterval sets the heartbeat interval.
func WithPingInterval(d time.Duration) Option {
	return func(c *Config) {
		c.PingInterval = d
	}
}

// defaultConfig returns the default feed configuration.
func defaultConfig() Config {
	return Config{
		Logger:       slog.Default(),
		ReadTimeout:  60 * time.Second,
		PingInterval: 30 * time.Second,
	}
}

// Feed owns one WebSocket connection and the container it writes into.
type Feed[T any] struct {
	container *reval.Container[T]
	conn      *websocket.Conn
	config    Config
	closed    atomic.Bool
	done      chan struct{}
}

// Dial connects to url and starts a read loop that decodes every message
// with decode and writes the result into the feed's container. The container
// starts absent and receives its first value with the first decodable
// message.
func Dial[T any](ctx context.Context, url string, decode Decoder[T], opts ...Option) (*Feed[T], error) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	f := &Feed[T]{
		container: reval.New[T](),
		conn:      conn,
		config:    config,
		done:      make(chan struct{}),
	}

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(config.ReadTimeout))
	})

	go f.readLoop(decode)
	go f.pingLoop()

	return f, nil
}

// Container returns the container the feed writes into. Observing and
// deriving from it works like any other container.
func (f *Feed[T]) Container() *reval.Container[T] {
	return f.container
}

// Close stops the read loop and closes the connection. The container keeps
// its last value and remains usable.
func (f *Feed[T]) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	close(f.done)
	return f.conn.Close()
}

// readLoop continuously reads messages from the WebSocket connection,
// decodes them, and writes the values into the container.
// Blocks until the connection is closed or a read error occurs.
func (f *Feed[T]) readLoop(decode Decoder[T]) {
	defer f.Close()

	for {
		f.conn.SetReadDeadline(time.Now().Add(f.config.ReadTimeout))

		_, msg, err := f.conn.ReadMessage()
		if err != nil {
			if !f.closed.Load() && websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				f.config.Logger.Error("feed read error", "error", err)
			}
			return
		}

		v, err := decode(msg)
		if err != nil {
			f.config.Logger.Error("feed decode error", "error", err)
			continue
		}

		f.container.Set(v)
	}
}

// pingLoop sends heartbeat pings until the feed is closed.
func (f *Feed[T]) pingLoop() {
	ticker := time.NewTicker(f.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := f.conn.WriteControl(websocket.PingMessage, nil,
				time.Now().Add(f.config.PingInterval))
			if err != nil && !f.closed.Load() {
				f.config.Logger.Warn("feed ping error", "error", err)
			}
		case <-f.done:
			return
		}
	}
}
