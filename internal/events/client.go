package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"sync"
	"syscall"
	"time"
)

// Client is a connection to the dealflow daemon. Outgoing change events are
// coalesced within a debounce window; incoming events are delivered through
// Listen, with automatic reconnection.
type Client struct {
	socketPath string
	conn       net.Conn
	encoder    *json.Encoder
	decoder    *json.Decoder
	mu         sync.Mutex

	eventQueue chan Event
	debounce   time.Duration
	closed     bool

	maxRetries int
	baseDelay  time.Duration

	lastSequence int64

	ctx    context.Context
	cancel context.CancelFunc

	batcherOnce    sync.Once
	batcherStarted bool
	batcherDone    chan struct{}
}

// NewClient creates a new event client but does not connect.
// The debounce window defaults to 100ms and can be set with DEALFLOW_EVENT_DEBOUNCE_MS.
func NewClient(socketPath string) *Client {
	debounceMs := 100
	if envVal := os.Getenv("DEALFLOW_EVENT_DEBOUNCE_MS"); envVal != "" {
		if parsed, err := strconv.Atoi(envVal); err == nil && parsed > 0 {
			debounceMs = parsed
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		socketPath:  socketPath,
		eventQueue:  make(chan Event, 100),
		debounce:    time.Duration(debounceMs) * time.Millisecond,
		maxRetries:  5,
		baseDelay:   1 * time.Second,
		ctx:         ctx,
		cancel:      cancel,
		batcherDone: make(chan struct{}),
	}
}

// Connect dials the daemon socket and starts the batching goroutine
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", err)
	}

	c.conn = conn
	c.encoder = json.NewEncoder(conn)
	c.decoder = json.NewDecoder(conn)

	c.batcherOnce.Do(func() {
		c.batcherStarted = true
		go c.startBatcher()
	})

	return nil
}

// SendEvent queues an event without blocking; it fails when the queue is full
func (c *Client) SendEvent(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}

	select {
	case c.eventQueue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// startBatcher coalesces queued events and flushes at most one per debounce tick.
// The flushed event carries the union of the batched stages.
func (c *Client) startBatcher() {
	defer close(c.batcherDone)

	ticker := time.NewTicker(c.debounce)
	defer ticker.Stop()

	var pending *Event

	add := func(evt Event) {
		if pending == nil {
			e := evt
			pending = &e
			return
		}
		pending.Stages = mergeStages(pending.Stages, evt.Stages)
		pending.DealID = 0
		pending.MoveID = ""
		pending.Timestamp = evt.Timestamp
	}

	flush := func() {
		if pending == nil {
			return
		}
		if err := c.sendToSocket(*pending); err != nil && !isConnectionError(err) {
			slog.Warn("failed to send batched event", "error", err)
		}
		pending = nil
	}

	for {
		select {
		case <-c.ctx.Done():
			// drain what was queued before Close
			for {
				select {
				case evt, ok := <-c.eventQueue:
					if !ok {
						flush()
						return
					}
					add(evt)
				default:
					flush()
					return
				}
			}

		case evt, ok := <-c.eventQueue:
			if !ok {
				flush()
				return
			}
			add(evt)

		case <-ticker.C:
			flush()
		}
	}
}

// sendToSocket writes an event message to the daemon
func (c *Client) sendToSocket(event Event) error {
	msgType := "event"
	if event.Type == EventPong {
		msgType = "pong"
	}
	return c.write(Message{Version: ProtocolVersion, Type: msgType, Event: &event})
}

func (c *Client) write(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	return c.encoder.Encode(msg)
}

// Listen returns a channel of events from the daemon. The channel is closed
// when ctx is done or reconnection gives up.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	eventChan := make(chan Event, 10)
	go c.listenLoop(ctx, eventChan)
	return eventChan, nil
}

func (c *Client) listenLoop(ctx context.Context, eventChan chan Event) {
	defer close(eventChan)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		err := c.readEvents(ctx, eventChan)
		if err == nil || errors.Is(err, context.Canceled) {
			return
		}

		slog.Info("daemon connection lost, reconnecting", "error", err)
		if !c.reconnect(ctx) {
			slog.Warn("giving up on daemon", "attempts", c.maxRetries)
			return
		}
	}
}

// readEvents forwards events until the connection fails
func (c *Client) readEvents(ctx context.Context, eventChan chan Event) error {
	for {
		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return ErrNotConnected
		}
		if err := c.conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
		decoder := c.decoder
		c.mu.Unlock()

		var msg Message
		if err := decoder.Decode(&msg); err != nil {
			return fmt.Errorf("failed to decode message: %w", err)
		}

		switch msg.Type {
		case "event":
			if msg.Event == nil || msg.Event.SequenceID <= c.lastSequence {
				continue
			}
			c.lastSequence = msg.Event.SequenceID
			select {
			case eventChan <- *msg.Event:
			case <-ctx.Done():
				return ctx.Err()
			}

		case "ping":
			if err := c.sendToSocket(Event{Type: EventPong}); err != nil && !isConnectionError(err) {
				slog.Warn("failed to send pong", "error", err)
			}
		}
	}
}

// isConnectionError reports errors that just mean the peer went away
func isConnectionError(err error) bool {
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, ErrNotConnected)
}

// reconnect retries Connect with exponential backoff (1s, 2s, 4s, ...)
func (c *Client) reconnect(ctx context.Context) bool {
	delay := c.baseDelay

	for i := 0; i < c.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
		}

		c.mu.Lock()
		if c.conn != nil {
			_ = c.conn.Close()
			c.conn = nil
		}
		c.mu.Unlock()

		if err := c.Connect(ctx); err == nil {
			slog.Info("reconnected to daemon", "attempt", i+1)
			return true
		}
		delay *= 2
	}

	return false
}

// Close flushes queued events and closes the connection
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.eventQueue)
	started := c.batcherStarted
	c.mu.Unlock()

	c.cancel()

	if started {
		<-c.batcherDone
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
