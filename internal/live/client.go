// Package live is the client side of the AbletonOSC bridge. Every call is a
// single OSC message over UDP; queries wait for the reply the remote script
// echoes back on the same address. There is no retry or caching here, the
// package forwards arguments verbatim and hands results straight back.
package live

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/chabad360/go-osc/osc"
	"go.uber.org/zap"

	"github.com/ldraney/ableton-mcp-server/internal/config"
)

// errorAddress is where AbletonOSC reports failures. The bridge does not say
// which request failed, so an error fails every in-flight query.
const errorAddress = "/live/error"

type queryResult struct {
	args []interface{}
	err  error
}

// Client talks to the AbletonOSC remote script over two UDP sockets: one
// dialed to the script's listen port, one bound to the reply port.
type Client struct {
	log     *zap.Logger
	timeout time.Duration

	send *net.UDPConn
	recv *net.UDPConn

	mu      sync.Mutex
	pending map[string][]chan queryResult
	closed  bool

	done chan struct{}
	wg   sync.WaitGroup
}

// Dial connects to AbletonOSC and starts the reply reader.
func Dial(cfg config.OSCConfig, log *zap.Logger) (*Client, error) {
	sendAddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", cfg.Host, cfg.SendPort))
	if err != nil {
		return nil, fmt.Errorf("live: resolve %s:%d: %w", cfg.Host, cfg.SendPort, err)
	}

	send, err := net.DialUDP("udp", nil, sendAddr)
	if err != nil {
		return nil, fmt.Errorf("live: dial: %w", err)
	}

	recv, err := net.ListenUDP("udp", &net.UDPAddr{Port: cfg.ReceivePort})
	if err != nil {
		_ = send.Close()
		return nil, fmt.Errorf("live: listen on reply port %d: %w", cfg.ReceivePort, err)
	}

	c := &Client{
		log:     log,
		timeout: cfg.Timeout,
		send:    send,
		recv:    recv,
		pending: make(map[string][]chan queryResult),
		done:    make(chan struct{}),
	}

	c.wg.Add(1)
	go c.readLoop()

	log.Info("connected to AbletonOSC",
		zap.String("host", cfg.Host),
		zap.Int("send_port", cfg.SendPort),
		zap.Int("receive_port", cfg.ReceivePort))
	return c, nil
}

// Close shuts both sockets down and fails any in-flight queries.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	for addr, waiters := range c.pending {
		for _, ch := range waiters {
			ch <- queryResult{err: ErrClosed}
		}
		delete(c.pending, addr)
	}
	c.mu.Unlock()

	err := c.recv.Close()
	if serr := c.send.Close(); err == nil {
		err = serr
	}
	c.wg.Wait()
	return err
}

// Send fires a message without waiting for a reply. Used for setters and
// commands, which the bridge does not acknowledge.
func (c *Client) Send(address string, args ...interface{}) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}

	msg := osc.NewMessage(address, normalizeArgs(args)...)
	data, err := msg.MarshalBinary()
	if err != nil {
		return fmt.Errorf("live: marshal %s: %w", address, err)
	}
	if _, err := c.send.Write(data); err != nil {
		return fmt.Errorf("live: send %s: %w", address, err)
	}
	c.log.Debug("osc send", zap.String("address", address), zap.Int("args", len(args)))
	return nil
}

// Query sends a message and waits for the reply on the same address, up to
// the client's configured timeout.
func (c *Client) Query(ctx context.Context, address string, args ...interface{}) ([]interface{}, error) {
	return c.QueryTimeout(ctx, c.timeout, address, args...)
}

// QueryTimeout is Query with an explicit deadline. Browser scans take far
// longer than ordinary getters.
func (c *Client) QueryTimeout(ctx context.Context, timeout time.Duration, address string, args ...interface{}) ([]interface{}, error) {
	ch := make(chan queryResult, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.pending[address] = append(c.pending[address], ch)
	c.mu.Unlock()

	if err := c.Send(address, args...); err != nil {
		c.unregister(address, ch)
		return nil, err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.err != nil {
			return nil, res.err
		}
		return res.args, nil
	case <-timer.C:
		c.unregister(address, ch)
		return nil, fmt.Errorf("%w: %s after %s", ErrTimeout, address, timeout)
	case <-ctx.Done():
		c.unregister(address, ch)
		return nil, ctx.Err()
	}
}

// unregister removes a waiter that gave up.
func (c *Client) unregister(address string, ch chan queryResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	waiters := c.pending[address]
	for i, w := range waiters {
		if w == ch {
			c.pending[address] = append(waiters[:i], waiters[i+1:]...)
			break
		}
	}
	if len(c.pending[address]) == 0 {
		delete(c.pending, address)
	}
}

// readLoop parses incoming packets and dispatches replies to waiters in
// FIFO order per address.
func (c *Client) readLoop() {
	defer c.wg.Done()

	buf := make([]byte, 65536)
	for {
		n, _, err := c.recv.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-c.done:
				return
			default:
			}
			c.log.Warn("osc read failed", zap.Error(err))
			return
		}

		data := make([]byte, n)
		copy(data, buf[:n])

		msg, err := osc.NewMessageFromData(data)
		if err != nil {
			c.log.Warn("dropping unparseable packet", zap.Error(err))
			continue
		}

		if msg.Address == errorAddress {
			c.failPending(msg)
			continue
		}
		c.dispatch(msg)
	}
}

func (c *Client) dispatch(msg *osc.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	waiters := c.pending[msg.Address]
	if len(waiters) == 0 {
		c.log.Debug("unsolicited message", zap.String("address", msg.Address))
		return
	}

	ch := waiters[0]
	if len(waiters) == 1 {
		delete(c.pending, msg.Address)
	} else {
		c.pending[msg.Address] = waiters[1:]
	}
	ch <- queryResult{args: msg.Arguments}
}

func (c *Client) failPending(msg *osc.Message) {
	reason := "unknown"
	if len(msg.Arguments) > 0 {
		if s, err := toString(msg.Arguments[0]); err == nil {
			reason = s
		}
	}
	c.log.Warn("live reported an error", zap.String("reason", reason))

	c.mu.Lock()
	defer c.mu.Unlock()
	for addr, waiters := range c.pending {
		for _, ch := range waiters {
			ch <- queryResult{err: fmt.Errorf("%w: %s", ErrLive, reason)}
		}
		delete(c.pending, addr)
	}
}
