package live

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/chabad360/go-osc/osc"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/ldraney/ableton-mcp-server/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeBridge is an in-process stand-in for the AbletonOSC remote script:
// it listens on a UDP port and answers queries via canned handlers keyed by
// OSC address.
type fakeBridge struct {
	t        *testing.T
	conn     *net.UDPConn
	handlers map[string]func(args []interface{}) *osc.Message
	done     chan struct{}
	replyTo  *net.UDPAddr
}

func newFakeBridge(t *testing.T, replyPort int, handlers map[string]func(args []interface{}) *osc.Message) *fakeBridge {
	t.Helper()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("fake bridge listen: %v", err)
	}

	b := &fakeBridge{
		t:        t,
		conn:     conn,
		handlers: handlers,
		done:     make(chan struct{}),
		replyTo:  &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: replyPort},
	}
	go b.loop()
	t.Cleanup(b.close)
	return b
}

func (b *fakeBridge) port() int {
	return b.conn.LocalAddr().(*net.UDPAddr).Port
}

func (b *fakeBridge) close() {
	select {
	case <-b.done:
	default:
		close(b.done)
		_ = b.conn.Close()
	}
}

func (b *fakeBridge) loop() {
	buf := make([]byte, 65536)
	for {
		n, _, err := b.conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		msg, err := osc.NewMessageFromData(append([]byte(nil), buf[:n]...))
		if err != nil {
			continue
		}
		handler, ok := b.handlers[msg.Address]
		if !ok {
			continue
		}
		reply := handler(msg.Arguments)
		if reply == nil {
			continue
		}
		data, err := reply.MarshalBinary()
		if err != nil {
			b.t.Errorf("fake bridge marshal: %v", err)
			continue
		}
		if _, err := b.conn.WriteToUDP(data, b.replyTo); err != nil {
			return
		}
	}
}

// freeUDPPort grabs a port the kernel considers free. Small race against
// the client binding it, acceptable in tests.
func freeUDPPort(t *testing.T) int {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("free port: %v", err)
	}
	port := conn.LocalAddr().(*net.UDPAddr).Port
	_ = conn.Close()
	return port
}

func newTestClient(t *testing.T, handlers map[string]func(args []interface{}) *osc.Message) *Client {
	t.Helper()

	replyPort := freeUDPPort(t)
	bridge := newFakeBridge(t, replyPort, handlers)

	cfg := config.OSCConfig{
		Host:        "127.0.0.1",
		SendPort:    bridge.port(),
		ReceivePort: replyPort,
		Timeout:     2 * time.Second,
	}
	client, err := Dial(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestQueryRoundTrip(t *testing.T) {
	client := newTestClient(t, map[string]func(args []interface{}) *osc.Message{
		"/live/song/get/tempo": func(args []interface{}) *osc.Message {
			return osc.NewMessage("/live/song/get/tempo", float32(121.5))
		},
	})

	tempo, err := NewSong(client).GetTempo(context.Background())
	if err != nil {
		t.Fatalf("GetTempo: %v", err)
	}
	if tempo != 121.5 {
		t.Errorf("got tempo %v, want 121.5", tempo)
	}
}

func TestQueryEchoedIndexes(t *testing.T) {
	client := newTestClient(t, map[string]func(args []interface{}) *osc.Message{
		"/live/track/get/name": func(args []interface{}) *osc.Message {
			return osc.NewMessage("/live/track/get/name", args[0], "Bass")
		},
	})

	name, err := NewTrack(client).GetName(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetName: %v", err)
	}
	if name != "Bass" {
		t.Errorf("got name %q, want %q", name, "Bass")
	}
}

func TestQueryTimeout(t *testing.T) {
	client := newTestClient(t, nil)

	_, err := client.QueryTimeout(context.Background(), 50*time.Millisecond, "/live/song/get/tempo")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v, want ErrTimeout", err)
	}

	// The waiter must be gone after the timeout.
	client.mu.Lock()
	pending := len(client.pending)
	client.mu.Unlock()
	if pending != 0 {
		t.Errorf("expected no pending queries, got %d", pending)
	}
}

func TestQueryContextCancel(t *testing.T) {
	client := newTestClient(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Query(ctx, "/live/song/get/tempo")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestLiveErrorFailsPending(t *testing.T) {
	client := newTestClient(t, map[string]func(args []interface{}) *osc.Message{
		"/live/clip_slot/get/has_clip": func(args []interface{}) *osc.Message {
			return osc.NewMessage("/live/error", "clip slot index out of range")
		},
	})

	_, err := NewClipSlot(client).HasClip(context.Background(), 99, 99)
	if !errors.Is(err, ErrLive) {
		t.Fatalf("got %v, want ErrLive", err)
	}
}

func TestSendFireAndForget(t *testing.T) {
	received := make(chan []interface{}, 1)
	client := newTestClient(t, map[string]func(args []interface{}) *osc.Message{
		"/live/song/set/tempo": func(args []interface{}) *osc.Message {
			received <- args
			return nil
		},
	})

	if err := NewSong(client).SetTempo(context.Background(), 95); err != nil {
		t.Fatalf("SetTempo: %v", err)
	}

	select {
	case args := <-received:
		if len(args) != 1 {
			t.Fatalf("expected 1 arg, got %d", len(args))
		}
		if f, _ := toFloat64(args[0]); f != 95 {
			t.Errorf("got tempo arg %v, want 95", args[0])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("bridge never received the set message")
	}
}

func TestBooleanSentAsInt(t *testing.T) {
	received := make(chan []interface{}, 1)
	client := newTestClient(t, map[string]func(args []interface{}) *osc.Message{
		"/live/track/set/mute": func(args []interface{}) *osc.Message {
			received <- args
			return nil
		},
	})

	if err := NewTrack(client).SetMute(context.Background(), 2, true); err != nil {
		t.Fatalf("SetMute: %v", err)
	}

	select {
	case args := <-received:
		if len(args) != 2 {
			t.Fatalf("expected 2 args, got %d", len(args))
		}
		if v, ok := args[1].(int32); !ok || v != 1 {
			t.Errorf("mute flag should arrive as int32(1), got %T %v", args[1], args[1])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("bridge never received the mute message")
	}
}

func TestClosedClient(t *testing.T) {
	client := newTestClient(t, nil)
	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Close twice is fine.
	if err := client.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if err := client.Send("/live/song/start_playing"); !errors.Is(err, ErrClosed) {
		t.Errorf("Send after close: got %v, want ErrClosed", err)
	}
	if _, err := client.Query(context.Background(), "/live/song/get/tempo"); !errors.Is(err, ErrClosed) {
		t.Errorf("Query after close: got %v, want ErrClosed", err)
	}
}

func TestGetNotesRoundTrip(t *testing.T) {
	client := newTestClient(t, map[string]func(args []interface{}) *osc.Message{
		"/live/clip/get/notes": func(args []interface{}) *osc.Message {
			return osc.NewMessage("/live/clip/get/notes",
				args[0], args[1],
				int32(60), float32(0), float32(0.5), int32(100), int32(0),
				int32(64), float32(0.5), float32(0.5), int32(90), int32(1),
			)
		},
	})

	notes, err := NewClip(client).GetNotes(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("GetNotes: %v", err)
	}
	want := []Note{
		{Pitch: 60, StartTime: 0, Duration: 0.5, Velocity: 100, Mute: false},
		{Pitch: 64, StartTime: 0.5, Duration: 0.5, Velocity: 90, Mute: true},
	}
	if len(notes) != len(want) {
		t.Fatalf("got %d notes, want %d", len(notes), len(want))
	}
	for i := range want {
		if notes[i] != want[i] {
			t.Errorf("note %d: got %+v, want %+v", i, notes[i], want[i])
		}
	}
}
