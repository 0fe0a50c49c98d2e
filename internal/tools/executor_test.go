package tools

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/chabad360/go-osc/osc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ldraney/ableton-mcp-server/internal/config"
	"github.com/ldraney/ableton-mcp-server/internal/live"
)

// oscRecorder is an in-process stand-in for the AbletonOSC remote script
// that only records what arrives. The executor never queries, so no replies
// are needed.
type oscRecorder struct {
	conn *net.UDPConn

	mu   sync.Mutex
	msgs []*osc.Message
}

func newOSCRecorder(t *testing.T) *oscRecorder {
	t.Helper()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)

	r := &oscRecorder{conn: conn}
	go r.loop()
	t.Cleanup(func() { _ = conn.Close() })
	return r
}

func (r *oscRecorder) loop() {
	buf := make([]byte, 65536)
	for {
		n, _, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		msg, err := osc.NewMessageFromData(append([]byte(nil), buf[:n]...))
		if err != nil {
			continue
		}
		r.mu.Lock()
		r.msgs = append(r.msgs, msg)
		r.mu.Unlock()
	}
}

func (r *oscRecorder) port() int {
	return r.conn.LocalAddr().(*net.UDPAddr).Port
}

func (r *oscRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

// waitForMessages polls until n messages arrived; UDP delivery is
// asynchronous even on loopback.
func (r *oscRecorder) waitForMessages(t *testing.T, n int) []*osc.Message {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		if len(r.msgs) >= n {
			msgs := make([]*osc.Message, n)
			copy(msgs, r.msgs[:n])
			r.mu.Unlock()
			return msgs
		}
		r.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d messages, got %d", n, r.count())
	return nil
}

func newExecutorClient(t *testing.T, rec *oscRecorder) *live.Client {
	t.Helper()

	client, err := live.Dial(config.OSCConfig{
		Host:        "127.0.0.1",
		SendPort:    rec.port(),
		ReceivePort: 0,
		Timeout:     time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func writeSongFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "song.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// twoSectionSong keeps section sleeps around 10ms: 1 bar of 1 beat at
// 6000 BPM.
const twoSectionSong = `
metadata:
  tempo: 6000
  time_signature:
    numerator: 1
    denominator: 4
structure:
  sections:
    - name: intro
      bars: 1
    - name: outro
      bars: 1
`

func TestSongExecuteSequence(t *testing.T) {
	rec := newOSCRecorder(t)
	client := newExecutorClient(t, rec)

	reg := NewRegistry(zap.NewNop())
	RegisterExecutorTools(reg, client)

	path := writeSongFile(t, twoSectionSong)

	result, err := reg.Execute(context.Background(), "song_execute", map[string]any{"song_path": path})
	require.NoError(t, err)
	assert.Contains(t, result.Text, "intro")
	assert.Contains(t, result.Text, "Complete! Recorded")

	msgs := rec.waitForMessages(t, 10)
	got := make([]string, len(msgs))
	for i, m := range msgs {
		got[i] = m.Address
	}

	// Transport setup, then record on, scenes in order with playback
	// starting after the first fire, then transport stopped and record off.
	want := []string{
		"/live/song/set/tempo",
		"/live/song/set/signature_numerator",
		"/live/song/set/signature_denominator",
		"/live/song/set/current_song_time",
		"/live/song/set/record_mode",
		"/live/scene/fire",
		"/live/song/start_playing",
		"/live/scene/fire",
		"/live/song/stop_playing",
		"/live/song/set/record_mode",
	}
	assert.Equal(t, want, got)

	assert.Equal(t, float32(6000), msgs[0].Arguments[0])
	assert.Equal(t, int32(1), msgs[1].Arguments[0])
	assert.Equal(t, int32(4), msgs[2].Arguments[0])
	assert.Equal(t, float32(0), msgs[3].Arguments[0])

	// Record mode brackets the run.
	assert.Equal(t, int32(1), msgs[4].Arguments[0])
	assert.Equal(t, int32(0), msgs[9].Arguments[0])

	// Section i fires scene i.
	assert.Equal(t, int32(0), msgs[5].Arguments[0])
	assert.Equal(t, int32(1), msgs[7].Arguments[0])
}

func TestSongExecuteWithoutRecord(t *testing.T) {
	rec := newOSCRecorder(t)
	client := newExecutorClient(t, rec)

	reg := NewRegistry(zap.NewNop())
	RegisterExecutorTools(reg, client)

	path := writeSongFile(t, twoSectionSong)

	_, err := reg.Execute(context.Background(), "song_execute", map[string]any{
		"song_path": path,
		"record":    false,
	})
	require.NoError(t, err)

	msgs := rec.waitForMessages(t, 8)
	for _, m := range msgs {
		assert.NotEqual(t, "/live/song/set/record_mode", m.Address)
	}
	assert.Equal(t, "/live/song/stop_playing", msgs[7].Address)
}

func TestSongExecuteCancelStopsTransport(t *testing.T) {
	rec := newOSCRecorder(t)
	client := newExecutorClient(t, rec)

	// One 16-beat section at 60 BPM: the section wait far outlives the
	// context deadline.
	path := writeSongFile(t, `
metadata:
  tempo: 60
structure:
  sections:
    - name: long
      bars: 4
`)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	song := live.NewSong(client)
	scene := live.NewScene(client)
	_, err := executeSong(ctx, song, scene, path, true, false)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// Even on abort, the transport is stopped and record mode cleared.
	msgs := rec.waitForMessages(t, 9)
	assert.Equal(t, "/live/song/start_playing", msgs[6].Address)
	assert.Equal(t, "/live/song/stop_playing", msgs[7].Address)
	assert.Equal(t, "/live/song/set/record_mode", msgs[8].Address)
	assert.Equal(t, int32(0), msgs[8].Arguments[0])
}

func TestSongExecuteInfoSendsNothing(t *testing.T) {
	rec := newOSCRecorder(t)
	client := newExecutorClient(t, rec)

	reg := NewRegistry(zap.NewNop())
	RegisterExecutorTools(reg, client)

	path := writeSongFile(t, twoSectionSong)

	result, err := reg.Execute(context.Background(), "song_execute_info", map[string]any{"song_path": path})
	require.NoError(t, err)
	assert.Contains(t, result.Text, "[DRY RUN]")
	assert.Contains(t, result.Text, "Tempo: 6000 BPM, Time Signature: 1/4")

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, rec.count())
}
