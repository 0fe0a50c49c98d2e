package live

import "context"

// Song wraps the /live/song address space.
type Song struct {
	c *Client
}

// NewSong returns a Song facade over the client.
func NewSong(c *Client) Song {
	return Song{c: c}
}

func (s Song) GetTempo(ctx context.Context) (float64, error) {
	args, err := s.c.Query(ctx, "/live/song/get/tempo")
	if err != nil {
		return 0, err
	}
	return firstFloat(args)
}

func (s Song) SetTempo(ctx context.Context, bpm float64) error {
	return s.c.Send("/live/song/set/tempo", bpm)
}

func (s Song) StartPlaying(ctx context.Context) error {
	return s.c.Send("/live/song/start_playing")
}

func (s Song) StopPlaying(ctx context.Context) error {
	return s.c.Send("/live/song/stop_playing")
}

func (s Song) ContinuePlaying(ctx context.Context) error {
	return s.c.Send("/live/song/continue_playing")
}

func (s Song) GetIsPlaying(ctx context.Context) (bool, error) {
	args, err := s.c.Query(ctx, "/live/song/get/is_playing")
	if err != nil {
		return false, err
	}
	return firstBool(args)
}

func (s Song) GetNumTracks(ctx context.Context) (int, error) {
	args, err := s.c.Query(ctx, "/live/song/get/num_tracks")
	if err != nil {
		return 0, err
	}
	return firstInt(args)
}

func (s Song) GetNumScenes(ctx context.Context) (int, error) {
	args, err := s.c.Query(ctx, "/live/song/get/num_scenes")
	if err != nil {
		return 0, err
	}
	return firstInt(args)
}

// CreateMidiTrack inserts a MIDI track at index; -1 appends.
func (s Song) CreateMidiTrack(ctx context.Context, index int) error {
	return s.c.Send("/live/song/create_midi_track", index)
}

// CreateAudioTrack inserts an audio track at index; -1 appends.
func (s Song) CreateAudioTrack(ctx context.Context, index int) error {
	return s.c.Send("/live/song/create_audio_track", index)
}

func (s Song) DeleteTrack(ctx context.Context, index int) error {
	return s.c.Send("/live/song/delete_track", index)
}

func (s Song) CreateScene(ctx context.Context, index int) error {
	return s.c.Send("/live/song/create_scene", index)
}

func (s Song) DeleteScene(ctx context.Context, index int) error {
	return s.c.Send("/live/song/delete_scene", index)
}

func (s Song) GetMetronome(ctx context.Context) (bool, error) {
	args, err := s.c.Query(ctx, "/live/song/get/metronome")
	if err != nil {
		return false, err
	}
	return firstBool(args)
}

func (s Song) SetMetronome(ctx context.Context, enabled bool) error {
	return s.c.Send("/live/song/set/metronome", enabled)
}

func (s Song) GetRecordMode(ctx context.Context) (bool, error) {
	args, err := s.c.Query(ctx, "/live/song/get/record_mode")
	if err != nil {
		return false, err
	}
	return firstBool(args)
}

func (s Song) SetRecordMode(ctx context.Context, enabled bool) error {
	return s.c.Send("/live/song/set/record_mode", enabled)
}

func (s Song) GetSignatureNumerator(ctx context.Context) (int, error) {
	args, err := s.c.Query(ctx, "/live/song/get/signature_numerator")
	if err != nil {
		return 0, err
	}
	return firstInt(args)
}

func (s Song) SetSignatureNumerator(ctx context.Context, numerator int) error {
	return s.c.Send("/live/song/set/signature_numerator", numerator)
}

func (s Song) GetSignatureDenominator(ctx context.Context) (int, error) {
	args, err := s.c.Query(ctx, "/live/song/get/signature_denominator")
	if err != nil {
		return 0, err
	}
	return firstInt(args)
}

func (s Song) SetSignatureDenominator(ctx context.Context, denominator int) error {
	return s.c.Send("/live/song/set/signature_denominator", denominator)
}

func (s Song) GetCurrentSongTime(ctx context.Context) (float64, error) {
	args, err := s.c.Query(ctx, "/live/song/get/current_song_time")
	if err != nil {
		return 0, err
	}
	return firstFloat(args)
}

// SetCurrentSongTime moves the playhead, in beats.
func (s Song) SetCurrentSongTime(ctx context.Context, beats float64) error {
	return s.c.Send("/live/song/set/current_song_time", beats)
}

// GetSongLength returns the arrangement length in beats.
func (s Song) GetSongLength(ctx context.Context) (float64, error) {
	args, err := s.c.Query(ctx, "/live/song/get/song_length")
	if err != nil {
		return 0, err
	}
	return firstFloat(args)
}

func (s Song) Undo(ctx context.Context) error {
	return s.c.Send("/live/song/undo")
}

func (s Song) Redo(ctx context.Context) error {
	return s.c.Send("/live/song/redo")
}
