package notify

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls [][2]string
	mu    sync.Mutex
}

func (r *recorder) send(title, msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, [2]string{title, msg})

	return nil
}

func TestDesktopNotify(t *testing.T) {
	r := &recorder{}

	d := New(WithSender(r.send), WithSound(false))

	require.NoError(t, d.RequestPermission())
	require.NoError(t, d.Notify("Time's up!", "Focus session finished."))
	require.NoError(t, d.Notify("Time's up!", "Timer finished."))

	d.Wait()

	assert.ElementsMatch(t, [][2]string{
		{"Time's up!", "Focus session finished."},
		{"Time's up!", "Timer finished."},
	}, r.calls)
}

func TestDesktopNotifyFailureIsNotReturned(t *testing.T) {
	d := New(WithSender(func(string, string) error {
		return errors.New("no notification daemon")
	}))

	assert.NoError(t, d.Notify("title", "body"))

	d.Wait()
}

func TestDesktopChime(t *testing.T) {
	played := make(chan struct{}, 1)

	d := New(WithSender(func(string, string) error { return nil }))
	d.chime = func() error {
		played <- struct{}{}
		return nil
	}

	require.NoError(t, d.Notify("title", "body"))
	d.Wait()

	assert.Len(t, played, 1)
}

func TestChimeStreamLength(t *testing.T) {
	stream, err := chimeStream()
	require.NoError(t, err)

	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0

	for {
		n, ok := stream.Stream(buf)

		for _, s := range buf[:n] {
			peak = max(peak, s[0])
		}

		total += n

		if !ok || n == 0 {
			break
		}
	}

	want := len(chimeNotes) * (sampleRate.N(toneLength) + sampleRate.N(toneGap))

	assert.Equal(t, want, total)
	assert.Greater(t, peak, 0.0)
	assert.LessOrEqual(t, peak, 1.0)
}
