package notify

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneLength = 150 * time.Millisecond
	toneGap    = 60 * time.Millisecond
)

// chimeNotes are the frequencies of the completion chime in Hz.
var chimeNotes = []float64{880, 1318.51}

var (
	speakerOnce sync.Once
	speakerErr  error
	chimeMu     sync.Mutex
)

// Chime plays a short two-note chime and blocks until it has finished.
func Chime() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	})

	if speakerErr != nil {
		return speakerErr
	}

	stream, err := chimeStream()
	if err != nil {
		return err
	}

	chimeMu.Lock()
	defer chimeMu.Unlock()

	done := make(chan struct{})

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	<-done

	return nil
}

// chimeStream synthesizes the chime.
func chimeStream() (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, 2*len(chimeNotes))

	for _, freq := range chimeNotes {
		tone, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			return nil, err
		}

		parts = append(parts,
			beep.Take(sampleRate.N(toneLength), &effects.Volume{
				Streamer: tone,
				Base:     2,
				Volume:   -2,
			}),
			beep.Silence(sampleRate.N(toneGap)),
		)
	}

	return beep.Seq(parts...), nil
}
