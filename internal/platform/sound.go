package platform

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

// ErrAudioUnavailable indicates the speaker could not be opened.
var ErrAudioUnavailable = errors.New("audio output unavailable")

const (
	chimeSampleRate = beep.SampleRate(44100)
	chimeLength     = 300 * time.Millisecond
	chimeStep       = 100 * time.Millisecond
	chimeHighHz     = 800.0
	chimeLowHz      = 600.0
	chimeStartGain  = 0.3
	chimeEndGain    = 0.01
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// ChimeNotifier plays a short high-low-high beep when a countdown completes.
type ChimeNotifier struct {
	mu      sync.Mutex
	enabled bool
	volume  float64
}

// NewChimeNotifier creates a notifier. Volume is linear in [0, 1].
func NewChimeNotifier(enabled bool, volume float64) *ChimeNotifier {
	notifier := &ChimeNotifier{}
	notifier.Configure(enabled, volume)
	return notifier
}

// Configure updates the sound preferences.
func (notifier *ChimeNotifier) Configure(enabled bool, volume float64) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.enabled = enabled
	notifier.volume = clampVolume(volume)
}

// Enabled reports whether the chime will be played.
func (notifier *ChimeNotifier) Enabled() bool {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.enabled && notifier.volume > 0
}

// PlayCompletionSound queues the chime on the speaker and returns immediately.
func (notifier *ChimeNotifier) PlayCompletionSound() error {
	notifier.mu.Lock()
	enabled := notifier.enabled
	volume := notifier.volume
	notifier.mu.Unlock()

	if !enabled || volume <= 0 {
		return nil
	}

	speakerOnce.Do(func() {
		speakerErr = speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/10))
	})
	if speakerErr != nil {
		return fmt.Errorf("%w: %v", ErrAudioUnavailable, speakerErr)
	}

	speaker.Play(&effects.Volume{
		Streamer: newChime(chimeSampleRate),
		Base:     2,
		Volume:   volumeExponent(volume),
	})
	return nil
}

// chime synthesizes the completion tone: 800 Hz, 600 Hz, 800 Hz in 100ms
// steps under an exponential decay.
type chime struct {
	rate   beep.SampleRate
	pos    int
	length int
	phase  float64
}

func newChime(rate beep.SampleRate) *chime {
	return &chime{rate: rate, length: rate.N(chimeLength)}
}

func (tone *chime) Stream(samples [][2]float64) (int, bool) {
	if tone.pos >= tone.length {
		return 0, false
	}
	written := 0
	for i := range samples {
		if tone.pos >= tone.length {
			break
		}
		elapsed := tone.rate.D(tone.pos)
		value := chimeGain(elapsed) * math.Sin(tone.phase)
		samples[i][0] = value
		samples[i][1] = value

		tone.phase += 2 * math.Pi * chimeFrequency(elapsed) / float64(tone.rate)
		if tone.phase > 2*math.Pi {
			tone.phase -= 2 * math.Pi
		}
		tone.pos++
		written++
	}
	return written, true
}

func (tone *chime) Err() error {
	return nil
}

func chimeFrequency(elapsed time.Duration) float64 {
	if elapsed >= chimeStep && elapsed < 2*chimeStep {
		return chimeLowHz
	}
	return chimeHighHz
}

func chimeGain(elapsed time.Duration) float64 {
	fraction := float64(elapsed) / float64(chimeLength)
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return chimeStartGain * math.Pow(chimeEndGain/chimeStartGain, fraction)
}

// volumeExponent converts a linear volume into the base-2 exponent used by effects.Volume.
func volumeExponent(volume float64) float64 {
	return math.Log2(clampVolume(volume))
}

func clampVolume(volume float64) float64 {
	if volume < 0 {
		return 0
	}
	if volume > 1 {
		return 1
	}
	return volume
}
