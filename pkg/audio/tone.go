package audio

import (
	"encoding/binary"
	"math"
	"time"
)

// Format describes 16-bit little-endian PCM audio
type Format struct {
	SampleRate int
	Channels   int
}

// DefaultFormat is used for the break chime
var DefaultFormat = Format{SampleRate: 44100, Channels: 2}

// Note is a single decaying sine tone
type Note struct {
	Frequency float64 // Hz
	Duration  time.Duration
}

// ChimeNotes is the two-tone chime played when a break starts
var ChimeNotes = []Note{
	{Frequency: 880, Duration: 350 * time.Millisecond},
	{Frequency: 659.25, Duration: 650 * time.Millisecond},
}

const chimeVolume = 0.35

// Synthesize renders notes back to back as interleaved 16-bit LE PCM
func Synthesize(format Format, notes []Note) []byte {
	frames := 0
	for _, n := range notes {
		frames += framesFor(format, n.Duration)
	}

	out := make([]byte, 0, frames*format.Channels*2)
	for _, n := range notes {
		count := framesFor(format, n.Duration)
		for i := 0; i < count; i++ {
			t := float64(i) / float64(format.SampleRate)
			progress := float64(i) / float64(count)

			// Short attack, exponential decay
			envelope := math.Exp(-4 * progress)
			if attack := float64(i) / (0.005 * float64(format.SampleRate)); attack < 1 {
				envelope *= attack
			}

			sample := int16(chimeVolume * envelope * math.Sin(2*math.Pi*n.Frequency*t) * math.MaxInt16)
			for ch := 0; ch < format.Channels; ch++ {
				out = binary.LittleEndian.AppendUint16(out, uint16(sample))
			}
		}
	}
	return out
}

func framesFor(format Format, d time.Duration) int {
	return int(d.Seconds() * float64(format.SampleRate))
}
