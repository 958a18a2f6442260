// Package beep plays short audio cues so the user knows a recording
// started or stopped without looking at the window. Playback failures are
// swallowed; a missing sound server must never break transcription.
package beep

import "math"

var disabled bool

// Disable turns all cues into no-ops, for headless runs and -nobeep.
func Disable() { disabled = true }

const sampleRate = 44100

// cue describes one synthesized tone. A repeat of 2 with a gap gives the
// double-beep used for errors.
type cue struct {
	freq   float64
	dur    float64 // seconds per tone
	volume float64
	decay  float64 // exponential envelope rate
	repeat int
	gap    float64 // seconds between repeats
}

var (
	recordStart = cue{freq: 1200, dur: 0.2, volume: 0.5, decay: 60, repeat: 1}
	recordStop  = cue{freq: 900, dur: 0.2, volume: 0.5, decay: 40, repeat: 1}
	failure     = cue{freq: 350, dur: 0.08, volume: 0.6, decay: 30, repeat: 2, gap: 0.05}
)

// synth renders the cue as mono signed 16-bit samples.
func synth(c cue) []int16 {
	toneN := int(float64(sampleRate) * c.dur)
	gapN := int(float64(sampleRate) * c.gap)
	repeat := c.repeat
	if repeat < 1 {
		repeat = 1
	}

	out := make([]int16, 0, repeat*toneN+(repeat-1)*gapN)
	for r := 0; r < repeat; r++ {
		if r > 0 {
			out = append(out, make([]int16, gapN)...)
		}
		for i := 0; i < toneN; i++ {
			t := float64(i) / float64(sampleRate)
			envelope := math.Exp(-t * c.decay)
			out = append(out, int16(math.Sin(2*math.Pi*c.freq*t)*32767*c.volume*envelope))
		}
	}
	return out
}

func RecordStart() {
	if disabled {
		return
	}
	play(recordStart)
}

func RecordStop() {
	if disabled {
		return
	}
	play(recordStop)
}

func Failure() {
	if disabled {
		return
	}
	play(failure)
}
