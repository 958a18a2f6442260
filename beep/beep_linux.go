//go:build linux

package beep

import (
	"sync"

	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
)

var (
	cueSamples map[cue][]int16
	synthOnce  sync.Once
)

func initCues() {
	cueSamples = map[cue][]int16{
		recordStart: synth(recordStart),
		recordStop:  synth(recordStop),
		failure:     synth(failure),
	}
}

// play streams the cue to PulseAudio on a background goroutine. Each cue
// opens its own client; the stream is short enough that connection reuse
// is not worth the bookkeeping.
func play(c cue) {
	synthOnce.Do(initCues)
	samples := cueSamples[c]
	if len(samples) == 0 {
		return
	}
	go playSamples(samples)
}

func playSamples(samples []int16) {
	client, err := pulse.NewClient()
	if err != nil {
		return
	}
	defer client.Close()

	pos := 0
	reader := pulse.Int16Reader(func(buf []int16) (int, error) {
		if pos >= len(samples) {
			return 0, pulse.EndOfData
		}
		n := copy(buf, samples[pos:])
		pos += n
		return n, nil
	})
	stream, err := client.NewPlayback(reader,
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(sampleRate),
		pulse.PlaybackLatency(0.1),
		pulse.PlaybackRawOption(func(p *proto.CreatePlaybackStream) {
			p.ChannelVolumes = proto.ChannelVolumes{uint32(proto.VolumeNorm)}
		}),
	)
	if err != nil {
		return
	}
	stream.Start()
	stream.Drain()
	stream.Stop()
	stream.Close()
}
