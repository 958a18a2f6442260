//go:build darwin

package beep

import (
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"
)

var (
	malgoCtx  *malgo.AllocatedContext
	device    *malgo.Device
	cueBytes  map[cue][]byte
	synthOnce sync.Once

	playing atomic.Pointer[[]byte]
	playPos atomic.Uint32
	playMu  sync.Mutex
)

func initPlayback() {
	var err error
	malgoCtx, err = malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return
	}

	cueBytes = map[cue][]byte{
		recordStart: toBytes(synth(recordStart)),
		recordStop:  toBytes(synth(recordStop)),
		failure:     toBytes(synth(failure)),
	}

	if err := initDevice(); err != nil {
		malgoCtx.Uninit()
		malgoCtx = nil
	}
}

func initDevice() error {
	config := malgo.DefaultDeviceConfig(malgo.Playback)
	config.Playback.Format = malgo.FormatS16
	config.Playback.Channels = 1
	config.SampleRate = sampleRate

	var err error
	device, err = malgo.InitDevice(malgoCtx.Context, config, malgo.DeviceCallbacks{
		Data: dataCallback,
	})
	return err
}

func toBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		buf[i*2] = byte(s)
		buf[i*2+1] = byte(s >> 8)
	}
	return buf
}

func dataCallback(pOutput, _ []byte, frameCount uint32) {
	samples := playing.Load()
	if samples == nil || len(*samples) == 0 {
		for i := range pOutput {
			pOutput[i] = 0
		}
		return
	}

	pos := playPos.Load()
	total := uint32(len(*samples))
	want := frameCount * 2
	remaining := total - pos
	if remaining == 0 {
		playing.Store(nil)
		for i := range pOutput {
			pOutput[i] = 0
		}
		return
	}
	if want > remaining {
		want = remaining
	}
	copy(pOutput[:want], (*samples)[pos:pos+want])
	playPos.Store(pos + want)
	for i := want; i < frameCount*2; i++ {
		pOutput[i] = 0
	}
}

func play(c cue) {
	synthOnce.Do(initPlayback)
	if malgoCtx == nil {
		return
	}
	samples := cueBytes[c]
	if len(samples) == 0 {
		return
	}

	playMu.Lock()
	defer playMu.Unlock()
	if device == nil {
		return
	}

	device.Stop()
	playPos.Store(0)
	playing.Store(&samples)

	if err := device.Start(); err != nil {
		// Recreate the device, which recovers from sleep/wake cycles.
		device.Uninit()
		if err := initDevice(); err != nil {
			playing.Store(nil)
			return
		}
		if err := device.Start(); err != nil {
			playing.Store(nil)
		}
	}
}
