package main

import (
	"github.com/hajimehoshi/oto/v2"

	"github.com/nesgo/nesgo/internal/nes"
)

const (
	audioSampleRate = 44100
	audioChannels   = 1
	audioBitDepth   = 2 // bytes per sample, int16 PCM
)

// audioSink feeds the APU's per-cycle sample callback into an oto player
// through a small ring buffer, downsampling the APU's ~1.79MHz output rate
// to the device sample rate.
type audioSink struct {
	player     oto.Player
	sampleStep float64
}

func newAudioSink(console *nes.Console) (*audioSink, error) {
	ctx, ready, err := oto.NewContext(audioSampleRate, audioChannels, audioBitDepth)
	if err != nil {
		return nil, err
	}
	<-ready

	const bufSeconds = 0.05
	buf := make([]byte, int(audioSampleRate*bufSeconds)*audioBitDepth)
	r := &ringReader{buf: buf}
	player := ctx.NewPlayer(r)
	player.Play()

	sink := &audioSink{
		player:     player,
		sampleStep: 1789773.0 / audioSampleRate,
	}

	n := 0.0
	console.SetAudioSink(func(sample float32) {
		n += 1
		if n < sink.sampleStep {
			return
		}
		n -= sink.sampleStep
		r.push(sample)
	})
	return sink, nil
}

// ringReader adapts a circular PCM buffer to io.Reader for oto's Player,
// which pulls samples rather than receiving pushes.
type ringReader struct {
	buf   []byte
	write int
	read  int
	full  bool
}

func (r *ringReader) push(sample float32) {
	v := int16(sample * 32767)
	r.buf[r.write] = byte(v)
	r.buf[r.write+1] = byte(v >> 8)
	r.write = (r.write + 2) % len(r.buf)
	if r.write == r.read {
		r.full = true
	}
}

func (r *ringReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if r.read == r.write && !r.full {
			break
		}
		p[n] = r.buf[r.read]
		r.read = (r.read + 1) % len(r.buf)
		r.full = false
		n++
	}
	return n, nil
}
