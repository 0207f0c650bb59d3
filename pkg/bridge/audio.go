package bridge

import (
	"fmt"
	"sync"

	opus "gopkg.in/hraban/opus.v2"

	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/protocol"
)

// maxOpusFrameSamples is the largest opus frame (120ms at 48kHz, mono).
const maxOpusFrameSamples = 5760

// micDecoder converts device mic payloads to raw PCM16 bytes.
// Devices on constrained links send opus frames; local test clients send
// pcm16 directly.
type micDecoder struct {
	mu       sync.Mutex
	decoders map[int]*opus.Decoder // keyed by sample rate
}

func newMicDecoder() *micDecoder {
	return &micDecoder{
		decoders: make(map[int]*opus.Decoder),
	}
}

// decode returns little-endian PCM16 bytes for one mic payload.
func (d *micDecoder) decode(mic *protocol.MicData) ([]byte, error) {
	raw, err := mic.DecodeMicData()
	if err != nil {
		return nil, fmt.Errorf("bridge: bad mic payload: %w", err)
	}

	switch mic.Format {
	case "", "pcm16":
		return raw, nil

	case "opus":
		dec, err := d.decoderFor(mic.SampleRate)
		if err != nil {
			return nil, err
		}

		pcm := make([]int16, maxOpusFrameSamples)
		d.mu.Lock()
		n, err := dec.Decode(raw, pcm)
		d.mu.Unlock()
		if err != nil {
			return nil, fmt.Errorf("bridge: opus decode: %w", err)
		}
		return pcm16Bytes(pcm[:n]), nil

	default:
		return nil, fmt.Errorf("bridge: unsupported mic format %q", mic.Format)
	}
}

// decoderFor returns a cached decoder for the given sample rate.
func (d *micDecoder) decoderFor(sampleRate int) (*opus.Decoder, error) {
	if sampleRate == 0 {
		sampleRate = 16000
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if dec, ok := d.decoders[sampleRate]; ok {
		return dec, nil
	}
	dec, err := opus.NewDecoder(sampleRate, 1)
	if err != nil {
		return nil, fmt.Errorf("bridge: opus decoder init: %w", err)
	}
	d.decoders[sampleRate] = dec
	return dec, nil
}

// pcm16Bytes packs samples into little-endian bytes.
func pcm16Bytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		buf[i*2] = byte(s)
		buf[i*2+1] = byte(s >> 8)
	}
	return buf
}
