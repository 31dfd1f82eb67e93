package audio

import (
	"bytes"
	"encoding/binary"
	"time"
)

const (
	// Probe clip parameters. 16 kHz mono s16 matches what every upload-style
	// provider accepts without transcoding.
	SampleRate    = 16000
	Channels      = 1
	BitsPerSample = 16
)

// Silence returns raw 16-bit little-endian PCM of the given duration with all
// samples at zero. Upload probes send this clip: a provider that accepts it
// and returns an empty transcript has proven the credential works.
func Silence(d time.Duration) []byte {
	samples := int(d.Seconds() * SampleRate * Channels)
	return make([]byte, samples*BitsPerSample/8)
}

// EncodeWAV wraps raw 16-bit PCM audio in a WAV container
func EncodeWAV(rawAudio []byte) []byte {
	var buf bytes.Buffer

	const byteRate = SampleRate * Channels * BitsPerSample / 8
	const blockAlign = Channels * BitsPerSample / 8

	dataSize := len(rawAudio)
	fileSize := 36 + dataSize

	// WAV header
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(fileSize))
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))            // fmt chunk size
	binary.Write(&buf, binary.LittleEndian, uint16(1))             // PCM format
	binary.Write(&buf, binary.LittleEndian, uint16(Channels))      // number of channels
	binary.Write(&buf, binary.LittleEndian, uint32(SampleRate))    // sample rate
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))      // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))    // block align
	binary.Write(&buf, binary.LittleEndian, uint16(BitsPerSample)) // bits per sample

	// data chunk
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(rawAudio)

	return buf.Bytes()
}

// ProbeClip returns a short silent WAV clip used by upload-style probes
func ProbeClip() []byte {
	return EncodeWAV(Silence(500 * time.Millisecond))
}
