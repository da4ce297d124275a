// This file is part of CoreHost.
//
// CoreHost is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// CoreHost is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CoreHost.  If not, see <https://www.gnu.org/licenses/>.

package sdlhost

import (
	"github.com/lodgepole/corehost/fault"
	"github.com/veandco/go-sdl2/sdl"
)

// sample frequency of the audio device. cores that produce audio at a
// different rate are expected to have resampled before queueing
const sampleFreq = 48000

// the device buffer length is a trade-off. too long and the audio lags the
// video; too short and we underflow on a busy frame. the value is not
// critical
const audioBufferLength = 512

// when the driver is in non-blocking mode, samples are dropped once the
// device queue grows beyond this many bytes. keeps fast-forward from piling
// up seconds of stale audio
const nonblockQueueLimit = 32768

// volume moves in these increments. sixteen steps from silent to full
const volumeStep = 1.0 / 16

// audio is the SDL sound driver. Samples arrive as interleaved stereo
// int16 and are queued to the device after software volume scaling.
type audio struct {
	host *SdlHost

	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	volume   float32
	muted    bool
	nonblock bool

	// scratch buffer reused between Queue calls
	scratch []byte
}

func (aud *audio) Init() error {
	spec := &sdl.AudioSpec{
		Freq:     sampleFreq,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 2,
		Samples:  uint16(audioBufferLength),
	}

	var err error
	var actualSpec sdl.AudioSpec

	aud.id, err = sdl.OpenAudioDevice("", false, spec, &actualSpec, 0)
	if err != nil {
		return fault.Errorf("sdlhost: audio: %v", err)
	}
	aud.spec = actualSpec
	aud.volume = 1.0

	sdl.PauseAudioDevice(aud.id, false)

	return nil
}

func (aud *audio) Deinit() {
	if aud.id == 0 {
		return
	}
	sdl.ClearQueuedAudio(aud.id)
	sdl.CloseAudioDevice(aud.id)
	aud.id = 0
}

// Queue sends a frame's worth of samples to the device.
func (aud *audio) Queue(samples []int16) error {
	if aud.id == 0 || len(samples) == 0 {
		return nil
	}

	// in non-blocking mode the core runs faster than the device drains.
	// dropping whole frames of audio is better than an ever-growing queue
	if aud.nonblock && sdl.GetQueuedAudioSize(aud.id) > nonblockQueueLimit {
		return nil
	}

	if cap(aud.scratch) < len(samples)*2 {
		aud.scratch = make([]byte, len(samples)*2)
	}
	aud.scratch = aud.scratch[:len(samples)*2]

	vol := aud.volume
	if aud.muted {
		vol = 0
	}

	for i, s := range samples {
		v := int16(float32(s) * vol)
		aud.scratch[i*2] = byte(v)
		aud.scratch[i*2+1] = byte(v >> 8)
	}

	if err := sdl.QueueAudio(aud.id, aud.scratch); err != nil {
		return fault.Errorf("sdlhost: audio: %v", err)
	}

	return nil
}

func (aud *audio) SetMute(on bool) {
	aud.muted = on
}

func (aud *audio) Muted() bool {
	return aud.muted
}

func (aud *audio) VolumeDelta(up bool) {
	if up {
		aud.volume += volumeStep
		if aud.volume > 1.0 {
			aud.volume = 1.0
		}
	} else {
		aud.volume -= volumeStep
		if aud.volume < 0.0 {
			aud.volume = 0.0
		}
	}
}

func (aud *audio) SetNonblock(on bool) {
	aud.nonblock = on
	if on && aud.id != 0 {
		sdl.ClearQueuedAudio(aud.id)
	}
}
