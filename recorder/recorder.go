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

// Package recorder captures the session's audio output. Samples are buffered
// in memory in their entirety and written to disk as a WAV file when
// recording ends, so it is suited to capture sessions rather than marathon
// play.
package recorder

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/lodgepole/corehost/fault"
	"github.com/lodgepole/corehost/logger"
)

// Recorder implements the session's audio tap.
type Recorder struct {
	filename string
	rate     int
	channels int
	buffer   []int
	active   bool
}

// New is the preferred method of initialisation for the Recorder type.
// Recording starts immediately.
func New(filename string, sampleRate int, channels int) *Recorder {
	return &Recorder{
		filename: filename,
		rate:     sampleRate,
		channels: channels,
		active:   true,
	}
}

// Active returns true while the recorder is accepting samples.
func (r *Recorder) Active() bool {
	return r != nil && r.active
}

// Write buffers a block of interleaved samples. Samples arriving after End()
// are dropped.
func (r *Recorder) Write(samples []int16) {
	if !r.Active() {
		return
	}
	for _, s := range samples {
		r.buffer = append(r.buffer, int(s))
	}
}

// End stops recording and writes the buffered samples to disk.
func (r *Recorder) End() (rerr error) {
	if !r.Active() {
		return nil
	}
	r.active = false

	f, err := os.Create(r.filename)
	if err != nil {
		return fault.Errorf("recorder: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fault.Errorf("recorder: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, r.rate, 16, r.channels, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: r.channels,
			SampleRate:  r.rate,
		},
		Data:           r.buffer,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return fault.Errorf("recorder: %v", err)
	}
	if err := enc.Close(); err != nil {
		return fault.Errorf("recorder: %v", err)
	}

	logger.Logf("recorder", "written %d samples to %s", len(r.buffer), r.filename)

	return nil
}
