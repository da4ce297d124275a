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

// Package config holds the user settings consulted by the frontend. Settings
// are stored on disk as YAML. Only the fields the frontend itself consults
// are defined here; drivers keep their own preferences.
package config

import (
	"os"

	"github.com/lodgepole/corehost/fault"
	"gopkg.in/yaml.v3"
)

// Netplay groups the netplay connection settings.
type Netplay struct {
	Mode        string `yaml:"mode"`
	Address     string `yaml:"address"`
	Port        uint16 `yaml:"port"`
	Stateless   bool   `yaml:"stateless"`
	CheckFrames int    `yaml:"check_frames"`
}

// Settings is the complete set of user settings.
type Settings struct {
	Verbose bool `yaml:"verbose"`

	// session behaviour
	PauseWhenUnfocused      bool `yaml:"pause_when_unfocused"`
	LoadDummyOnCoreShutdown bool `yaml:"load_dummy_on_core_shutdown"`
	MenuThrottleFramerate   bool `yaml:"menu_throttle_framerate"`

	// timing. a fast-forward ratio of zero means uncapped
	FastForwardRatio float32 `yaml:"fastforward_ratio"`
	SlowMotionRatio  float32 `yaml:"slowmotion_ratio"`

	// state handling
	StateSlot         int  `yaml:"state_slot"`
	RewindGranularity uint `yaml:"rewind_granularity"`
	RewindBufferSize  uint `yaml:"rewind_buffer_size"`
	Autosave          bool `yaml:"autosave"`

	// content
	BuiltinMediaPlayer bool   `yaml:"builtin_mediaplayer"`
	CorePath           string `yaml:"core_path"`
	CoreDirectory      string `yaml:"core_directory"`
	SavePath           string `yaml:"save_path"`
	StatePath          string `yaml:"state_path"`

	// ups/bps/ips
	PatchPreference string `yaml:"patch_preference"`

	RecordPath string `yaml:"record_path"`

	Netplay Netplay `yaml:"netplay"`

	ThreadedTasks bool   `yaml:"threaded_tasks"`
	MaxFrames     uint64 `yaml:"max_frames"`
	Fullscreen    bool   `yaml:"fullscreen"`
}

// Defaults returns a Settings instance with every field at its default
// value.
func Defaults() *Settings {
	return &Settings{
		PauseWhenUnfocused:      true,
		LoadDummyOnCoreShutdown: true,
		MenuThrottleFramerate:   true,
		FastForwardRatio:        0,
		SlowMotionRatio:         3.0,
		StateSlot:               0,
		RewindGranularity:       1,
		RewindBufferSize:        120,
		BuiltinMediaPlayer:      true,
		ThreadedTasks:           true,
	}
}

// Load reads settings from the YAML file at path. A missing file is not an
// error; defaults are returned.
func Load(path string) (*Settings, error) {
	set := Defaults()

	if path == "" {
		return set, nil
	}

	d, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, fault.Errorf("config: %v", err)
	}

	if err := yaml.Unmarshal(d, set); err != nil {
		return nil, fault.Errorf("config: %v", err)
	}

	return set, nil
}

// Save writes the settings to the YAML file at path.
func (set *Settings) Save(path string) error {
	d, err := yaml.Marshal(set)
	if err != nil {
		return fault.Errorf("config: %v", err)
	}
	if err := os.WriteFile(path, d, 0644); err != nil {
		return fault.Errorf("config: %v", err)
	}
	return nil
}
