// Package config holds the TOML-loadable knobs an embedding host can tune
// on a Console, trimmed to what the emulation core itself cares about — no
// window, input-mapping or GUI config, which is a host concern the core
// never touches.
package config

import (
	"github.com/BurntSushi/toml"
)

// Config is the root of a config.toml document.
type Config struct {
	Emulation EmulationConfig `toml:"emulation"`
	Audio     AudioConfig     `toml:"audio"`
}

// EmulationConfig controls timing and opcode-strictness knobs.
type EmulationConfig struct {
	// Region selects the console's clock rate. Only NTSC is implemented;
	// core.NewConsoleWithConfig rejects any other value with
	// core.ErrUnsupportedRegion rather than silently running at the wrong
	// speed.
	Region string `toml:"region"`
	// StrictOpcodes makes the CPU fault on an undocumented opcode instead
	// of treating it as a same-length NOP. See core.CPU.StrictOpcodes.
	StrictOpcodes bool `toml:"strict_opcodes"`
}

// AudioConfig controls APU output shaping.
type AudioConfig struct {
	// SampleRate is the PCM rate, in Hz, the APU resamples its output to;
	// see core/apu.NewMixer.
	SampleRate     int     `toml:"sample_rate"`
	Square1Volume  float64 `toml:"square1_volume"`
	Square2Volume  float64 `toml:"square2_volume"`
	TriangleVolume float64 `toml:"triangle_volume"`
	NoiseVolume    float64 `toml:"noise_volume"`
	DMCVolume      float64 `toml:"dmc_volume"`
}

// Default returns the configuration a Console runs with when no file is
// supplied: NTSC timing, lenient opcode handling, full volume on every
// channel at a 44.1kHz output rate.
func Default() Config {
	return Config{
		Emulation: EmulationConfig{Region: "NTSC", StrictOpcodes: false},
		Audio: AudioConfig{
			SampleRate:     44100,
			Square1Volume:  1.0,
			Square2Volume:  1.0,
			TriangleVolume: 1.0,
			NoiseVolume:    1.0,
			DMCVolume:      1.0,
		},
	}
}

// Load decodes a TOML document into a Config seeded with Default, so a
// partial file only overrides the fields it names.
func Load(data []byte) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads and decodes path the same way Load does.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
