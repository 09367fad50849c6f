package config

import "testing"

func TestLoadOverridesDefaultsPartially(t *testing.T) {
	data := []byte(`
[emulation]
strict_opcodes = true

[audio]
noise_volume = 0.5
`)
	cfg, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.Emulation.StrictOpcodes {
		t.Error("StrictOpcodes not overridden by config file")
	}
	if cfg.Emulation.Region != "NTSC" {
		t.Errorf("Region = %q, want default NTSC (untouched by file)", cfg.Emulation.Region)
	}
	if cfg.Audio.NoiseVolume != 0.5 {
		t.Errorf("NoiseVolume = %v, want 0.5", cfg.Audio.NoiseVolume)
	}
	if cfg.Audio.Square1Volume != 1.0 {
		t.Errorf("Square1Volume = %v, want default 1.0 (untouched by file)", cfg.Audio.Square1Volume)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	if _, err := Load([]byte("not = [valid")); err == nil {
		t.Fatal("expected an error decoding malformed TOML")
	}
}
