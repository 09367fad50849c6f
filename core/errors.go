package core

import "github.com/go-faster/errors"

// Sentinel error kinds a caller can test for with errors.Is. Lower layers
// (ines, mappers, the CPU) wrap these with context via errors.Wrap rather
// than returning bare fmt.Errorf, so a CLI front-end can distinguish "bad
// ROM" from "unsupported mapper" from "I/O failure" without parsing strings.
var (
	// ErrBadROMHeader is returned when a ROM image fails iNES header
	// validation: wrong magic, truncated file, or an inconsistent bank
	// count.
	ErrBadROMHeader = errors.New("bad iNES header")

	// ErrUnsupportedMapper is returned when a ROM's mapper ID has no
	// registered implementation.
	ErrUnsupportedMapper = errors.New("unsupported mapper")

	// ErrIOFailure wraps failures reading ROM files or battery-backed save
	// RAM from the filesystem.
	ErrIOFailure = errors.New("I/O failure")

	// ErrInvalidOpcode is returned by the CPU in strict mode when it
	// fetches a byte with no defined instruction behind it. In non-strict
	// mode the CPU instead treats unofficial opcodes as NOPs of the
	// correct length and never returns this error.
	ErrInvalidOpcode = errors.New("invalid opcode")

	// ErrUnsupportedRegion is returned by NewConsoleWithConfig when
	// config.EmulationConfig.Region names a console timing this package
	// doesn't implement.
	ErrUnsupportedRegion = errors.New("unsupported region")
)
