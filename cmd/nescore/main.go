// Command nescore is a headless test harness for the emulator core: load a
// ROM, run it for a fixed number of frames with no video/audio output, and
// print header or diagnostic info. It has no GUI — that layer is an
// explicit non-goal of the core this command wraps.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"nescore/config"
	"nescore/core"
	"nescore/emu/log"
	"nescore/ines"
)

type cli struct {
	Run      runCmd      `cmd:"" help:"Run a ROM headlessly for N frames." default:"1"`
	RomInfos romInfosCmd `cmd:"" name:"rom-infos" help:"Show iNES header info."`
	Version  versionCmd  `cmd:"" help:"Show nescore version."`

	Log string `help:"Comma-separated list of log modules to enable, or 'all'." placeholder:"mod0,mod1,..."`
}

type runCmd struct {
	RomPath string `arg:"" name:"rom" help:"Path to an iNES ROM file." type:"existingfile"`
	Frames  int    `name:"frames" help:"Number of frames to run." default:"60"`
	Config  string `name:"config" help:"Path to a config.toml." type:"path"`
}

func (r *runCmd) Run() error {
	cfg := config.Default()
	if r.Config != "" {
		loaded, err := config.LoadFile(r.Config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	rom, err := ines.Open(r.RomPath)
	if err != nil {
		return fmt.Errorf("opening rom: %w", err)
	}
	cart, err := rom.Cartridge()
	if err != nil {
		return fmt.Errorf("building cartridge: %w", err)
	}

	console, err := core.NewConsoleWithConfig(cart, cfg)
	if err != nil {
		return fmt.Errorf("building console: %w", err)
	}
	console.Reset()
	for i := 0; i < r.Frames; i++ {
		console.ExecuteFrame(false)
	}

	fmt.Printf("ran %d frames, pc=%#04x\n", r.Frames, console.CPU.PC)
	return nil
}

type romInfosCmd struct {
	RomPath string `arg:"" name:"rom" help:"Path to an iNES ROM file." type:"existingfile"`
}

func (r *romInfosCmd) Run() error {
	rom, err := ines.Open(r.RomPath)
	if err != nil {
		return fmt.Errorf("opening rom: %w", err)
	}
	fmt.Printf("mapper=%d prg=%dKiB chr=%dKiB battery=%v trainer=%v mirroring=%v\n",
		rom.Header.Mapper, rom.Header.PRGSize/1024, rom.Header.CHRSize/1024,
		rom.Header.HasBattery(), rom.Header.HasTrainer(), rom.Header.Mirroring())
	return nil
}

type versionCmd struct{}

const version = "nescore 0.1.0"

func (versionCmd) Run() error {
	fmt.Println(version)
	return nil
}

func main() {
	var cfg cli
	parser := kong.Must(&cfg,
		kong.Name("nescore"),
		kong.Description("Headless NES core test harness."),
		kong.UsageOnError(),
	)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if cfg.Log != "" {
		enableLogging(cfg.Log)
	}

	parser.FatalIfErrorf(ctx.Run())
}

func enableLogging(spec string) {
	if spec == "all" {
		log.EnableDebugModules(log.ModuleMaskAll)
		return
	}
	for _, name := range splitComma(spec) {
		mod, ok := log.ModuleByName(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown log module %q\n", name)
			continue
		}
		log.EnableDebugModules(log.ModuleMask(mod.Mask()))
	}
}

func splitComma(s string) []string {
	return strings.Split(s, ",")
}
