// Command nesgo runs an iNES ROM in an ebiten window.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/nesgo/nesgo/internal/nes"
)

const (
	screenWidth  = 256
	screenHeight = 240
)

var controllerKeys = map[ebiten.Key]nes.Button{
	ebiten.KeyX:     nes.ButtonA,
	ebiten.KeyZ:     nes.ButtonB,
	ebiten.KeyA:     nes.ButtonSelect,
	ebiten.KeyS:     nes.ButtonStart,
	ebiten.KeyUp:    nes.ButtonUp,
	ebiten.KeyDown:  nes.ButtonDown,
	ebiten.KeyLeft:  nes.ButtonLeft,
	ebiten.KeyRight: nes.ButtonRight,
}

// Game adapts a *nes.Console to ebiten's update/draw loop.
type Game struct {
	console *nes.Console
	audio   *audioSink
	overlay *overlay
	showHUD bool
	scale   int
}

func (g *Game) Update() error {
	pressed := inpututil.AppendPressedKeys(nil)
	held := make(map[ebiten.Key]bool, len(pressed))
	for _, k := range pressed {
		held[k] = true
	}
	for key, btn := range controllerKeys {
		if held[key] {
			g.console.ButtonDown(1, btn)
		} else {
			g.console.ButtonUp(1, btn)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showHUD = !g.showHUD
	}

	g.console.RunForSeconds(1.0 / 60.0)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	frame := g.console.Frame()
	screen.WritePixels(frame.Pix)
	if g.showHUD {
		g.overlay.draw(screen, g.console)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	romPath := flag.String("rom", "", "path to an iNES .nes ROM file")
	scale := flag.Int("scale", 3, "window scale factor")
	verbose := flag.Bool("v", false, "enable debug-level logging (warnings such as unimplemented opcodes are logged either way)")
	nestest := flag.Bool("nestest", false, "run nestest.nes's automation entry point and print its trace log instead of opening a window")
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "usage: nesgo -rom path/to/game.nes")
		os.Exit(2)
	}

	logLevel := zerolog.WarnLevel
	if *verbose {
		logLevel = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(logLevel).With().Timestamp().Logger()

	rom, err := os.ReadFile(*romPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *romPath).Msg("read rom")
	}

	console, err := nes.NewConsole(rom, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("load rom")
	}

	if *nestest {
		console.RunNestest(8991, func(line nes.TraceLine) {
			fmt.Println(line.String())
		})
		return
	}

	sink, err := newAudioSink(console)
	if err != nil {
		logger.Warn().Err(err).Msg("audio disabled")
	}

	game := &Game{
		console: console,
		audio:   sink,
		overlay: newOverlay(),
		scale:   *scale,
	}

	ebiten.SetWindowSize(screenWidth*(*scale), screenHeight*(*scale))
	ebiten.SetWindowTitle("nesgo")
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal().Err(err).Msg("run game")
	}
}
