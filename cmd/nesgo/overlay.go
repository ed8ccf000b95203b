package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/nesgo/nesgo/internal/nes"
)

var hudColor = color.RGBA{R: 0x20, G: 0xFF, B: 0x20, A: 0xFF}

// overlay draws a small heads-up display (frame counter, controller
// state) over the game image when toggled on with F1.
type overlay struct {
	face font.Face
}

func newOverlay() *overlay {
	tt, err := opentype.Parse(fonts.MPlus1pRegular_ttf)
	if err != nil {
		log.Fatal(err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    8,
		DPI:     144,
		Hinting: font.HintingNone,
	})
	if err != nil {
		log.Fatal(err)
	}
	return &overlay{face: face}
}

func (o *overlay) draw(screen *ebiten.Image, console *nes.Console) {
	text.Draw(screen, "F1: toggle HUD", o.face, 4, 12, hudColor)
	text.Draw(screen, fmt.Sprintf("frame: %d", console.FrameCount()), o.face, 4, 24, hudColor)
	text.Draw(screen, fmt.Sprintf("p1: %08b", console.ButtonsSnapshot(1)), o.face, 4, 36, hudColor)
}
