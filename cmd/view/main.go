package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/df07/go-raycaster/pkg/loaders"
	"github.com/df07/go-raycaster/pkg/viewer"
)

const minWindowSize = 256

var bindings = map[ebiten.Key]viewer.Action{
	ebiten.KeyArrowUp:   viewer.ScaleUp,
	ebiten.KeyArrowDown: viewer.ScaleDown,
	ebiten.KeyD:         viewer.ScaleXUp,
	ebiten.KeyA:         viewer.ScaleXDown,
	ebiten.KeyW:         viewer.ScaleYUp,
	ebiten.KeyS:         viewer.ScaleYDown,
	ebiten.KeyL:         viewer.TranslateRight,
	ebiten.KeyJ:         viewer.TranslateLeft,
	ebiten.KeyI:         viewer.TranslateUp,
	ebiten.KeyK:         viewer.TranslateDown,
	ebiten.KeyM:         viewer.ShearXUp,
	ebiten.KeyN:         viewer.ShearXDown,
	ebiten.KeyY:         viewer.ShearYUp,
	ebiten.KeyU:         viewer.ShearYDown,
	ebiten.KeyC:         viewer.RotateCCW,
	ebiten.KeyZ:         viewer.RotateCW,
	ebiten.KeyR:         viewer.Reset,
}

// Game shows one image under the current view transform
type Game struct {
	image     *ebiten.Image
	transform viewer.Transform
	width     int
	height    int
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, action := range bindings {
		if inpututil.IsKeyJustPressed(key) {
			g.transform.Apply(action)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	bounds := g.image.Bounds()
	m := g.transform.ImageToScreen(bounds.Dx(), bounds.Dy(), g.width, g.height)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.SetElement(0, 0, m.A)
	op.GeoM.SetElement(0, 1, m.B)
	op.GeoM.SetElement(0, 2, m.TX)
	op.GeoM.SetElement(1, 0, m.C)
	op.GeoM.SetElement(1, 1, m.D)
	op.GeoM.SetElement(1, 2, m.TY)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.image, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: view image.ppm")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Keys: up/down scale, D/A x-scale, W/S y-scale, L/J/I/K translate,")
		fmt.Fprintln(os.Stderr, "M/N x-shear, Y/U y-shear, C/Z rotate, R reset, Esc quit")
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	frame, err := loaders.LoadImage(flag.Arg(0))
	if err != nil {
		log.Printf("Error loading image: %v", err)
		os.Exit(1)
	}

	game := &Game{
		image:     ebiten.NewImageFromImage(frame.ToImage()),
		transform: viewer.NewTransform(),
		width:     frame.Width,
		height:    frame.Height,
	}

	ebiten.SetWindowSize(max(frame.Width, minWindowSize), max(frame.Height, minWindowSize))
	ebiten.SetWindowTitle("view - " + flag.Arg(0))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}
