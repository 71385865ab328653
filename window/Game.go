// Package window plays a local match in a desktop window.
package window

import (
	"image/color"

	"pong/core"
	"pong/engine"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const windowTitle = "Pong"

const (
	popScale    = 3.0
	popDuration = 0.4
	scoreScale  = 2.0
)

var (
	clearColor = color.RGBA{R: 51, G: 51, B: 51, A: 255}
	whiteColor = color.White
)

// Keys binds the ebiten keys for both players.
type Keys struct {
	P1Up, P1Down ebiten.Key
	P2Up, P2Down ebiten.Key
	Serve        ebiten.Key
	Quit         ebiten.Key
}

var DefaultKeys = Keys{
	P1Up:   ebiten.KeyW,
	P1Down: ebiten.KeyS,
	P2Up:   ebiten.KeyArrowUp,
	P2Down: ebiten.KeyArrowDown,
	Serve:  ebiten.KeySpace,
	Quit:   ebiten.KeyEscape,
}

// Game adapts a Host to ebiten's Update/Draw loop.
type Game struct {
	host   *engine.Host
	tuning core.Tuning
	keys   Keys

	scores [2]int
	pops   [2]*gween.Tween
	scale  [2]float32
	text   [2]*ebiten.Image
}

func NewGame(host *engine.Host) *Game {
	g := &Game{
		host:   host,
		tuning: host.Tuning(),
		keys:   DefaultKeys,
		scale:  [2]float32{scoreScale, scoreScale},
	}
	for i := range g.text {
		g.text[i] = ebiten.NewImage(32, 16)
	}
	return g
}

func Run(settings core.Settings) error {
	host, err := engine.NewMatch(settings.Tuning)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(int(settings.Tuning.WindowWidth()), int(settings.Tuning.WindowHeight))

	return ebiten.RunGame(NewGame(host))
}

func (g *Game) controls() core.Controls {
	return core.Controls{
		P1Up:   ebiten.IsKeyPressed(g.keys.P1Up),
		P1Down: ebiten.IsKeyPressed(g.keys.P1Down),
		P2Up:   ebiten.IsKeyPressed(g.keys.P2Up),
		P2Down: ebiten.IsKeyPressed(g.keys.P2Down),
		Serve:  inpututil.IsKeyJustPressed(g.keys.Serve),
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(g.keys.Quit) {
		return ebiten.Termination
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.host.Update(g.controls(), dt)
	g.animateScores(g.host.Scoreboard(), float32(dt))
	return nil
}

// animateScores starts a pop on any counter that changed and advances running pops.
func (g *Game) animateScores(board core.Scoreboard, dt float32) {
	for i := range g.scores {
		if board.Score[i] != g.scores[i] {
			g.scores[i] = board.Score[i]
			g.pops[i] = gween.New(popScale, scoreScale, popDuration, ease.OutCubic)
		}
		if g.pops[i] == nil {
			continue
		}
		scale, finished := g.pops[i].Update(dt)
		g.scale[i] = scale
		if finished {
			g.pops[i] = nil
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)

	for _, p := range []core.Player{core.PlayerOne, core.PlayerTwo} {
		g.drawBox(screen, g.host.RacketPosition(p), g.tuning.RacketWidth, g.tuning.RacketHeight)
	}
	_, ball := g.host.Ball()
	g.drawBox(screen, ball, g.tuning.BallSize, g.tuning.BallSize)

	board := g.host.Scoreboard()
	width := g.tuning.WindowWidth()
	g.drawScore(screen, 0, board.Text[0], width/4)
	g.drawScore(screen, 1, board.Text[1], width*3/4)

	if board.Over() {
		ebitenutil.DebugPrintAt(screen, board.Winner.String()+" wins", int(width/2)-30, int(g.tuning.WindowHeight)-40)
	}
}

// drawBox draws a rectangle centred on a playfield position.
func (g *Game) drawBox(screen *ebiten.Image, center core.Vec2, w, h float64) {
	x, y := g.toScreen(center)
	vector.DrawFilledRect(screen, float32(x-0.5*w), float32(y-0.5*h), float32(w), float32(h), whiteColor, false)
}

func (g *Game) drawScore(screen *ebiten.Image, i int, text string, x float64) {
	img := g.text[i]
	img.Clear()
	ebitenutil.DebugPrint(img, text)

	scale := float64(g.scale[i])
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-8, -8)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, 40)
	screen.DrawImage(img, op)
}

// toScreen flips the playfield (origin centre, y up) into screen pixels.
func (g *Game) toScreen(p core.Vec2) (float64, float64) {
	return p.X + g.tuning.HalfWidth(), g.tuning.HalfHeight() - p.Y
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.tuning.WindowWidth()), int(g.tuning.WindowHeight)
}
