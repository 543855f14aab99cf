package main

import (
	"errors"
	"fmt"
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sagivt1/Adventure-arcade-game/ecs/system"
)

var (
	menuPanelColor  = color.NRGBA{A: 200}
	menuButtonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	menuHoverColor  = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	menuTextColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	menuStatusColor = color.NRGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}
)

// pauseMenu is the centered Resume/Save/Load/Quit panel shown while the
// simulation is paused. status shows the active slot and level.
type pauseMenu struct {
	ui     *ebitenui.UI
	status *widget.Text
}

func newPauseMenu(g *Game) *pauseMenu {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	m := &pauseMenu{
		status: widget.NewText(
			widget.TextOpts.Text("", &face, menuStatusColor),
			widget.TextOpts.WidgetOpts(centered),
		),
	}

	buttonImage := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(menuButtonColor),
		Hover:   imageui.NewNineSliceColor(menuHoverColor),
		Pressed: imageui.NewNineSliceColor(menuButtonColor),
	}
	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(buttonImage),
			widget.ButtonOpts.Text(label, &face, &widget.ButtonTextColor{Idle: menuTextColor}),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true})),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(menuPanelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(g.cfg.WindowW/4, g.cfg.WindowH/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Paused", &face, menuTextColor),
		widget.TextOpts.WidgetOpts(centered),
	))
	panel.AddChild(m.status)
	panel.AddChild(button("Resume", func() { g.setPaused(false) }))
	panel.AddChild(button("Save", func() {
		switch err := g.requestSave(); {
		case err == nil:
			m.status.Label = fmt.Sprintf("Saved to %q", g.persistence.Slot())
		case errors.Is(err, system.ErrPlayerDead):
			m.status.Label = "Cannot save while dead"
		default:
			m.status.Label = "Save failed"
		}
	}))
	panel.AddChild(button("Load", g.requestLoad))
	panel.AddChild(button("Quit", func() { g.quit = true }))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	m.ui = &ebitenui.UI{Container: root}
	return m
}

// open refreshes the status line; called whenever the game pauses.
func (m *pauseMenu) open(slot, level string) {
	m.status.Label = fmt.Sprintf("Slot %q, level %s", slot, level)
}

func (m *pauseMenu) Update() {
	m.ui.Update()
}

func (m *pauseMenu) Draw(screen *ebiten.Image) {
	m.ui.Draw(screen)
}
