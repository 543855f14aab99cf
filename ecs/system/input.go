package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

// InputSource samples the device state once per tick.
type InputSource interface {
	Sample() component.Input
}

// EbitenInput reads keyboard, mouse and the first standard gamepad.
type EbitenInput struct {
	lastCursorX int
	primed      bool
	// MouseSensitivity scales cursor pixels into turn input.
	MouseSensitivity float64
}

func NewEbitenInput() *EbitenInput {
	return &EbitenInput{MouseSensitivity: 0.1}
}

func (src *EbitenInput) Sample() component.Input {
	const stickDeadzone = 0.2

	var in component.Input

	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveForward += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveForward -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveRight += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveRight -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		in.Turn -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		in.Turn += 1
	}

	cx, _ := ebiten.CursorPosition()
	if src.primed && ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		in.Turn += float64(cx-src.lastCursorX) * src.MouseSensitivity
	}
	src.lastCursorX = cx
	src.primed = true

	in.SprintHeld = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	in.PrimaryHeld = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.PrimaryPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.PrimaryReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	in.QuickSavePressed = inpututil.IsKeyJustPressed(ebiten.KeyF5)
	in.QuickLoadPressed = inpututil.IsKeyJustPressed(ebiten.KeyF9)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			in.MoveRight = lx
			in.MoveForward = -ly
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		if math.Abs(rx) > stickDeadzone {
			in.Turn = rx
		}

		in.SprintHeld = in.SprintHeld || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)
		in.PrimaryHeld = in.PrimaryHeld || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightLeft)
		in.PrimaryPressed = in.PrimaryPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		in.PrimaryReleased = in.PrimaryReleased || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonRightLeft)
		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.PausePressed = in.PausePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	return in
}

// InputSystem copies one sample into every Input component.
type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.source == nil {
		return
	}

	sample := i.source.Sample()
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = sample
	})
}
