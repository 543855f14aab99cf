package component

import "github.com/sagivt1/Adventure-arcade-game/common"

// Platform shuttles between two points, dwelling InterpTime seconds at each
// end.
type Platform struct {
	Start       common.Vec3
	End         common.Vec3
	InterpSpeed float64
	InterpTime  float64

	Interping bool
	Timer     float64
	Distance  float64
}

// NewPlatform builds a platform at start whose end point is offset relative
// to start.
func NewPlatform(start, offset common.Vec3, interpSpeed, interpTime float64) *Platform {
	if interpSpeed <= 0 {
		interpSpeed = 4
	}
	if interpTime < 0 {
		interpTime = 0
	}
	end := start.Add(offset)
	return &Platform{
		Start:       start,
		End:         end,
		InterpSpeed: interpSpeed,
		InterpTime:  interpTime,
		Timer:       interpTime,
		Distance:    end.Sub(start).Len(),
	}
}

// Swap reverses direction.
func (p *Platform) Swap() {
	if p == nil {
		return
	}
	p.Start, p.End = p.End, p.Start
}

var PlatformComponent = NewComponent[Platform]()
