package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock supplies the current time. Episode math depends on "now", so the
// clock is injected rather than read from time.Now directly.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func NewSystemClock() Clock { return systemClock{} }

var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)
