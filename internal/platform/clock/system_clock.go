package clock

import (
	"time"

	clockport "github.com/campus-rideshare/ride-core/internal/ports/out/clock"
)

var _ clockport.Clock = SystemClock{}

// SystemClock stamps rides and requests with the wall clock in UTC.
type SystemClock struct{}

func NewSystemClock() SystemClock { return SystemClock{} }

func (SystemClock) Now() time.Time { return time.Now().UTC() }
