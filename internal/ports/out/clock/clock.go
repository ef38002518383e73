package clock

import "time"

// Clock supplies "now" for createdAt/requestedAt stamps and the tracking countdown.
type Clock interface {
	Now() time.Time
}
