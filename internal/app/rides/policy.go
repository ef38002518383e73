package rides

// DefaultAutoAcceptDriver is the demo driver whose requests are accepted on creation.
const DefaultAutoAcceptDriver = "MoCheddar67"

// AutoAcceptPolicy reports whether requests against rides by driverName bypass
// manual acceptance.
type AutoAcceptPolicy func(driverName string) bool

// AutoAcceptDrivers matches driver names exactly. With no names it never matches.
func AutoAcceptDrivers(names ...string) AutoAcceptPolicy {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(driverName string) bool {
		_, ok := set[driverName]
		return ok
	}
}
