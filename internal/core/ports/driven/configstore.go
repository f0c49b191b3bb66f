package driven

// ConfigStore persists flat settings addressed by dotted keys such as
// "match.hook_radius_m". Values keep the type the backend decoded them as;
// callers coerce.
type ConfigStore interface {
	// Lookup returns the raw value stored under key.
	Lookup(key string) (any, bool)

	// Set stores value under key and persists it.
	Set(key string, value any) error

	// Unset removes key. Removing a missing key is not an error.
	Unset(key string) error

	// Path describes where settings live.
	Path() string
}
