package core

// DebugMode controls whether framework faults carry full stack traces in
// their reports. Disable in production builds if trace capture shows up in
// profiles.
var DebugMode = true

// SetDebugMode enables or disables debug mode for the framework.
func SetDebugMode(debug bool) {
	DebugMode = debug
}
