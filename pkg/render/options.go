package render

// Options carry per-call data renderers can use without mutating the screen.
type Options struct {
	// Title is printed above the first node when set.
	Title string
	// Locale selects translated chrome such as the required marker.
	Locale string
	// Theme and Variant pick a theme when the renderer was built with a
	// selector; empty values fall back to the renderer defaults.
	Theme   string
	Variant string
}
