// Package msaa announces focus changes through Microsoft Active
// Accessibility: it tags the host's top-level window with the announcement
// text via IAccPropServices dynamic annotation, then fires an
// EVENT_OBJECT_FOCUS so screen readers re-read the name.
//
// The implementation is Windows-only. On other platforms the package is
// empty and importing it registers nothing.
package msaa
