// Package darwin provides macOS platform support: CoreGraphics window lists,
// Accessibility raising, NSWorkspace icons and a CGEventTap key stream.
// All functionality requires CGo (Objective-C frameworks).
// On other platforms, or when CGo is disabled, the package is empty.
package darwin
