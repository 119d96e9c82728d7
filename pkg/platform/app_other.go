//go:build !darwin

package platform

// SetActivationPolicy is a no-op outside macOS; the tray-only app already
// has no dock entry there
func SetActivationPolicy() {}

// IsAppActive always reports true outside macOS, where the full-screen
// overlay is kept on top by the window manager
func IsAppActive() bool {
	return true
}

// ActivateApp is a no-op outside macOS
func ActivateApp() {}
