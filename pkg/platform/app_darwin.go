//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework AppKit
#import <Cocoa/Cocoa.h>
#import <AppKit/AppKit.h>

static void useAccessoryPolicy(void) {
    [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
}

static int appIsActive(void) {
    return [NSApp isActive] ? 1 : 0;
}

static void bringAppToFront(void) {
    [NSApp activateIgnoringOtherApps:YES];
}
*/
import "C"
import "log"

// SetActivationPolicy hides the dock icon so the app lives in the menu bar only
func SetActivationPolicy() {
	log.Println("Setting accessory activation policy")
	C.useAccessoryPolicy()
}

// IsAppActive reports whether the app currently has focus
func IsAppActive() bool {
	return C.appIsActive() == 1
}

// ActivateApp brings the app, and so the break overlay, to the front
func ActivateApp() {
	C.bringAppToFront()
}
