//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework ApplicationServices -framework CoreFoundation -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#import <AppKit/AppKit.h>
#include <stdlib.h>

// Private but long-stable: maps an AX window element to its CGWindowID.
extern AXError _AXUIElementGetWindow(AXUIElementRef element, CGWindowID *out);

static int sj_title_equals(AXUIElementRef w, const char *title) {
    CFTypeRef value = NULL;
    if (AXUIElementCopyAttributeValue(w, kAXTitleAttribute, &value) != kAXErrorSuccess || value == NULL) {
        return 0;
    }
    int eq = 0;
    if (CFGetTypeID(value) == CFStringGetTypeID()) {
        eq = [(NSString *)value isEqualToString:[NSString stringWithUTF8String:title]];
    }
    CFRelease(value);
    return eq;
}

// Returns 0 when the window was raised, 1 when only the app was activated,
// -1 when the process is gone.
static int sj_activate_window(int pid, unsigned int windowID, const char *title) {
    @autoreleasepool {
        NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
        if (app == nil) {
            return -1;
        }
        [app activateWithOptions:NSApplicationActivateIgnoringOtherApps];

        AXUIElementRef axApp = AXUIElementCreateApplication(pid);
        CFArrayRef windows = NULL;
        if (AXUIElementCopyAttributeValue(axApp, kAXWindowsAttribute, (CFTypeRef *)&windows) != kAXErrorSuccess || windows == NULL) {
            CFRelease(axApp);
            return 1;
        }
        int rc = 1;
        for (CFIndex i = 0; i < CFArrayGetCount(windows); i++) {
            AXUIElementRef w = (AXUIElementRef)CFArrayGetValueAtIndex(windows, i);
            CGWindowID wid = 0;
            int match = 0;
            if (windowID != 0 && _AXUIElementGetWindow(w, &wid) == kAXErrorSuccess) {
                match = wid == windowID;
            } else if (title != NULL) {
                match = sj_title_equals(w, title);
            }
            if (match) {
                AXUIElementPerformAction(w, kAXRaiseAction);
                AXUIElementSetAttributeValue(w, kAXMainAttribute, kCFBooleanTrue);
                rc = 0;
                break;
            }
        }
        CFRelease(windows);
        CFRelease(axApp);
        return rc;
    }
}
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/mj1618/slotjump/internal/model"
)

// WindowManager implements platform.WindowManager with CoreGraphics window
// lists and the Accessibility API.
type WindowManager struct{}

// NewWindowManager creates a new macOS window manager.
func NewWindowManager() *WindowManager {
	return &WindowManager{}
}

func (wm *WindowManager) ListWindows() ([]model.WindowRef, error) {
	return listWindows()
}

// FocusedWindow reports the frontmost window of the frontmost application.
func (wm *WindowManager) FocusedWindow() (*model.WindowRef, error) {
	pid := frontmostPID()
	if pid < 0 {
		return nil, nil
	}
	windows, err := listWindows()
	if err != nil {
		return nil, err
	}
	for _, w := range windows {
		if w.PID == pid {
			return &w, nil
		}
	}
	return nil, nil
}

func (wm *WindowManager) ActivateWindow(w model.WindowRef) error {
	if w.PID == 0 {
		return fmt.Errorf("activate %s: no process id", w)
	}
	if err := CheckAccessibilityPermission(); err != nil {
		return err
	}
	cTitle := C.CString(w.Title)
	defer C.free(unsafe.Pointer(cTitle))

	switch C.sj_activate_window(C.int(w.PID), C.uint(w.StableID), cTitle) {
	case 0:
		return nil
	case -1:
		return fmt.Errorf("activate %s: process %d is not running", w, w.PID)
	default:
		return fmt.Errorf("activate %s: application activated but window not found", w)
	}
}
