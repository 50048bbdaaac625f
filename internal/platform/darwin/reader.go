//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework AppKit -framework Foundation
#include <CoreGraphics/CoreGraphics.h>
#import <AppKit/AppKit.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    unsigned int windowID;
    int pid;
    int layer;
    char *title;
    char *appName;
    char *bundleID;
} sj_window;

static char *sj_copy_string(NSString *s) {
    if (s == nil) {
        return strdup("");
    }
    const char *utf8 = [s UTF8String];
    return strdup(utf8 ? utf8 : "");
}

static int sj_list_windows(sj_window **out, int *count) {
    @autoreleasepool {
        CFArrayRef list = CGWindowListCopyWindowInfo(
            kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements,
            kCGNullWindowID);
        if (list == NULL) {
            return -1;
        }
        CFIndex n = CFArrayGetCount(list);
        sj_window *windows = calloc(n > 0 ? n : 1, sizeof(sj_window));
        NSMutableDictionary *bundles = [NSMutableDictionary dictionary];
        int k = 0;
        for (CFIndex i = 0; i < n; i++) {
            NSDictionary *info = (NSDictionary *)CFArrayGetValueAtIndex(list, i);
            NSNumber *wid = info[(id)kCGWindowNumber];
            NSNumber *pid = info[(id)kCGWindowOwnerPID];
            NSNumber *layer = info[(id)kCGWindowLayer];
            if (wid == nil || pid == nil) {
                continue;
            }
            NSString *bundleID = bundles[pid];
            if (bundleID == nil) {
                NSRunningApplication *app = [NSRunningApplication
                    runningApplicationWithProcessIdentifier:[pid intValue]];
                bundleID = app.bundleIdentifier ? app.bundleIdentifier : @"";
                bundles[pid] = bundleID;
            }
            windows[k].windowID = [wid unsignedIntValue];
            windows[k].pid = [pid intValue];
            windows[k].layer = layer ? [layer intValue] : 0;
            windows[k].title = sj_copy_string(info[(id)kCGWindowName]);
            windows[k].appName = sj_copy_string(info[(id)kCGWindowOwnerName]);
            windows[k].bundleID = sj_copy_string(bundleID);
            k++;
        }
        CFRelease(list);
        *out = windows;
        *count = k;
        return 0;
    }
}

static void sj_free_windows(sj_window *windows, int count) {
    for (int i = 0; i < count; i++) {
        free(windows[i].title);
        free(windows[i].appName);
        free(windows[i].bundleID);
    }
    free(windows);
}

static int sj_frontmost_pid(void) {
    @autoreleasepool {
        NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
        return app ? app.processIdentifier : -1;
    }
}
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/mj1618/slotjump/internal/model"
)

// listWindows returns the layer-0 windows on screen in front-to-back order.
func listWindows() ([]model.WindowRef, error) {
	var cWindows *C.sj_window
	var cCount C.int
	if C.sj_list_windows(&cWindows, &cCount) != 0 {
		return nil, fmt.Errorf("failed to enumerate windows")
	}
	defer C.sj_free_windows(cWindows, cCount)

	count := int(cCount)
	if count == 0 {
		return []model.WindowRef{}, nil
	}

	var windows []model.WindowRef
	for _, cw := range unsafe.Slice(cWindows, count) {
		// Layer 0 holds real application windows; menus, the dock and
		// overlays live on other layers.
		if int(cw.layer) != 0 {
			continue
		}
		appName := C.GoString(cw.appName)
		appID := C.GoString(cw.bundleID)
		if appID == "" {
			appID = appName
		}
		windows = append(windows, model.WindowRef{
			StableID:     model.WindowID(cw.windowID),
			OwnerAppID:   appID,
			OwnerAppName: appName,
			Title:        C.GoString(cw.title),
			PID:          int(cw.pid),
		})
	}
	return windows, nil
}

func frontmostPID() int {
	return int(C.sj_frontmost_pid())
}
