//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework Foundation
#import <AppKit/AppKit.h>
#include <stdlib.h>
#include <string.h>

static int sj_app_icon_png(const char *bundleID, unsigned char **out, int *length) {
    @autoreleasepool {
        NSString *ident = [NSString stringWithUTF8String:bundleID];
        NSURL *url = [[NSWorkspace sharedWorkspace] URLForApplicationWithBundleIdentifier:ident];
        if (url == nil) {
            return -1;
        }
        NSImage *image = [[NSWorkspace sharedWorkspace] iconForFile:[url path]];
        if (image == nil) {
            return -1;
        }
        NSData *tiff = [image TIFFRepresentation];
        NSBitmapImageRep *rep = [NSBitmapImageRep imageRepWithData:tiff];
        if (rep == nil) {
            return -2;
        }
        NSData *png = [rep representationUsingType:NSBitmapImageFileTypePNG properties:@{}];
        if (png == nil || [png length] == 0) {
            return -2;
        }
        *length = (int)[png length];
        *out = malloc(*length);
        memcpy(*out, [png bytes], *length);
        return 0;
    }
}
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/mj1618/slotjump/internal/platform"
)

// IconProvider renders application icons from the app bundle via NSWorkspace.
type IconProvider struct{}

// AppIcon returns the PNG-encoded icon of the application with the given
// bundle identifier.
func (IconProvider) AppIcon(appID string) ([]byte, error) {
	cID := C.CString(appID)
	defer C.free(unsafe.Pointer(cID))

	var buf *C.uchar
	var n C.int
	switch C.sj_app_icon_png(cID, &buf, &n) {
	case 0:
	case -1:
		return nil, fmt.Errorf("%s: %w", appID, platform.ErrNoIcon)
	default:
		return nil, fmt.Errorf("%s: failed to encode icon", appID)
	}
	defer C.free(unsafe.Pointer(buf))
	return C.GoBytes(unsafe.Pointer(buf), n), nil
}
