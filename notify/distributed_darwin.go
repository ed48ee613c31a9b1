//go:build darwin && cgo

package notify

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework Foundation
#import <Foundation/Foundation.h>
#include <math.h>
#include <stdint.h>
#include <stdlib.h>

extern void goPlayerInfo(uintptr_t handle, char *data, int length);

static volatile int observing;

// plainInfo keeps the string keyed, string or number valued entries, which
// is all a playerInfo consumer reads and all JSON can carry.
static NSDictionary *plainInfo(NSDictionary *info) {
	NSMutableDictionary *out = [NSMutableDictionary dictionaryWithCapacity:info.count];
	[info enumerateKeysAndObjectsUsingBlock:^(id key, id value, BOOL *stop) {
		if (![key isKindOfClass:[NSString class]]) {
			return;
		}
		if ([value isKindOfClass:[NSString class]]) {
			out[key] = value;
		} else if ([value isKindOfClass:[NSNumber class]] && isfinite([value doubleValue])) {
			out[key] = value;
		}
	}];
	return out;
}

static void beginObserving(void) {
	observing = 1;
}

static void stopObserving(void) {
	observing = 0;
}

static void observe(const char *name, uintptr_t handle) {
	NSDistributedNotificationCenter *center = [NSDistributedNotificationCenter defaultCenter];
	id token;
	@autoreleasepool {
		NSString *channel = [NSString stringWithUTF8String:name];
		token = [center addObserverForName:channel object:nil queue:nil usingBlock:^(NSNotification *note) {
			@autoreleasepool {
				NSDictionary *info = plainInfo(note.userInfo ?: @{});
				NSData *data = [NSJSONSerialization dataWithJSONObject:info options:0 error:nil];
				if (data != nil) {
					goPlayerInfo(handle, (char *)data.bytes, (int)data.length);
				}
			}
		}];
	}

	// The port keeps runMode from returning at once when nothing else is
	// scheduled on this run loop.
	NSRunLoop *loop = [NSRunLoop currentRunLoop];
	[loop addPort:[NSMachPort port] forMode:NSDefaultRunLoopMode];
	while (observing) {
		@autoreleasepool {
			[loop runMode:NSDefaultRunLoopMode beforeDate:[NSDate dateWithTimeIntervalSinceNow:0.5]];
		}
	}
	[center removeObserver:token];
}
*/
import "C"

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"runtime"
	"runtime/cgo"
	"unsafe"

	"go-music-notify/track"
)

// The distributed notification center delivers on the main run loop, so
// the main goroutine stays on the main thread for Serve.
func init() {
	runtime.LockOSThread()
}

type distributed struct {
	name   string
	events chan track.Payload
	stop   chan struct{}
}

// Distributed subscribes to the distributed notification name. Serve must
// be called from the main goroutine, and only one subscription may be
// served at a time.
func Distributed(name string) (Subscription, error) {
	return &distributed{
		name:   name,
		events: make(chan track.Payload, 64),
		stop:   make(chan struct{}),
	}, nil
}

func (d *distributed) Events() <-chan track.Payload {
	return d.events
}

func (d *distributed) Serve(ctx context.Context) error {
	defer close(d.events)

	h := cgo.NewHandle(d)
	defer h.Delete()

	name := C.CString(d.name)
	defer C.free(unsafe.Pointer(name))

	C.beginObserving()
	go func() {
		<-ctx.Done()
		C.stopObserving()
		close(d.stop)
	}()

	C.observe(name, C.uintptr_t(h))
	return nil
}

// deliver runs on the run loop thread. It blocks while the handler is busy
// so that no event is dropped or reordered.
func (d *distributed) deliver(data []byte) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var p track.Payload
	if err := dec.Decode(&p); err != nil {
		log.Printf("⚠️  Dropping unreadable %s notification: %v", d.name, err)
		return
	}

	select {
	case d.events <- p:
	case <-d.stop:
	}
}
