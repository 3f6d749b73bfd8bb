// Command flashlight takes a screenshot of the desktop and shows it full
// screen, where it can be zoomed with the wheel, panned by dragging, and
// dimmed outside a spotlight that follows the cursor.
//
// Controls:
//
//	wheel          zoom
//	Ctrl + wheel   spotlight radius
//	left drag      pan
//	F              toggle spotlight
//	R              reset zoom and pan
//	Esc            quit
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
)

func init() {
	// GLFW and the native surface must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "flashlight:", err)
		os.Exit(1)
	}
}
