// Package bongo provides the public API for embedding the go-bongo overlay:
// a Bongo Cat window whose paws follow the keyboard.
//
// # Basic Usage
//
//	b, err := bongo.New("/path/to/config.yaml", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := b.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// # Configuration Sources
//
//   - Disk file: Use [New] to load from a filesystem path
//   - Embedded FS: Use [NewFromFS] to load from an [io/fs.FS]
//   - io.Reader: Use [NewFromReader] for YAML, JSON or Lua content
//
// # Window Decoration
//
// On X11 the window is clipped to the opaque pixels of the mask image when
// decoration.transparent is set, and its _NET_WM_WINDOW_OPACITY is set from
// decoration.opacity. With decoration.skip_taskbar and skip_pager the window
// manager is asked to keep the window off the taskbar and pager. These
// steps run once, after the window is mapped. [Bongo.WriteMask] dumps the
// clip region as a PBM image.
// Failures are logged and leave the window undecorated; they never stop
// the overlay. Status reports which steps succeeded.
//
// # Error Handling
//
// Runtime errors are reported through [ErrorHandler]:
//
//	b.SetErrorHandler(func(err error) {
//		log.Printf("bongo error: %v", err)
//	})
//
// The handler is called asynchronously; do not block in the handler.
package bongo
