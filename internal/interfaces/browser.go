package interfaces

import (
	"context"
)

// BrowserSession is a live headless-browser tab plus the resources
// backing it. Context returns the tab context that page actions run
// against. Close releases the tab and the browser process and is safe
// to call more than once.
type BrowserSession interface {
	Context() context.Context
	Close()
}

// SessionLauncher starts a browser session, trying each configured
// engine in order until one launches. When every candidate fails the
// returned error aggregates the per-engine causes.
type SessionLauncher interface {
	Launch(ctx context.Context) (BrowserSession, error)
}
