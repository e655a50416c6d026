package browser

import (
	"context"
	"sync"

	"github.com/ternarybob/arbor"
)

// Session owns one headless browser process and the tab context page
// actions run against. Closing cancels the tab before the allocator so
// the browser process always goes down with it.
type Session struct {
	engine      string
	tabCtx      context.Context
	tabCancel   context.CancelFunc
	allocCancel context.CancelFunc
	closeOnce   sync.Once
	logger      arbor.ILogger
}

// Context returns the tab context for chromedp actions
func (s *Session) Context() context.Context {
	return s.tabCtx
}

// Engine returns the name of the launched engine
func (s *Session) Engine() string {
	return s.engine
}

// Close releases the tab and the browser process. Safe to call more
// than once; later calls are no-ops.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.tabCancel != nil {
			s.tabCancel()
		}
		if s.allocCancel != nil {
			s.allocCancel()
		}
		if s.logger != nil {
			s.logger.Debug().Str("engine", s.engine).Msg("Browser session closed")
		}
	})
}
