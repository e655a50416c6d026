package linkedin

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
)

const (
	loginURL = "https://www.linkedin.com/login"
	feedURL  = "https://www.linkedin.com/feed/"
)

// Authenticator logs a browser session into LinkedIn, preferring a
// stored session cookie and falling back to the login form.
type Authenticator struct {
	config *common.ScraperConfig
	logger arbor.ILogger
}

// NewAuthenticator creates a LinkedIn authenticator
func NewAuthenticator(config *common.ScraperConfig, logger arbor.ILogger) *Authenticator {
	return &Authenticator{
		config: config,
		logger: logger,
	}
}

var _ interfaces.Authenticator = (*Authenticator)(nil)

// Login authenticates the session. A false return without error means
// LinkedIn rejected the attempt (wrong credentials or a checkpoint
// page); errors are reserved for mechanical failures.
func (a *Authenticator) Login(ctx context.Context, session interfaces.BrowserSession, creds *models.Credentials) (bool, error) {
	if creds.SessionCookie != "" {
		ok, err := a.loginWithCookie(ctx, session, creds.SessionCookie)
		if err != nil {
			a.logger.Warn().Err(err).Msg("Session cookie login failed, falling back to form login")
		} else if ok {
			a.logger.Info().Msg("LinkedIn login successful via session cookie")
			return true, nil
		} else {
			a.logger.Warn().Msg("Session cookie rejected, falling back to form login")
		}
	}

	if !creds.HasLinkedInLogin() {
		return false, fmt.Errorf("no LinkedIn credentials configured")
	}
	return a.loginWithForm(ctx, session, creds)
}

// loginWithCookie injects the li_at session cookie and verifies it by
// loading the feed.
func (a *Authenticator) loginWithCookie(ctx context.Context, session interfaces.BrowserSession, cookie string) (bool, error) {
	tabCtx, cancel := a.tabContext(ctx, session)
	defer cancel()

	err := chromedp.Run(tabCtx,
		network.Enable(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return network.SetCookie("li_at", cookie).
				WithDomain(".linkedin.com").
				WithPath("/").
				WithSecure(true).
				WithHTTPOnly(true).
				Do(ctx)
		}),
	)
	if err != nil {
		return false, fmt.Errorf("failed to inject session cookie: %w", err)
	}

	var currentURL string
	err = chromedp.Run(tabCtx,
		chromedp.Navigate(feedURL),
		chromedp.Sleep(a.config.SettleWait),
		chromedp.Location(&currentURL),
	)
	if err != nil {
		return false, fmt.Errorf("feed verification failed: %w", err)
	}

	return isLoggedInURL(currentURL), nil
}

// loginWithForm fills and submits the login form the way a user would,
// with a randomized pause before submitting.
func (a *Authenticator) loginWithForm(ctx context.Context, session interfaces.BrowserSession, creds *models.Credentials) (bool, error) {
	tabCtx, cancel := a.tabContext(ctx, session)
	defer cancel()

	var currentURL string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(loginURL),
		chromedp.WaitVisible("#username", chromedp.ByQuery),
		chromedp.SendKeys("#username", creds.LinkedInEmail, chromedp.ByQuery),
		chromedp.SendKeys("#password", creds.LinkedInPassword, chromedp.ByQuery),
		chromedp.Sleep(a.loginDelay()),
		chromedp.Click(`button[type="submit"]`, chromedp.ByQuery),
		chromedp.Sleep(a.config.SettleWait),
		chromedp.Location(&currentURL),
	)
	if err != nil {
		return false, fmt.Errorf("login navigation failed: %w", err)
	}

	if !isLoggedInURL(currentURL) {
		a.logger.Warn().Str("url", currentURL).Msg("LinkedIn login rejected")
		return false, nil
	}

	a.logger.Info().Msg("LinkedIn login successful")
	return true, nil
}

// tabContext bounds browser actions by both the caller's deadline and
// the configured navigation timeout.
func (a *Authenticator) tabContext(ctx context.Context, session interfaces.BrowserSession) (context.Context, context.CancelFunc) {
	timeout := a.config.NavigationTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	tabCtx := session.Context()
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	return context.WithTimeout(tabCtx, timeout)
}

// loginDelay returns a randomized pause within the configured bounds.
func (a *Authenticator) loginDelay() time.Duration {
	min := a.config.MinLoginDelay
	max := a.config.MaxLoginDelay
	if min <= 0 {
		min = time.Second
	}
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}

// isLoggedInURL reports whether the current URL carries a signed-in
// marker: the feed, or a profile path segment.
func isLoggedInURL(url string) bool {
	return strings.Contains(url, "feed") || strings.Contains(url, "in/")
}
