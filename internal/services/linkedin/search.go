package linkedin

import (
	"context"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
)

const searchBaseURL = "https://www.linkedin.com/search/results/people/"

// BuildSearchURL assembles the people-search URL: roles joined with
// " OR " as keywords, locations the same way as the geo filter.
func BuildSearchURL(query models.StructuredQuery) string {
	searchURL := searchBaseURL + "?keywords=" + url.QueryEscape(strings.Join(query.Roles, " OR "))
	if len(query.Locations) > 0 {
		searchURL += "&geoUrn=" + url.QueryEscape(strings.Join(query.Locations, " OR "))
	}
	return searchURL
}

// maxSearchPages bounds the pagination walk: one page per ten
// requested results plus one, never more than five.
func maxSearchPages(maxResults int) int {
	pages := maxResults/10 + 1
	if pages > 5 {
		pages = 5
	}
	return pages
}

// Extractor walks paginated people-search results in an authenticated
// session and returns scored, filtered, deduplicated profiles.
type Extractor struct {
	config *common.ScraperConfig
	logger arbor.ILogger

	// chromedp seams, swapped by tests to run against fixture HTML
	navigate  func(tabCtx context.Context, pageURL string) error
	pageHTML  func(tabCtx context.Context) (string, error)
	clickNext func(tabCtx context.Context) (bool, error)
}

// NewExtractor creates a search extractor
func NewExtractor(config *common.ScraperConfig, logger arbor.ILogger) *Extractor {
	e := &Extractor{
		config: config,
		logger: logger,
	}
	e.navigate = e.chromedpNavigate
	e.pageHTML = e.chromedpPageHTML
	e.clickNext = e.chromedpClickNext
	return e
}

var _ interfaces.LeadExtractor = (*Extractor)(nil)

// Search collects profiles until the result cap, the page cap or the
// end of pagination, whichever comes first. Failures degrade: whatever
// was collected before the problem is returned.
func (e *Extractor) Search(ctx context.Context, session interfaces.BrowserSession, query models.StructuredQuery, maxResults int) []models.CandidateProfile {
	if maxResults <= 0 {
		maxResults = e.config.DefaultMaxResults
	}
	if maxResults <= 0 {
		maxResults = 50
	}

	tabCtx := session.Context()
	searchURL := BuildSearchURL(query)

	var profiles []models.CandidateProfile
	seen := make(map[string]bool)

	if err := e.navigate(tabCtx, searchURL); err != nil {
		e.logger.Warn().Err(err).Str("url", searchURL).Msg("Search navigation failed")
		return profiles
	}

	maxPages := maxSearchPages(maxResults)
	for page := 0; page < maxPages && len(profiles) < maxResults; {
		html, err := e.pageHTML(tabCtx)
		if err != nil {
			e.logger.Warn().Err(err).Int("page", page+1).Msg("Failed to read results page, stopping walk")
			break
		}

		cards, err := parseResultCards(html)
		if err != nil {
			e.logger.Warn().Err(err).Int("page", page+1).Msg("Failed to parse results page, stopping walk")
			break
		}

		added := 0
		for i := range cards {
			if len(profiles) >= maxResults {
				break
			}
			profile := cards[i]
			if profile.ProfileURL != "" && seen[profile.ProfileURL] {
				continue
			}

			scoreProfile(&profile)
			if !matchesCriteria(&profile, query) {
				continue
			}

			if profile.ProfileURL != "" {
				seen[profile.ProfileURL] = true
			}
			profile.ScrapedAt = time.Now()
			profiles = append(profiles, profile)
			added++
		}

		e.logger.Debug().
			Int("page", page+1).
			Int("cards", len(cards)).
			Int("added", added).
			Int("total", len(profiles)).
			Msg("Results page extracted")

		page++
		if page >= maxPages || len(profiles) >= maxResults {
			break
		}

		hasNext, err := e.clickNext(tabCtx)
		if err != nil {
			e.logger.Debug().Err(err).Msg("Pagination ended on error")
			break
		}
		if !hasNext {
			break
		}

		select {
		case <-ctx.Done():
			return profiles
		case <-time.After(e.pageDelay()):
		}
	}

	return profiles
}

func (e *Extractor) chromedpNavigate(tabCtx context.Context, pageURL string) error {
	runCtx, cancel := e.boundedContext(tabCtx)
	defer cancel()
	return chromedp.Run(runCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(e.config.SettleWait),
	)
}

func (e *Extractor) chromedpPageHTML(tabCtx context.Context) (string, error) {
	runCtx, cancel := e.boundedContext(tabCtx)
	defer cancel()

	var html string
	err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &html))
	return html, err
}

// chromedpClickNext advances pagination. A missing next button is the
// normal end of results, not an error.
func (e *Extractor) chromedpClickNext(tabCtx context.Context) (bool, error) {
	runCtx, cancel := e.boundedContext(tabCtx)
	defer cancel()

	var exists bool
	err := chromedp.Run(runCtx,
		chromedp.Evaluate(`document.querySelector('button[aria-label="Next"]') !== null`, &exists),
	)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	err = chromedp.Run(runCtx,
		chromedp.Click(`button[aria-label="Next"]`, chromedp.ByQuery),
		chromedp.Sleep(e.config.SettleWait),
	)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (e *Extractor) boundedContext(tabCtx context.Context) (context.Context, context.CancelFunc) {
	timeout := e.config.NavigationTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(tabCtx, timeout)
}

// pageDelay returns a randomized pause between result pages.
func (e *Extractor) pageDelay() time.Duration {
	min := e.config.MinPageDelay
	max := e.config.MaxPageDelay
	if min <= 0 {
		min = 2 * time.Second
	}
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
