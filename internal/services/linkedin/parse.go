package linkedin

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/indago/internal/models"
)

// Result-card selectors for the people-search page.
const (
	selResultCard        = ".reusable-search__result-container"
	selNameLink          = ".entity-result__title-text a"
	selPrimarySubtitle   = ".entity-result__primary-subtitle"
	selSecondarySubtitle = ".entity-result__secondary-subtitle"
	selLocationBlock     = ".entity-result__secondary-subtitle + div"
)

// parseResultCards extracts candidate profiles from a rendered search
// results page. Fields that cannot be located default to "Unknown";
// one unreadable card never aborts the page.
func parseResultCards(html string) ([]models.CandidateProfile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var profiles []models.CandidateProfile
	doc.Find(selResultCard).Each(func(_ int, card *goquery.Selection) {
		profiles = append(profiles, parseCard(card))
	})
	return profiles, nil
}

func parseCard(card *goquery.Selection) models.CandidateProfile {
	nameLink := card.Find(selNameLink).First()
	href, _ := nameLink.Attr("href")

	return models.CandidateProfile{
		FullName:    textOrUnknown(nameLink),
		JobTitle:    textOrUnknown(card.Find(selPrimarySubtitle).First()),
		CompanyName: textOrUnknown(card.Find(selSecondarySubtitle).First()),
		Location:    textOrUnknown(card.Find(selLocationBlock).First()),
		ProfileURL:  normalizeProfileURL(href),
	}
}

// normalizeProfileURL strips tracking parameters and absolutizes
// relative hrefs. The result is the deduplication key for a job, so
// the same profile reached via different tracking URLs collapses to
// one record.
func normalizeProfileURL(href string) string {
	if href == "" {
		return ""
	}
	if i := strings.IndexByte(href, '?'); i >= 0 {
		href = href[:i]
	}
	if !strings.HasPrefix(href, "http") {
		href = "https://www.linkedin.com" + href
	}
	return href
}

func textOrUnknown(sel *goquery.Selection) string {
	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return "Unknown"
	}
	return text
}
