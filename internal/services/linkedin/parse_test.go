package linkedin

import (
	"testing"
)

const searchPageFixture = `
<html><body>
<ul>
  <li class="reusable-search__result-container">
    <span class="entity-result__title-text"><a href="/in/jane-smith?miniProfileUrn=urn%3Ali%3Afs_miniProfile%3AABC">Jane Smith</a></span>
    <div class="entity-result__primary-subtitle">Marketing Director</div>
    <div class="entity-result__secondary-subtitle">Northwind Traders</div>
    <div>Austin, Texas, United States</div>
  </li>
  <li class="reusable-search__result-container">
    <span class="entity-result__title-text"><a href="https://www.linkedin.com/in/john-doe">John Doe</a></span>
    <div class="entity-result__primary-subtitle">VP of Sales</div>
    <div class="entity-result__secondary-subtitle">Contoso</div>
    <div>Seattle, Washington, United States</div>
  </li>
  <li class="reusable-search__result-container">
    <span class="entity-result__title-text"></span>
    <div class="entity-result__primary-subtitle"> </div>
  </li>
</ul>
</body></html>`

func TestParseResultCards(t *testing.T) {
	profiles, err := parseResultCards(searchPageFixture)
	if err != nil {
		t.Fatalf("parseResultCards failed: %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("Expected 3 cards, got %d", len(profiles))
	}

	first := profiles[0]
	if first.FullName != "Jane Smith" {
		t.Errorf("Expected name Jane Smith, got %q", first.FullName)
	}
	if first.ProfileURL != "https://www.linkedin.com/in/jane-smith" {
		t.Errorf("Expected tracking query stripped and href absolutized, got %q", first.ProfileURL)
	}
	if first.JobTitle != "Marketing Director" {
		t.Errorf("Expected job title, got %q", first.JobTitle)
	}
	if first.CompanyName != "Northwind Traders" {
		t.Errorf("Expected company from secondary subtitle, got %q", first.CompanyName)
	}
	if first.Location != "Austin, Texas, United States" {
		t.Errorf("Expected location from sibling block, got %q", first.Location)
	}

	second := profiles[1]
	if second.ProfileURL != "https://www.linkedin.com/in/john-doe" {
		t.Errorf("Expected absolute href kept as-is, got %q", second.ProfileURL)
	}

	third := profiles[2]
	if third.FullName != "Unknown" || third.JobTitle != "Unknown" || third.CompanyName != "Unknown" || third.Location != "Unknown" {
		t.Errorf("Expected missing fields to default to Unknown, got %+v", third)
	}
	if third.ProfileURL != "" {
		t.Errorf("Expected empty profile URL for card without link, got %q", third.ProfileURL)
	}
}

func TestParseResultCardsEmptyPage(t *testing.T) {
	profiles, err := parseResultCards("<html><body><p>No results found</p></body></html>")
	if err != nil {
		t.Fatalf("parseResultCards failed: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("Expected no profiles, got %d", len(profiles))
	}
}
