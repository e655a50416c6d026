package parser

import "fmt"

// buildPrompt wraps the user's free-text request in the extraction
// instructions every provider receives. The example output anchors the
// field names the decoder expects.
func buildPrompt(query string) string {
	return fmt.Sprintf(`Parse this natural language query for LinkedIn lead generation into structured parameters.
Query: "%s"

Extract and return JSON with these fields:
- roles: List of job titles/roles to search for
- locations: List of geographic locations
- company_size_min: Minimum company size (number of employees)
- company_size_max: Maximum company size (number of employees)
- industries: List of industry names
- seniority_levels: List of seniority levels (manager, director, vp, etc.)

Example output:
{
    "roles": ["Vendor Manager", "Head of Digital Transformation"],
    "locations": ["United States", "US"],
    "company_size_min": 500,
    "company_size_max": null,
    "industries": [],
    "seniority_levels": ["Manager", "Head"]
}`, query)
}
