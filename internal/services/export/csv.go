package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/ternarybob/indago/internal/models"
)

// profileRow flattens a profile into export column order
func profileRow(p *models.CandidateProfile) []string {
	return []string{
		p.FullName,
		p.JobTitle,
		p.CompanyName,
		p.CompanyWebsite,
		p.ProfileURL,
		p.Email,
		p.Phone,
		p.Industry,
		p.Location,
		p.CompanySize,
		p.SeniorityLevel,
		strconv.FormatBool(p.DecisionMaker),
		strconv.FormatFloat(p.EngagementScore, 'f', 1, 64),
	}
}

func writeCSV(profiles []models.CandidateProfile) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}
	for i := range profiles {
		if err := w.Write(profileRow(&profiles[i])); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
