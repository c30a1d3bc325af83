package retrieve

import "github.com/coolbeans/lexground/pkg/corpus"

// Jurisdiction carries the court recommendation for filing a petition.
type Jurisdiction struct {
	SupremeCourt string `json:"supreme_court"`
	HighCourt    string `json:"high_court"`
	Recommended  string `json:"recommended"`
	LegalGrounds string `json:"legal_grounds"`
}

// supremeCourtTopics are escalated straight to the Supreme Court.
var supremeCourtTopics = map[string]bool{
	"human_trafficking": true,
	"corruption":        true,
	"environment":       true,
}

// JurisdictionInfo recommends the filing forum for the given topics.
func JurisdictionInfo(topics []string) Jurisdiction {
	recommended := "High Court under Article 226"
	for _, t := range topics {
		if supremeCourtTopics[t] {
			recommended = "Supreme Court under Article 32"
			break
		}
	}

	return Jurisdiction{
		SupremeCourt: "Article 32 - Supreme Court jurisdiction for fundamental rights enforcement",
		HighCourt:    "Article 226 - High Court jurisdiction for fundamental rights and other matters",
		Recommended:  recommended,
		LegalGrounds: corpus.LegalGrounds(topics),
	}
}
