package evaluation

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/google/uuid"
)

// Predictor returns the ordered section IDs a retrieval pass selects for an
// issue summary (best first).
type Predictor interface {
	Predict(issueSummary string) []string
}

// PredictorFunc adapts a function to the Predictor interface.
type PredictorFunc func(issueSummary string) []string

// Predict calls f.
func (f PredictorFunc) Predict(issueSummary string) []string {
	return f(issueSummary)
}

// Metrics holds the scores at one cutoff k.
type Metrics struct {
	HitAtK      float64 `json:"hit@k"`
	AvoidNegAtK float64 `json:"avoid_neg@k"`
	Samples     int     `json:"samples"`
}

// Detail records one evaluated example for spot-checking.
type Detail struct {
	ID        string   `json:"id"`
	Family    string   `json:"family"`
	True      []string `json:"true"`
	Negatives []string `json:"negatives"`
	Predicted []string `json:"pred"`
}

// Report is the evaluation output: hit@k measures whether a true section
// appears in the top k, avoid-negative@k whether no hard negative does.
type Report struct {
	RunID          string                        `json:"run_id"`
	Overall        map[string]Metrics            `json:"overall"`
	ByFamily       map[string]map[string]Metrics `json:"by_family"`
	SampledDetails []Detail                      `json:"sampled_details"`
}

// maxSampledDetails bounds the per-example detail kept in a report.
const maxSampledDetails = 30

type tally struct {
	hits     int
	avoidNeg int
	count    int
}

// Evaluate runs the predictor over every example and scores it at each cutoff
// in ks, overall and per generating family.
func Evaluate(pred Predictor, examples []Example, ks []int) Report {
	if len(ks) == 0 {
		ks = []int{1, 3, 5}
	}

	overall := make(map[int]*tally, len(ks))
	for _, k := range ks {
		overall[k] = &tally{}
	}
	byFamily := make(map[string]map[int]*tally)

	var details []Detail

	for _, ex := range examples {
		trueSecs := make(map[string]bool, len(ex.ApplicableSections))
		for _, s := range ex.ApplicableSections {
			trueSecs[s.SectionID] = true
		}
		negSecs := make(map[string]bool, len(ex.HardNegatives))
		for _, n := range ex.HardNegatives {
			negSecs[n.SectionID] = true
		}

		predicted := pred.Predict(ex.IssueSummary)
		family := ex.Family()

		if byFamily[family] == nil {
			byFamily[family] = make(map[int]*tally, len(ks))
			for _, k := range ks {
				byFamily[family][k] = &tally{}
			}
		}

		for _, k := range ks {
			topK := predicted
			if len(topK) > k {
				topK = topK[:k]
			}

			hit := 0
			for _, s := range topK {
				if trueSecs[s] {
					hit = 1
					break
				}
			}
			avoid := 1
			for _, s := range topK {
				if negSecs[s] {
					avoid = 0
					break
				}
			}

			for _, t := range []*tally{overall[k], byFamily[family][k]} {
				t.hits += hit
				t.avoidNeg += avoid
				t.count++
			}
		}

		if len(details) < maxSampledDetails {
			details = append(details, Detail{
				ID:        ex.ID,
				Family:    family,
				True:      sortedKeys(trueSecs),
				Negatives: sortedKeys(negSecs),
				Predicted: predicted,
			})
		}
	}

	report := Report{
		RunID:          uuid.NewString(),
		Overall:        summarize(overall),
		ByFamily:       make(map[string]map[string]Metrics, len(byFamily)),
		SampledDetails: details,
	}
	for family, tallies := range byFamily {
		report.ByFamily[family] = summarize(tallies)
	}
	return report
}

func summarize(tallies map[int]*tally) map[string]Metrics {
	out := make(map[string]Metrics, len(tallies))
	for k, t := range tallies {
		total := t.count
		if total == 0 {
			total = 1
		}
		out[fmt.Sprintf("%d", k)] = Metrics{
			HitAtK:      round4(float64(t.hits) / float64(total)),
			AvoidNegAtK: round4(float64(t.avoidNeg) / float64(total)),
			Samples:     t.count,
		}
	}
	return out
}

// Save writes the report as indented JSON.
func (r Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
