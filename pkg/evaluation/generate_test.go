package evaluation

import (
	"reflect"
	"testing"
)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(24, 42)
	b := Generate(24, 42)

	if !reflect.DeepEqual(a, b) {
		t.Error("identical seeds produced different datasets")
	}

	c := Generate(24, 7)
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds produced identical datasets")
	}
}

func TestGenerateBalanced(t *testing.T) {
	total := 24 // divides evenly across the families
	examples := Generate(total, 42)
	if len(examples) != total {
		t.Fatalf("examples = %d, want %d", len(examples), total)
	}

	perFamily := make(map[string]int)
	for _, ex := range examples {
		perFamily[ex.Family()]++
	}
	if len(perFamily) != len(familySpecs) {
		t.Fatalf("families represented = %d, want %d", len(perFamily), len(familySpecs))
	}
	for family, n := range perFamily {
		if n != total/len(familySpecs) {
			t.Errorf("family %q has %d examples, want %d", family, n, total/len(familySpecs))
		}
	}
}

func TestGenerateRemainderAllocation(t *testing.T) {
	counts := allocateCounts(10, 8)
	sum := 0
	for _, c := range counts {
		sum += c
		if c < 1 || c > 2 {
			t.Errorf("count %d outside [1,2]", c)
		}
	}
	if sum != 10 {
		t.Errorf("allocated %d, want 10", sum)
	}
}

func TestGenerateExampleShape(t *testing.T) {
	examples := Generate(16, 42)

	seenIDs := make(map[string]bool)
	for _, ex := range examples {
		if seenIDs[ex.ID] {
			t.Errorf("duplicate example ID %q", ex.ID)
		}
		seenIDs[ex.ID] = true

		if ex.IssueSummary == "" {
			t.Errorf("%s: empty issue summary", ex.ID)
		}
		if len(ex.ApplicableSections) == 0 {
			t.Errorf("%s: no applicable sections", ex.ID)
		}
		for _, s := range ex.ApplicableSections {
			if s.Rationale == "" {
				t.Errorf("%s: section %s has no rationale", ex.ID, s.SectionID)
			}
		}
		if len(ex.HardNegatives) < 2 {
			t.Errorf("%s: hard negatives = %d, want at least 2", ex.ID, len(ex.HardNegatives))
		}
		if len(ex.Retrieval.QueryVariants) == 0 || len(ex.Retrieval.QueryVariants) > 5 {
			t.Errorf("%s: query variants = %d", ex.ID, len(ex.Retrieval.QueryVariants))
		}
		switch ex.Difficulty {
		case "easy", "medium", "hard":
		default:
			t.Errorf("%s: difficulty = %q", ex.ID, ex.Difficulty)
		}
		if ex.Family() == "unknown" {
			t.Errorf("%s: family not recoverable from query variants", ex.ID)
		}
	}
}

// Every section a generated example labels applicable or negative must map
// back into a registered rationale table or default text; more importantly,
// the applicable sections must come from the generating family.
func TestGenerateApplicableWithinFamily(t *testing.T) {
	examples := Generate(32, 42)

	specByName := make(map[string]familySpec, len(familySpecs))
	for _, spec := range familySpecs {
		specByName[spec.name] = spec
	}

	for _, ex := range examples {
		spec, ok := specByName[ex.Family()]
		if !ok {
			t.Fatalf("%s: unknown family %q", ex.ID, ex.Family())
		}
		sections := make(map[string]bool, len(spec.sections))
		for _, s := range spec.sections {
			sections[s] = true
		}
		for _, s := range ex.ApplicableSections {
			if !sections[s.SectionID] {
				t.Errorf("%s: applicable section %s outside family %q", ex.ID, s.SectionID, spec.name)
			}
		}
	}
}
