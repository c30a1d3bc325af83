package evaluation

import (
	"fmt"
	"math/rand"
	"strings"
)

// familySpec drives synthetic example generation for one crime family.
type familySpec struct {
	name        string
	sections    []string
	titles      map[string]string
	signals     []string
	keywords    []string
	confounders []string
	nearMiss    []string
}

var familySpecs = []familySpec{
	{
		name:     "rape",
		sections: []string{"64", "65", "66"},
		titles: map[string]string{
			"64": "Rape", "65": "Aggravated rape", "66": "Related sexual offences",
		},
		signals:     []string{"rape", "sexual assault", "without consent", "forced"},
		keywords:    []string{"rape", "sexual assault", "without consent", "coercion", "penetration"},
		confounders: []string{"promise to marry", "Section 69", "consensual relations"},
		nearMiss:    []string{"69", "351", "352"},
	},
	{
		name:        "sexual deceit 69",
		sections:    []string{"69"},
		titles:      map[string]string{"69": "Sexual intercourse by employing deceitful means"},
		signals:     []string{"promise to marry", "deceit", "sexual intercourse", "no force"},
		keywords:    []string{"promise to marry", "deceitful means", "sexual intercourse", "not amounting to rape"},
		confounders: []string{"false document", "cheating 318-320", "rape"},
		nearMiss:    []string{"64", "318", "320"},
	},
	{
		name:     "murder",
		sections: []string{"100", "101", "102", "103"},
		titles: map[string]string{
			"100": "Murder", "101": "Punishment for murder",
			"102": "Culpable homicide not amounting to murder", "103": "Related homicide provisions",
		},
		signals:     []string{"murder", "killed", "fatal", "homicide"},
		keywords:    []string{"murder", "intent", "death", "fatal", "homicide"},
		confounders: []string{"grievous hurt", "culpable homicide not amounting to murder"},
		nearMiss:    []string{"351", "352", "102"},
	},
	{
		name:     "kidnapping",
		sections: []string{"137", "138", "139"},
		titles: map[string]string{
			"137": "Kidnapping", "138": "Abduction", "139": "Procurement/trafficking related",
		},
		signals:     []string{"kidnap", "abduct", "minor", "without consent", "confined"},
		keywords:    []string{"kidnapping", "abduction", "minor", "without consent", "wrongfully confining"},
		confounders: []string{"consensual elopement", "custody disputes"},
		nearMiss:    []string{"351", "370"},
	},
	{
		name:     "dowry cruelty",
		sections: []string{"85", "86"},
		titles: map[string]string{
			"85": "Cruelty related to dowry", "86": "Dowry-related harassment",
		},
		signals:     []string{"dowry", "harassment", "cruelty", "wife"},
		keywords:    []string{"dowry", "harassment", "cruelty", "wife", "husband"},
		confounders: []string{"property dispute", "domestic quarrel without dowry"},
		nearMiss:    []string{"351", "318"},
	},
	{
		name:     "assault hurt",
		sections: []string{"351", "352", "353", "354", "355"},
		titles: map[string]string{
			"351": "Assault", "352": "Causing hurt", "353": "Grievous hurt",
			"354": "Assault with specific intent", "355": "Other hurt provisions",
		},
		signals:     []string{"assault", "beating", "injury", "hurt"},
		keywords:    []string{"assault", "hurt", "grievous", "injury", "violence"},
		confounders: []string{"self-defense", "verbal abuse only"},
		nearMiss:    []string{"100", "370"},
	},
	{
		name:     "theft robbery",
		sections: []string{"303", "309", "310"},
		titles: map[string]string{
			"303": "Theft", "309": "Robbery", "310": "Dacoity",
		},
		signals:     []string{"stolen", "robbery", "dacoity", "extortion"},
		keywords:    []string{"theft", "stolen", "robbery", "dacoity", "extortion"},
		confounders: []string{"lost property", "civil debt"},
		nearMiss:    []string{"318", "351"},
	},
	{
		name:     "cheating forgery",
		sections: []string{"318", "319", "320"},
		titles: map[string]string{
			"318": "Cheating", "319": "Forgery", "320": "Using forged document",
		},
		signals:     []string{"cheated", "forged", "false document", "impersonation"},
		keywords:    []string{"cheating", "fraud", "forgery", "false document", "dishonestly"},
		confounders: []string{"promise to marry", "consumer dispute"},
		nearMiss:    []string{"69", "370"},
	},
}

var localities = []string{
	"a busy market", "a village fair", "a suburban lane", "near the bus stand",
	"outside a school", "at a rented room", "in a park", "near the railway station",
}

var weapons = []string{"knife", "stick", "bottle", "iron rod", "firearm"}

var actorsM = []string{"the accused", "a 28-year-old man", "the neighbor", "a shopkeeper", "the driver"}
var actorsF = []string{"the woman", "a 22-year-old woman", "the wife", "a student", "the complainant"}

var sectionRationales = map[string]string{
	"69":  "Intercourse induced by promise to marry without intent; no force alleged.",
	"100": "Fatal attack indicating intention/knowledge to cause death.",
	"101": "Sentencing provision linked to murder conviction.",
	"64":  "Non-consensual sexual act reported; force/refusal indicated.",
	"65":  "Aggravating factors present (e.g., injury/weapon/minor).",
	"137": "Minor taken without guardian consent; overnight confinement.",
	"85":  "Sustained harassment connected to dowry demands in marriage.",
	"86":  "Cruelty linked with dowry pressure by spouse/relatives.",
	"351": "Assault by use of force during quarrel.",
	"352": "Voluntarily caused hurt; medical treatment taken.",
	"353": "Injuries suggesting grievous hurt.",
	"303": "Dishonest taking of movable property without consent.",
	"309": "Robbery: theft with threat/violence.",
	"310": "Dacoity: group robbery (rare in these facts).",
	"318": "Deception causing delivery of money/act (cheating).",
	"319": "Making a false document (forgery).",
	"320": "Using a forged document as genuine.",
}

var negativeReasons = map[string]string{
	"64":  "No force/lack of consent alleged in facts.",
	"69":  "This is not deceit/promise to marry; consent obtained by force instead.",
	"101": "Sentencing section without murder conviction context.",
	"102": "Intent unclear here; differentiated from murder.",
	"351": "Simple assault does not cover fatal outcomes.",
	"370": "No dishonest taking; civil/ownership dispute instead.",
	"318": "No property/inducement deception; it's relational deceit.",
	"320": "No forged document used/made.",
}

// Generate builds a balanced synthetic dataset across the crime families.
// The same seed always yields the same dataset.
func Generate(total int, seed int64) []Example {
	rng := rand.New(rand.NewSource(seed))

	counts := allocateCounts(total, len(familySpecs))
	var out []Example
	i := 1
	for fi, spec := range familySpecs {
		for n := 0; n < counts[fi]; n++ {
			out = append(out, buildExample(rng, i, spec))
			i++
		}
	}
	rng.Shuffle(len(out), func(a, b int) {
		out[a], out[b] = out[b], out[a]
	})
	return out
}

func allocateCounts(total, families int) []int {
	base := total / families
	rem := total % families
	counts := make([]int, families)
	for i := range counts {
		counts[i] = base
		if i < rem {
			counts[i]++
		}
	}
	return counts
}

func buildExample(rng *rand.Rand, i int, spec familySpec) Example {
	summary := issueSummary(rng, spec)

	difficulty := "easy"
	switch r := rng.Float64(); {
	case r < 0.35:
		difficulty = "hard"
	case r < 0.65:
		difficulty = "medium"
	}

	return Example{
		ID:                 fmt.Sprintf("ex-%03d", i),
		IssueSummary:       summary,
		Entities:           entities(rng),
		CrimeSignals:       sample(rng, spec.signals, 3),
		ApplicableSections: applicable(rng, spec),
		HardNegatives:      hardNegatives(rng, spec),
		Retrieval:          retrievalBlock(rng, spec, summary),
		Difficulty:         difficulty,
	}
}

func issueSummary(rng *rand.Rand, spec familySpec) string {
	loc := localities[rng.Intn(len(localities))]
	switch spec.name {
	case "sexual deceit 69":
		return fmt.Sprintf("%s allegedly promised marriage to %s at %s, and they engaged in sexual relations without force. Messages later suggested he never intended to marry.",
			actorsM[rng.Intn(len(actorsM))], actorsF[rng.Intn(len(actorsF))], loc)
	case "rape":
		return fmt.Sprintf("At %s, %s allegedly forced himself on %s, ignoring repeated refusals. Medical report noted injuries consistent with assault.",
			loc, actorsM[rng.Intn(len(actorsM))], actorsF[rng.Intn(len(actorsF))])
	case "murder":
		return fmt.Sprintf("At %s, %s allegedly attacked a victim with a %s. The victim succumbed to injuries on the spot.",
			loc, actorsM[rng.Intn(len(actorsM))], weapons[rng.Intn(len(weapons))])
	case "kidnapping":
		return fmt.Sprintf("From %s, a 15-year-old was taken on a motorcycle by a neighbor without parental consent and kept overnight in a rented room.", loc)
	case "dowry cruelty":
		return fmt.Sprintf("At %s, the wife reported sustained harassment over demands for cash and gold by her husband and in-laws, escalating to threats.", loc)
	case "assault hurt":
		return fmt.Sprintf("Near %s, %s struck a passerby with a %s during a quarrel, causing injuries treated at a local clinic.",
			loc, actorsM[rng.Intn(len(actorsM))], weapons[rng.Intn(len(weapons))])
	case "theft robbery":
		return fmt.Sprintf("At %s, two individuals snatched a phone from a commuter and fled on a motorcycle after issuing threats.", loc)
	case "cheating forgery":
		return fmt.Sprintf("From %s, the complainant alleges the agent used a forged document to secure payment and later impersonated an official to obtain more.", loc)
	}
	return fmt.Sprintf("Incident reported at %s.", loc)
}

func entities(rng *rand.Rand) []string {
	var ents []string
	if rng.Float64() < 0.6 {
		pool := []string{"minor", "woman", "man", "neighbor", "husband", "wife"}
		ents = append(ents, pool[rng.Intn(len(pool))])
	}
	if rng.Float64() < 0.4 {
		pool := []string{"police", "witness", "shopkeeper", "driver"}
		ents = append(ents, pool[rng.Intn(len(pool))])
	}
	return ents
}

func applicable(rng *rand.Rand, spec familySpec) []ApplicableSection {
	var secs []string
	switch spec.name {
	case "sexual deceit 69":
		secs = []string{"69"}
	case "murder":
		secs = []string{"100"}
		if rng.Float64() < 0.5 {
			secs = append(secs, "101")
		}
	case "rape":
		secs = []string{"64"}
		if rng.Float64() < 0.3 {
			secs = append(secs, "65")
		}
	case "kidnapping":
		secs = []string{"137"}
	default:
		secs = []string{spec.sections[rng.Intn(minInt(3, len(spec.sections)))]}
	}

	out := make([]ApplicableSection, 0, len(secs))
	for _, s := range secs {
		rationale := sectionRationales[s]
		if rationale == "" {
			rationale = "Applies to the core conduct described."
		}
		out = append(out, ApplicableSection{
			SectionID:    s,
			Title:        spec.titles[s],
			SupportQuote: "Statutory text paraphrase",
			Paraphrase:   true,
			Rationale:    rationale,
		})
	}
	return out
}

func hardNegatives(rng *rand.Rand, spec familySpec) []HardNegative {
	pool := append([]string(nil), spec.nearMiss...)
	rng.Shuffle(len(pool), func(a, b int) { pool[a], pool[b] = pool[b], pool[a] })

	n := 2 + rng.Intn(3)
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]HardNegative, 0, n)
	for _, s := range pool[:n] {
		reason := negativeReasons[s]
		if reason == "" {
			reason = "Element(s) not satisfied by the described facts."
		}
		out = append(out, HardNegative{SectionID: s, ReasonNotApplicable: reason})
	}
	return out
}

func retrievalBlock(rng *rand.Rand, spec familySpec, summary string) RetrievalBlock {
	variants := []string{spec.name + " case in BNS"}
	if firstSentence := strings.SplitN(summary, ".", 2)[0]; firstSentence != "" {
		variants = append(variants, strings.ToLower(truncateStr(firstSentence, 80)))
	}
	variants = append(variants, sample(rng, spec.keywords, 3)...)
	if len(variants) > 5 {
		variants = variants[:5]
	}

	return RetrievalBlock{
		QueryVariants: variants,
		Keywords:      spec.keywords,
		Confounders:   spec.confounders,
	}
}

func sample(rng *rand.Rand, pool []string, k int) []string {
	if k > len(pool) {
		k = len(pool)
	}
	idx := rng.Perm(len(pool))[:k]
	out := make([]string, k)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}

func truncateStr(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
