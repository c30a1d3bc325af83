package corpus

import "strings"

// Provision is one constitutional article with its display title and body text.
type Provision struct {
	Article string
	Title   string
	Text    string
}

// FundamentalRights maps intent keys to Part III articles.
var FundamentalRights = map[string]Provision{
	"equality": {
		Article: "Article 14",
		Title:   "Equality before law",
		Text:    "The State shall not deny to any person equality before the law or the equal protection of the laws within the territory of India.",
	},
	"discrimination": {
		Article: "Article 15",
		Title:   "Prohibition of discrimination",
		Text:    "The State shall not discriminate against any citizen on grounds only of religion, race, caste, sex, place of birth or any of them.",
	},
	"equal_opportunity": {
		Article: "Article 16",
		Title:   "Equality of opportunity in public employment",
		Text:    "There shall be equality of opportunity for all citizens in matters relating to employment or appointment to any office under the State.",
	},
	"life_liberty": {
		Article: "Article 21",
		Title:   "Protection of life and personal liberty",
		Text:    "No person shall be deprived of his life or personal liberty except according to procedure established by law. This includes right to clean environment, health, education, and dignified life.",
	},
	"education": {
		Article: "Article 21A",
		Title:   "Right to Education",
		Text:    "The State shall provide free and compulsory education to all children of the age of six to fourteen years in such manner as the State may, by law, determine.",
	},
	"exploitation": {
		Article: "Article 23",
		Title:   "Prohibition of traffic in human beings and forced labour",
		Text:    "Traffic in human beings and begar and other similar forms of forced labour are prohibited and any contravention of this provision shall be an offence punishable in accordance with law.",
	},
	"child_labour": {
		Article: "Article 24",
		Title:   "Prohibition of employment of children in factories",
		Text:    "No child below the age of fourteen years shall be employed to work in any factory or mine or engaged in any other hazardous employment.",
	},
	"constitutional_remedies": {
		Article: "Article 32",
		Title:   "Right to Constitutional Remedies",
		Text:    "The right to move the Supreme Court by appropriate proceedings for the enforcement of the rights conferred by this Part is guaranteed.",
	},
}

// fundamentalRightKeys fixes the corpus build order.
var fundamentalRightKeys = []string{
	"equality", "discrimination", "equal_opportunity", "life_liberty",
	"education", "exploitation", "child_labour", "constitutional_remedies",
}

// DirectivePrinciples maps intent keys to Part IV articles.
var DirectivePrinciples = map[string]Provision{
	"health": {
		Article: "Article 39(e) & (f)",
		Title:   "Protection of workers and children",
		Text:    "The State shall direct its policy towards securing that the health and strength of workers, men and women, and the tender age of children are not abused and that citizens are not forced by economic necessity to enter avocations unsuited to their age or strength; and that children are given opportunities and facilities to develop in a healthy manner.",
	},
	"nutrition": {
		Article: "Article 47",
		Title:   "Duty to raise nutrition and standard of living",
		Text:    "The State shall regard the raising of the level of nutrition and the standard of living of its people and the improvement of public health as among its primary duties.",
	},
	"environment": {
		Article: "Article 48A",
		Title:   "Protection and improvement of environment",
		Text:    "The State shall endeavour to protect and improve the environment and to safeguard the forests and wild life of the country.",
	},
	"justice": {
		Article: "Article 39A",
		Title:   "Equal justice and free legal aid",
		Text:    "The State shall secure that the operation of the legal system promotes justice, on a basis of equal opportunity, and shall, in particular, provide free legal aid, by suitable legislation or schemes.",
	},
	"early_childhood": {
		Article: "Article 45",
		Title:   "Provision for early childhood care and education",
		Text:    "The State shall endeavour to provide early childhood care and education for all children until they complete the age of six years.",
	},
}

var directivePrincipleKeys = []string{
	"health", "nutrition", "environment", "justice", "early_childhood",
}

// AdditionalProvisions are writ-jurisdiction articles cited in every petition.
var AdditionalProvisions = map[string]Provision{
	"article_32": {
		Article: "Article 32",
		Title:   "Remedies for enforcement of rights",
		Text:    "The Supreme Court shall have power to issue directions or orders or writs for the enforcement of any of the rights conferred by Part III.",
	},
	"article_226": {
		Article: "Article 226",
		Title:   "Power of High Courts to issue writs",
		Text:    "Every High Court shall have power to issue to any person or authority directions, orders or writs including writs in the nature of habeas corpus, mandamus, prohibition, quo warranto and certiorari for enforcement of fundamental rights and for any other purpose.",
	},
}

var additionalProvisionKeys = []string{"article_32", "article_226"}

// Mapping associates one topic label with its constitutional grounding.
type Mapping struct {
	FundamentalRights   []string
	DirectivePrinciples []string
	KeyCaseLaws         []string
}

// TopicMapping maps classified topic labels to constitutional provisions and
// landmark case law.
var TopicMapping = map[string]Mapping{
	"environment": {
		FundamentalRights:   []string{"life_liberty"},
		DirectivePrinciples: []string{"environment"},
		KeyCaseLaws: []string{
			"MC Mehta v. Union of India (Oleum Gas Leak Case) - Right to clean environment is part of Article 21",
			"Subhash Kumar v. State of Bihar - Right to pollution-free water and air",
			"Indian Council for Enviro-Legal Action v. Union of India - Polluter pays principle",
		},
	},
	"health": {
		FundamentalRights:   []string{"life_liberty"},
		DirectivePrinciples: []string{"health", "nutrition"},
		KeyCaseLaws: []string{
			"Paschim Banga Khet Mazdoor Samity v. State of West Bengal - Right to health care",
			"Consumer Education & Research Centre v. Union of India - Health of workers is fundamental right",
			"Pt. Parmanand Katara v. Union of India - Right to emergency medical aid",
		},
	},
	"education": {
		FundamentalRights:   []string{"education", "life_liberty"},
		DirectivePrinciples: []string{"early_childhood"},
		KeyCaseLaws: []string{
			"Mohini Jain v. State of Karnataka - Right to education is a fundamental right",
			"Unni Krishnan v. State of Andhra Pradesh - Right to free education up to 14 years",
			"Society for Unaided Private Schools v. Union of India - RTE Act validation",
		},
	},
	"women_children": {
		FundamentalRights:   []string{"equality", "discrimination", "life_liberty", "exploitation", "child_labour"},
		DirectivePrinciples: []string{"health", "early_childhood"},
		KeyCaseLaws: []string{
			"Vishaka v. State of Rajasthan - Sexual harassment at workplace",
			"MC Mehta v. State of Tamil Nadu - Child labour in hazardous industries",
			"Gaurav Jain v. Union of India - Rehabilitation of children of prostitutes",
		},
	},
	"child_labour": {
		FundamentalRights:   []string{"child_labour", "exploitation", "life_liberty"},
		DirectivePrinciples: []string{"health"},
		KeyCaseLaws: []string{
			"MC Mehta v. State of Tamil Nadu - Prohibition of child labour in hazardous industries",
			"Bandhua Mukti Morcha v. Union of India - Bonded child labour",
			"People's Union for Democratic Rights v. Union of India - Asiad workers case",
		},
	},
	"human_trafficking": {
		FundamentalRights:   []string{"exploitation", "life_liberty"},
		DirectivePrinciples: []string{"health", "justice"},
		KeyCaseLaws: []string{
			"Vishal Jeet v. Union of India - Trafficking of women and children",
			"Gaurav Jain v. Union of India - Prostitution and trafficking",
			"Bachpan Bachao Andolan v. Union of India - Child trafficking and rescue",
		},
	},
	"corruption": {
		FundamentalRights:   []string{"equality", "equal_opportunity"},
		DirectivePrinciples: []string{"justice"},
		KeyCaseLaws: []string{
			"Vineet Narain v. Union of India - Jain Hawala Case - CBI autonomy",
			"Common Cause v. Union of India - Appointment of Lokpal",
			"Centre for PIL v. Union of India - 2G Spectrum case - Public trust doctrine",
		},
	},
	"crime": {
		FundamentalRights:   []string{"life_liberty", "equality"},
		DirectivePrinciples: []string{"justice"},
		KeyCaseLaws: []string{
			"DK Basu v. State of West Bengal - Custodial violence and arrest guidelines",
			"Nilabati Behera v. State of Orissa - Compensation for custodial death",
			"State of Maharashtra v. Ravikant S. Patil - Fast track courts",
		},
	},
	"public_health": {
		FundamentalRights:   []string{"life_liberty"},
		DirectivePrinciples: []string{"health", "nutrition"},
		KeyCaseLaws: []string{
			"CERC v. Union of India - Public health hazards in industries",
			"Bandhua Mukti Morcha v. Union of India - Health and sanitation in work places",
			"Vincent Panikurlangara v. Union of India - Public health and tobacco",
		},
	},
	"general": {
		FundamentalRights:   []string{"constitutional_remedies", "life_liberty"},
		DirectivePrinciples: []string{"justice"},
		KeyCaseLaws: []string{
			"SP Gupta v. Union of India - Public Interest Litigation locus standi",
			"Bandhua Mukti Morcha v. Union of India - Epistolary jurisdiction",
			"PUDR v. Union of India - PIL by organization for public cause",
		},
	},
}

// topicKeys fixes the case-law dedup order across topics.
var topicKeys = []string{
	"environment", "health", "education", "women_children", "child_labour",
	"human_trafficking", "corruption", "crime", "public_health", "general",
}

// TopicProvisions collects the fundamental rights, directive principles, and
// case laws associated with the given topics, keeping first-seen order and
// dropping duplicates across topics.
type TopicProvisions struct {
	FundamentalRights   []Provision
	DirectivePrinciples []Provision
	CaseLaws            []string
}

// ProvisionsForTopics resolves the topic-to-provision mapping for a query.
// Unknown topics contribute nothing.
func ProvisionsForTopics(topics []string) TopicProvisions {
	var out TopicProvisions
	seenFR := make(map[string]bool)
	seenDP := make(map[string]bool)
	seenCase := make(map[string]bool)

	for _, topic := range topics {
		mapping, ok := TopicMapping[topic]
		if !ok {
			continue
		}
		for _, key := range mapping.FundamentalRights {
			if fr, ok := FundamentalRights[key]; ok && !seenFR[key] {
				seenFR[key] = true
				out.FundamentalRights = append(out.FundamentalRights, fr)
			}
		}
		for _, key := range mapping.DirectivePrinciples {
			if dp, ok := DirectivePrinciples[key]; ok && !seenDP[key] {
				seenDP[key] = true
				out.DirectivePrinciples = append(out.DirectivePrinciples, dp)
			}
		}
		for _, cl := range mapping.KeyCaseLaws {
			if !seenCase[cl] {
				seenCase[cl] = true
				out.CaseLaws = append(out.CaseLaws, cl)
			}
		}
	}
	return out
}

// LegalGrounds summarizes the constitutional grounds for a petition covering
// the given topics.
func LegalGrounds(topics []string) string {
	provisions := ProvisionsForTopics(topics)

	var grounds []string
	if len(provisions.FundamentalRights) > 0 {
		articles := make([]string, len(provisions.FundamentalRights))
		for i, fr := range provisions.FundamentalRights {
			articles[i] = fr.Article
		}
		grounds = append(grounds, "Fundamental Rights under "+strings.Join(articles, ", "))
	}
	if len(provisions.DirectivePrinciples) > 0 {
		articles := make([]string, len(provisions.DirectivePrinciples))
		for i, dp := range provisions.DirectivePrinciples {
			articles[i] = dp.Article
		}
		grounds = append(grounds, "Directive Principles under "+strings.Join(articles, ", "))
	}

	if len(grounds) == 0 {
		return "Fundamental Rights under Part III"
	}
	if len(grounds) == 1 {
		return grounds[0]
	}
	return grounds[0] + " and " + grounds[1]
}
