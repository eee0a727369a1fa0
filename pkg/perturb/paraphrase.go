package perturb

import (
	"math/rand"
	"strings"
)

// StrategySynonym is the only paraphrase strategy currently defined.
const StrategySynonym = "synonym"

// synonyms holds the per-language substitution tables. Deliberately small and
// hardcoded so runs stay reproducible without external lexical resources.
var synonyms = map[string]map[string][]string{
	"en": {
		"good":           {"nice", "excellent", "great", "fine"},
		"bad":            {"terrible", "awful", "poor", "negative"},
		"happy":          {"joyful", "glad", "content", "cheerful"},
		"sad":            {"unhappy", "sorrowful", "depressed", "down"},
		"big":            {"large", "huge", "massive", "giant"},
		"small":          {"tiny", "little", "miniature", "minor"},
		"verify":         {"check", "validate", "confirm", "test"},
		"robust":         {"strong", "sturdy", "resilient", "tough"},
		"person":         {"human", "individual", "someone", "man/woman"},
		"classification": {"categorization", "grouping", "sorting"},
		"inference":      {"deduction", "conclusion", "reasoning"},
		"text":           {"content", "script", "writing", "passage"},
	},
	"hi": {
		"अच्छा":  {"बढ़िया", "उत्तम", "श्रेष्ठ", "लाजवाब"},
		"बुरा":   {"खराब", "गलत", "बेकार", "घटिया"},
		"खुश":    {"प्रसन्न", "आनंदित", "हर्षित", "मगन"},
		"दुखी":   {"उदास", "परेशान", "व्यथित", "खिन्न"},
		"बड़ा":   {"विशाल", "भारी", "महान", "अहम"},
		"छोटा":   {"लघु", "साधारण", "तुच्छ", "कम"},
		"स्वागत": {"अभिनंदन", "सत्कार", "आदर", "इस्तकबाल"},
		"भाषा":   {"बोली", "ज़बान", "वाणी", "माध्यम"},
		"परीक्षा": {"इम्तिहान", "जांच", "परख", "मूल्यांकन"},
	},
	"mr": {
		"चांगले": {"छान", "उत्तम", "बढ़िया"},
		"वाईट":  {"खराब", "चुकीचे"},
	},
	"bn": {
		"ভালো": {"উত্তম", "চমৎকার", "সুন্দর"},
		"খারাপ": {"বাজে", "মন্দ", "অশুভ"},
	},
}

// Paraphraser rewrites text by synonym substitution over a per-language
// table. The strategy tag selects among substitution strategies; anything
// other than "synonym" fails closed to identity.
type Paraphraser struct {
	strategy string
	rate     float64
	rng      *rand.Rand
}

func NewParaphraser(seed int64, strategy string, rate float64) *Paraphraser {
	if strategy == "" {
		strategy = StrategySynonym
	}
	return &Paraphraser{
		strategy: strategy,
		rate:     rate,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (p *Paraphraser) Name() string { return "paraphrase" }

func (p *Paraphraser) Perturb(text, language string) Result {
	lang := normalizeLang(language)
	result := Result{
		OriginalText:  text,
		PerturbedText: text,
		Language:      lang,
		Type:          p.Name(),
		Level:         p.rate,
	}
	if text == "" || p.strategy != StrategySynonym {
		return result
	}
	table, ok := synonyms[lang]
	if !ok {
		return result
	}

	tokens := strings.Fields(text)
	rewritten := make([]string, len(tokens))
	for i, token := range tokens {
		clean := strings.Trim(token, ".,!?\"'")
		if options, hit := table[clean]; hit && p.rng.Float64() < p.rate {
			rewritten[i] = options[p.rng.Intn(len(options))]
		} else {
			rewritten[i] = token
		}
	}

	result.PerturbedText = strings.Join(rewritten, " ")
	return result
}
