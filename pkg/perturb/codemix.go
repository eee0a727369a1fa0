package perturb

import (
	"math/rand"
	"strings"
)

// mixingDict maps (language, native word) to an English equivalent. Values
// with slash-delimited alternatives substitute their first alternative.
var mixingDict = map[string]map[string]string{
	"hi": {
		// Nouns
		"गाड़ी": "car", "घर": "house", "किताब": "book", "फोन": "phone",
		"स्कूल": "school", "बच्चा": "kid", "समय": "time", "दिमाग": "mind",
		"कहानी": "story", "सवाल": "question", "जवाब": "answer", "दोस्त": "friend",
		"प्यार": "love", "जिंदगी": "life", "दुनिया": "world", "ऑफिस": "office",
		// Adjectives
		"अच्छा": "good", "बुरा": "bad", "खुश": "happy", "नाराज": "angry",
		"मुश्किल": "difficult", "आसान": "easy", "जल्दी": "fast/early", "जरूरी": "important",
		// Verbs, exact forms only; no stemming
		"सोचना": "think", "करना": "do", "जाना": "go", "आना": "come",
		"देखना": "see", "समझना": "understand", "बोलना": "speak", "खेलना": "play",
		// Connectives
		"लेकिन": "but", "शायद": "maybe", "क्योंकि": "because",
	},
	"mr": {
		"गाडी": "car", "घर": "house", "पुस्तक": "book", "शाळा": "school",
		"मित्र": "friend", "वेळ": "time", "प्रश्न": "question", "उत्तर": "answer",
		"जग": "world", "प्रेम": "love", "आयुष्य": "life",
		"चांगले": "good", "वाईट": "bad", "सोपे": "easy", "कठीण": "hard",
		"महत्वाचे": "important", "आनंदी": "happy",
		"करणे": "do", "जाणे": "go", "येणे": "come", "पाहणे": "see",
	},
}

// CodeMixer substitutes English equivalents for dictionary words, simulating
// code-mixed input. Tokens are whitespace-delimited; punctuation is stripped
// for the lookup only and not reattached to substituted words, an accepted
// approximation. Languages without a mixing dictionary yield identity.
type CodeMixer struct {
	ratio float64
	rng   *rand.Rand
}

func NewCodeMixer(seed int64, ratio float64) *CodeMixer {
	return &CodeMixer{
		ratio: ratio,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (c *CodeMixer) Name() string { return "codemix" }

func (c *CodeMixer) Perturb(text, language string) Result {
	lang := normalizeLang(language)
	result := Result{
		OriginalText:  text,
		PerturbedText: text,
		Language:      lang,
		Type:          c.Name(),
		Level:         c.ratio,
	}
	vocab, ok := mixingDict[lang]
	if text == "" || !ok {
		return result
	}

	tokens := strings.Fields(text)
	mixed := make([]string, len(tokens))
	for i, token := range tokens {
		clean := strings.Trim(token, lookupPunct)
		if english, hit := vocab[clean]; hit && c.rng.Float64() < c.ratio {
			mixed[i] = strings.SplitN(english, "/", 2)[0]
		} else {
			mixed[i] = token
		}
	}

	result.PerturbedText = strings.Join(mixed, " ")
	return result
}
