package perturb

import (
	"math/rand"
)

// NoiseOp selects one character-noise primitive.
type NoiseOp string

const (
	OpDelete    NoiseOp = "delete"
	OpSwap      NoiseOp = "swap"
	OpVowelDrop NoiseOp = "vowel_drop"
)

// DefaultNoiseOps is the full composition in its fixed application order.
var DefaultNoiseOps = []NoiseOp{OpDelete, OpSwap, OpVowelDrop}

// vowels maps language codes to their vowel code points. For the Devanagari
// and Bengali scripts this covers independent vowels, matras, and the
// chandrabindu/anusvara/visarga signs; Marathi adds the vocalic L forms.
var vowels = map[string]map[rune]struct{}{
	"en": runeSet("aeiouAEIOU"),
	"hi": runeSet("अआइईउऊऋएऐओऔ" +
		"ािीुूृेैोौ" +
		"ँंः"),
	"mr": runeSet("अआइईउऊऋएऐओऔ" +
		"ािीुूृेैोौ" +
		"ँंः" +
		"ऌॢॣ"),
	"bn": runeSet("অআইঈউঊঋএঐওঔ" +
		"ািীুূৃেৈোৌ" +
		"ঁংঃ"),
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

// NoiseInjector applies character-level noise: deletion, adjacent swap, and
// language-aware vowel dropping, composed in that fixed order. Each primitive
// is an independent Bernoulli trial per character (or per adjacent pair for
// swap) at the configured level.
type NoiseInjector struct {
	ops   []NoiseOp
	level float64
	rng   *rand.Rand
}

func NewNoiseInjector(seed int64, level float64, ops []NoiseOp) *NoiseInjector {
	if len(ops) == 0 {
		ops = DefaultNoiseOps
	}
	return &NoiseInjector{
		ops:   ops,
		level: level,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (n *NoiseInjector) Name() string { return "noise" }

func (n *NoiseInjector) Perturb(text, language string) Result {
	perturbed := text
	for _, op := range n.ops {
		switch op {
		case OpDelete:
			perturbed = n.Delete(perturbed)
		case OpSwap:
			perturbed = n.Swap(perturbed)
		case OpVowelDrop:
			perturbed = n.VowelDrop(perturbed, language)
		}
	}
	return Result{
		OriginalText:  text,
		PerturbedText: perturbed,
		Language:      normalizeLang(language),
		Type:          n.Name(),
		Level:         n.level,
	}
}

// Delete removes each character independently with probability level.
// level <= 0 is an identity shortcut that consumes no randomness.
func (n *NoiseInjector) Delete(text string) string {
	if text == "" || n.level <= 0 {
		return text
	}
	kept := make([]rune, 0, len(text))
	for _, r := range text {
		if n.rng.Float64() < n.level {
			continue
		}
		kept = append(kept, r)
	}
	return string(kept)
}

// Swap exchanges adjacent characters in a single left-to-right pass, one
// independent trial per adjacent pair against the current state of the text.
func (n *NoiseInjector) Swap(text string) string {
	if text == "" || n.level <= 0 {
		return text
	}
	chars := []rune(text)
	for i := 0; i < len(chars)-1; i++ {
		if n.rng.Float64() < n.level {
			chars[i], chars[i+1] = chars[i+1], chars[i]
		}
	}
	return string(chars)
}

// VowelDrop removes vowels with probability level, consulting the per-language
// vowel set. Languages with no known vowel inventory are left untouched so
// unfamiliar scripts are never corrupted.
func (n *NoiseInjector) VowelDrop(text, language string) string {
	if text == "" || n.level <= 0 {
		return text
	}
	set, ok := vowels[normalizeLang(language)]
	if !ok {
		return text
	}
	kept := make([]rune, 0, len(text))
	for _, r := range text {
		if _, vowel := set[r]; vowel && n.rng.Float64() < n.level {
			continue
		}
		kept = append(kept, r)
	}
	return string(kept)
}
