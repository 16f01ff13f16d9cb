package humanizer

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Injection probabilities and positional limits for the probabilistic stages.
const (
	personalTouchChance     = 0.3
	personalTouchSentences  = 3
	experienceChance        = 0.2
	fillerChance            = 0.15
	emotionChance           = 0.1
	emotionSkippedSentences = 2
	informalSpellingChance  = 0.05

	sentenceSeparator  = ". "
	paragraphSeparator = "\n\n"
)

// ErrUnknownProfile is returned when a profile name is not one of the predefined profiles.
var ErrUnknownProfile = errors.New("unknown humanization profile")

// rule is a compiled whole-word, case-insensitive substitution.
type rule struct {
	pattern *regexp.Regexp
	to      string
}

func compileRules(pairs []replacement) []rule {
	rules := make([]rule, 0, len(pairs))
	for _, p := range pairs {
		rules = append(rules, rule{
			pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p.from) + `\b`),
			to:      p.to,
		})
	}
	return rules
}

var (
	contractionRules = compileRules(contractions)
	casualRules      = compileRules(casualReplacements)
	informalRules    = compileRules(informalSpellings)
)

// Humanizer runs the rewrite pipeline against a random source.
// A Humanizer is safe for concurrent use when its Rand is.
type Humanizer struct {
	rand Rand
}

// New creates a Humanizer drawing from r. A nil r selects the shared
// entropy-seeded source.
func New(r Rand) *Humanizer {
	if r == nil {
		r = DefaultRand()
	}
	return &Humanizer{rand: r}
}

// Humanize rewrites text according to the profile.
//
// The stages always run in the same order: contractions, casual vocabulary,
// personal touches, personal experiences, filler words, emotions and finally
// informal spellings. The random source is consulted only when a stage is
// enabled and its positional condition holds, so a profile that enables only
// the lexical stages never draws from it.
//
// Parameters:
//   - text: The text to rewrite
//   - p: The resolved profile
//
// Returns:
//   - The rewritten text; empty input is returned unchanged
func (h *Humanizer) Humanize(text string, p Profile) string {
	if text == "" {
		return ""
	}

	out := text
	if p.AddContractions {
		out = applyRules(out, contractionRules)
	}
	if p.AddCasualLanguage {
		out = applyRules(out, casualRules)
	}
	if p.AddPersonalTouch {
		out = h.addPersonalTouches(out)
	}
	if p.AddPersonalExperiences {
		out = h.addPersonalExperiences(out)
	}
	if p.AddFillerWords {
		out = h.addFillerWords(out)
	}
	if p.AddEmotions {
		out = h.addEmotions(out)
	}
	if p.AddTypos {
		out = h.addInformalSpellings(out)
	}
	return out
}

// HumanizeWithProfile rewrites text using a predefined profile.
// An empty name selects the moderate profile.
func (h *Humanizer) HumanizeWithProfile(text, name string) (string, error) {
	if name == "" {
		name = DefaultProfileName
	}
	p, ok := LookupProfile(name)
	if !ok {
		return "", ErrUnknownProfile
	}
	return h.Humanize(text, p), nil
}

func applyRules(text string, rules []rule) string {
	for _, r := range rules {
		text = r.pattern.ReplaceAllLiteralString(text, r.to)
	}
	return text
}

func (h *Humanizer) addPersonalTouches(text string) string {
	sentences := strings.Split(text, sentenceSeparator)
	for i, s := range sentences {
		if i >= personalTouchSentences {
			break
		}
		if h.rand.Float64() < personalTouchChance {
			sentences[i] = h.pick(personalTouches) + " " + lowerFirst(s)
		}
	}
	return strings.Join(sentences, sentenceSeparator)
}

func (h *Humanizer) addPersonalExperiences(text string) string {
	paragraphs := strings.Split(text, paragraphSeparator)
	for i := 1; i < len(paragraphs); i++ {
		if h.rand.Float64() < experienceChance {
			paragraphs[i] = h.pick(personalExperiences) + " " + lowerFirst(paragraphs[i])
		}
	}
	return strings.Join(paragraphs, paragraphSeparator)
}

func (h *Humanizer) addFillerWords(text string) string {
	sentences := strings.Split(text, sentenceSeparator)
	for i, s := range sentences {
		if h.rand.Float64() >= fillerChance {
			continue
		}
		filler := h.pick(fillerWords)
		words := strings.Split(s, " ")
		pos := 1
		if len(words) > 1 {
			pos = h.rand.Intn(len(words)-1) + 1
		}
		withFiller := make([]string, 0, len(words)+1)
		withFiller = append(withFiller, words[:pos]...)
		withFiller = append(withFiller, filler+",")
		withFiller = append(withFiller, words[pos:]...)
		sentences[i] = strings.Join(withFiller, " ")
	}
	return strings.Join(sentences, sentenceSeparator)
}

func (h *Humanizer) addEmotions(text string) string {
	sentences := strings.Split(text, sentenceSeparator)
	for i := emotionSkippedSentences; i < len(sentences); i++ {
		if h.rand.Float64() < emotionChance {
			sentences[i] = h.pick(emotions) + " " + strings.ToLower(sentences[i])
		}
	}
	return strings.Join(sentences, sentenceSeparator)
}

func (h *Humanizer) addInformalSpellings(text string) string {
	for _, r := range informalRules {
		if h.rand.Float64() < informalSpellingChance {
			text = r.pattern.ReplaceAllLiteralString(text, r.to)
		}
	}
	return text
}

func (h *Humanizer) pick(phrases []string) string {
	return phrases[h.rand.Intn(len(phrases))]
}

// lowerFirst lower-cases the first rune of s.
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
