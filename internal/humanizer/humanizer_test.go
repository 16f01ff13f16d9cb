package humanizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productforge/backend/internal/humanizer"
)

// scriptedRand replays fixed draws and panics when a stage draws more than scripted.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		panic("unexpected Float64 draw")
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.ints) == 0 {
		panic("unexpected Intn draw")
	}
	i := s.ints[0]
	s.ints = s.ints[1:]
	if i >= n {
		panic("scripted Intn out of range")
	}
	return i
}

func boolPtr(b bool) *bool { return &b }

func lexicalOnly() humanizer.Profile {
	return humanizer.Profile{AddContractions: true, AddCasualLanguage: true}
}

func TestHumanize_Contractions(t *testing.T) {
	h := humanizer.New(&scriptedRand{})

	out := h.Humanize("I do not know", humanizer.Profile{AddContractions: true})

	assert.Contains(t, out, "don't")
	assert.NotContains(t, out, "do not")
	assert.Equal(t, "I don't know", out)
}

func TestHumanize_ContractionsAreCaseInsensitive(t *testing.T) {
	h := humanizer.New(&scriptedRand{})

	out := h.Humanize("Do Not enter. THEY ARE here", humanizer.Profile{AddContractions: true})

	assert.Equal(t, "don't enter. they're here", out)
}

func TestHumanize_WholeWordsOnly(t *testing.T) {
	h := humanizer.New(&scriptedRand{})

	out := h.Humanize("Donation do not include X", lexicalOnly())

	assert.True(t, strings.HasPrefix(out, "Donation "))
	assert.Contains(t, out, "don't")
	assert.Equal(t, "Donation don't include X", out)
}

func TestHumanize_CasualVocabulary(t *testing.T) {
	h := humanizer.New(&scriptedRand{})

	out := h.Humanize("We utilize this", humanizer.Profile{AddCasualLanguage: true})

	assert.Contains(t, out, "use")
	assert.NotContains(t, out, "utilize")
}

func TestHumanize_CasualVocabularyPhrases(t *testing.T) {
	h := humanizer.New(&scriptedRand{})

	tests := []struct {
		in   string
		want string
	}{
		{"We must prioritize quality", "We must focus on quality"},
		{"Furthermore, it works", "also, it works"},
		{"Consequently we ship", "as a result we ship"},
		{"implementation stays", "implementation stays"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Humanize(tt.in, humanizer.Profile{AddCasualLanguage: true}))
		})
	}
}

func TestHumanize_EmptyInput(t *testing.T) {
	h := humanizer.New(&scriptedRand{})

	for _, name := range humanizer.ProfileNames() {
		t.Run(name, func(t *testing.T) {
			p, ok := humanizer.LookupProfile(name)
			require.True(t, ok)
			assert.Equal(t, "", h.Humanize("", p))
		})
	}
}

func TestHumanize_LexicalOnlyIsDeterministic(t *testing.T) {
	text := "I cannot say. However, we will not utilize it. It is fine\n\nThey are done"
	p := lexicalOnly()
	require.True(t, p.IsDeterministic())

	first := humanizer.New(humanizer.NewSeededRand(1)).Humanize(text, p)
	for seed := int64(2); seed < 20; seed++ {
		assert.Equal(t, first, humanizer.New(humanizer.NewSeededRand(seed)).Humanize(text, p))
	}
	// The scripted source panics on any draw.
	assert.Equal(t, first, humanizer.New(&scriptedRand{}).Humanize(text, p))
}

func TestHumanize_PersonalTouch(t *testing.T) {
	// Only the first three sentences draw; the fourth is never considered.
	r := &scriptedRand{floats: []float64{0.1, 0.9, 0.29}, ints: []int{7, 0}}
	h := humanizer.New(r)

	out := h.Humanize("One. Two. Three. Four", humanizer.Profile{AddPersonalTouch: true})

	assert.Equal(t, "I think one. Two. In my experience, three. Four", out)
	assert.Empty(t, r.floats)
	assert.Empty(t, r.ints)
}

func TestHumanize_PersonalExperience(t *testing.T) {
	// The first paragraph never draws.
	r := &scriptedRand{floats: []float64{0.19, 0.5}, ints: []int{5}}
	h := humanizer.New(r)

	out := h.Humanize("Intro\n\nMiddle part\n\nEnd", humanizer.Profile{AddPersonalExperiences: true})

	assert.Equal(t, "Intro\n\nBack in the day, middle part\n\nEnd", out)
	assert.Empty(t, r.floats)
}

func TestHumanize_FillerWords(t *testing.T) {
	r := &scriptedRand{floats: []float64{0.1, 0.5}, ints: []int{0, 1}}
	h := humanizer.New(r)

	out := h.Humanize("This is a test. Leave me", humanizer.Profile{AddFillerWords: true})

	assert.Equal(t, "This is actually, a test. Leave me", out)
}

func TestHumanize_FillerWordsSingleWordSentence(t *testing.T) {
	// A single-word sentence takes the filler after its only word without a position draw.
	r := &scriptedRand{floats: []float64{0.0}, ints: []int{15}}
	h := humanizer.New(r)

	out := h.Humanize("Hello", humanizer.Profile{AddFillerWords: true})

	assert.Equal(t, "Hello well,", out)
	assert.Empty(t, r.ints)
}

func TestHumanize_Emotions(t *testing.T) {
	// Sentences 0 and 1 never draw.
	r := &scriptedRand{floats: []float64{0.05}, ints: []int{1}}
	h := humanizer.New(r)

	out := h.Humanize("A. B. The Third One", humanizer.Profile{AddEmotions: true})

	assert.Equal(t, "A. B. I love how the third one", out)
}

func TestHumanize_InformalSpellings(t *testing.T) {
	// One draw per pair, in table order; only "going to" fires.
	floats := make([]float64, 10)
	for i := range floats {
		floats[i] = 0.9
	}
	floats[1] = 0.01
	r := &scriptedRand{floats: floats}
	h := humanizer.New(r)

	out := h.Humanize("I am Going to go, going to stay", humanizer.Profile{AddTypos: true})

	assert.Equal(t, "I am gonna go, gonna stay", out)
	assert.Empty(t, r.floats)
}

func TestHumanize_DoesNotPanic(t *testing.T) {
	h := humanizer.New(humanizer.NewSeededRand(42))
	p, _ := humanizer.LookupProfile(humanizer.ProfileCasual)

	inputs := []string{" ", ". ", "\n\n", ". . .", "\n\n\n\n", "Ünïcode. Éclair", "a"}
	for i := 0; i < 200; i++ {
		for _, in := range inputs {
			assert.NotPanics(t, func() { h.Humanize(in, p) })
		}
	}
}

func TestHumanize_PersonalTouchRate(t *testing.T) {
	const trials = 10000
	h := humanizer.New(humanizer.NewSeededRand(20240601))
	p := humanizer.Profile{AddPersonalTouch: true}

	injected := 0
	for i := 0; i < trials; i++ {
		if h.Humanize("this sentence stands alone", p) != "this sentence stands alone" {
			injected++
		}
	}

	rate := float64(injected) / trials
	assert.InDelta(t, 0.3, rate, 0.03)
}

func TestHumanizeWithProfile(t *testing.T) {
	h := humanizer.New(humanizer.NewSeededRand(7))

	out, err := h.HumanizeWithProfile("I do not know", humanizer.ProfileSubtle)
	require.NoError(t, err)
	assert.Equal(t, "I don't know", out)

	_, err = h.HumanizeWithProfile("text", "shouting")
	assert.ErrorIs(t, err, humanizer.ErrUnknownProfile)

	out, err = h.HumanizeWithProfile("", "")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestHumanizeWithProfile_ProfessionalKeepsFormalWording(t *testing.T) {
	// Professional disables both lexical stages; with draws that never fire the text is untouched.
	h := humanizer.New(&scriptedRand{floats: []float64{0.99, 0.99}})

	out, err := h.HumanizeWithProfile("We do not utilize it\n\nSecond", humanizer.ProfileProfessional)

	require.NoError(t, err)
	assert.Equal(t, "We do not utilize it\n\nSecond", out)
}
