// Package humanizer rewrites AI-generated text so that it reads less mechanically.
//
// The rewrite is a fixed pipeline of rule-based stages. The two lexical stages
// (contractions and casual vocabulary) are deterministic; the remaining stages
// inject phrases with fixed probabilities drawn from an injectable random source.
package humanizer

import (
	"sort"
)

// Profile is a resolved set of pipeline toggles.
// Every field is explicit; use Options when some flags should fall back to defaults.
type Profile struct {
	AddPersonalTouch       bool `json:"addPersonalTouch"`
	AddTypos               bool `json:"addTypos"`
	AddContractions        bool `json:"addContractions"`
	AddFillerWords         bool `json:"addFillerWords"`
	AddEmotions            bool `json:"addEmotions"`
	AddPersonalExperiences bool `json:"addPersonalExperiences"`
	AddCasualLanguage      bool `json:"addCasualLanguage"`
}

// Names of the predefined profiles.
const (
	ProfileSubtle       = "subtle"
	ProfileModerate     = "moderate"
	ProfileHeavy        = "heavy"
	ProfileProfessional = "professional"
	ProfileCasual       = "casual"

	// DefaultProfileName is used when a caller asks for a named profile without naming one.
	DefaultProfileName = ProfileModerate
)

// profiles holds the predefined profiles. It is never mutated after init;
// LookupProfile hands out copies.
var profiles = map[string]Profile{
	ProfileSubtle: {
		AddContractions:   true,
		AddCasualLanguage: true,
	},
	ProfileModerate: {
		AddPersonalTouch:  true,
		AddContractions:   true,
		AddFillerWords:    true,
		AddCasualLanguage: true,
	},
	ProfileHeavy: {
		AddPersonalTouch:       true,
		AddTypos:               true,
		AddContractions:        true,
		AddFillerWords:         true,
		AddEmotions:            true,
		AddPersonalExperiences: true,
		AddCasualLanguage:      true,
	},
	ProfileProfessional: {
		AddPersonalTouch:       true,
		AddPersonalExperiences: true,
	},
	ProfileCasual: {
		AddPersonalTouch:       true,
		AddTypos:               true,
		AddContractions:        true,
		AddFillerWords:         true,
		AddEmotions:            true,
		AddPersonalExperiences: true,
		AddCasualLanguage:      true,
	},
}

// LookupProfile returns the predefined profile registered under name.
func LookupProfile(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// ProfileNames returns the names of all predefined profiles in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options is the loosely specified form of a Profile, as it arrives from
// callers that only set the flags they care about.
type Options struct {
	AddPersonalTouch       *bool `json:"addPersonalTouch,omitempty"`
	AddTypos               *bool `json:"addTypos,omitempty"`
	AddContractions        *bool `json:"addContractions,omitempty"`
	AddFillerWords         *bool `json:"addFillerWords,omitempty"`
	AddEmotions            *bool `json:"addEmotions,omitempty"`
	AddPersonalExperiences *bool `json:"addPersonalExperiences,omitempty"`
	AddCasualLanguage      *bool `json:"addCasualLanguage,omitempty"`
}

// Profile resolves the options into a Profile.
// Contractions and casual vocabulary are on unless explicitly disabled;
// every injection stage is off unless explicitly enabled.
func (o Options) Profile() Profile {
	return Profile{
		AddPersonalTouch:       valueOr(o.AddPersonalTouch, false),
		AddTypos:               valueOr(o.AddTypos, false),
		AddContractions:        valueOr(o.AddContractions, true),
		AddFillerWords:         valueOr(o.AddFillerWords, false),
		AddEmotions:            valueOr(o.AddEmotions, false),
		AddPersonalExperiences: valueOr(o.AddPersonalExperiences, false),
		AddCasualLanguage:      valueOr(o.AddCasualLanguage, true),
	}
}

func valueOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}

// IsDeterministic reports whether the profile enables only the lexical stages,
// in which case Humanize is a pure function of its input.
func (p Profile) IsDeterministic() bool {
	return !p.AddPersonalTouch &&
		!p.AddTypos &&
		!p.AddFillerWords &&
		!p.AddEmotions &&
		!p.AddPersonalExperiences
}
