// Package service provides the business logic of the ProductForge API.
// Services sit between the HTTP handlers and the text engines, resolving
// caller input into engine calls and recording what happened.
//
// This file implements the humanize service, which turns profile names or
// loose option sets into a concrete humanizer profile and rewrites text with it.
package service

import (
	"context"
	"unicode/utf8"

	"github.com/productforge/backend/internal/constants"
	"github.com/productforge/backend/internal/humanizer"
	"github.com/productforge/backend/internal/utils"
)

// ProfileCustom is reported as the profile name when a request supplied explicit options.
const ProfileCustom = "custom"

// HumanizeInput is a single humanization request.
// At most one of Profile and Options may be set.
type HumanizeInput struct {
	Text    string
	Profile string
	Options *humanizer.Options
}

// HumanizeOutput is the rewritten text together with the profile that produced it.
type HumanizeOutput struct {
	Text    string `json:"text"`
	Profile string `json:"profile"`
}

// ProfileInfo describes one predefined profile.
type ProfileInfo struct {
	Name    string            `json:"name"`
	Flags   humanizer.Profile `json:"flags"`
	Default bool              `json:"default"`
}

// HumanizeService rewrites text with the configured humanizer.
type HumanizeService struct {
	humanizer      *humanizer.Humanizer
	defaultProfile string
}

// NewHumanizeService creates a new HumanizeService.
//
// Parameters:
//   - h: The humanizer used for every request
//   - defaultProfile: The profile applied when a request names none; an unknown
//     or empty name falls back to the moderate profile
//
// Returns:
//   - A configured HumanizeService
func NewHumanizeService(h *humanizer.Humanizer, defaultProfile string) *HumanizeService {
	if _, ok := humanizer.LookupProfile(defaultProfile); !ok {
		defaultProfile = humanizer.DefaultProfileName
	}
	return &HumanizeService{
		humanizer:      h,
		defaultProfile: defaultProfile,
	}
}

// Humanize rewrites the input text.
//
// Parameters:
//   - ctx: Context for the operation
//   - in: The text and the profile selection
//
// Returns:
//   - The rewritten text and the name of the profile used
//   - A validation error when both a profile and options are given, or the
//     profile name is unknown
func (s *HumanizeService) Humanize(ctx context.Context, in HumanizeInput) (*HumanizeOutput, error) {
	if in.Profile != "" && in.Options != nil {
		return nil, utils.NewValidationError("options", "Provide either a profile or options, not both")
	}

	name, profile, err := s.resolve(in)
	if err != nil {
		return nil, err
	}

	text := s.humanizer.Humanize(in.Text, profile)
	utils.LogHumanize(name, utf8.RuneCountInString(in.Text), utf8.RuneCountInString(text))

	return &HumanizeOutput{Text: text, Profile: name}, nil
}

func (s *HumanizeService) resolve(in HumanizeInput) (string, humanizer.Profile, error) {
	if in.Options != nil {
		return ProfileCustom, in.Options.Profile(), nil
	}

	name := in.Profile
	if name == "" {
		name = s.defaultProfile
	}
	profile, ok := humanizer.LookupProfile(name)
	if !ok {
		return "", humanizer.Profile{}, utils.NewValidationError("profile", constants.MsgUnknownProfile)
	}
	return name, profile, nil
}

// Profiles lists the predefined profiles in name order.
func (s *HumanizeService) Profiles() []ProfileInfo {
	names := humanizer.ProfileNames()
	infos := make([]ProfileInfo, 0, len(names))
	for _, name := range names {
		p, _ := humanizer.LookupProfile(name)
		infos = append(infos, ProfileInfo{
			Name:    name,
			Flags:   p,
			Default: name == s.defaultProfile,
		})
	}
	return infos
}

// DefaultProfile returns the profile applied when a request names none.
func (s *HumanizeService) DefaultProfile() string {
	return s.defaultProfile
}
