package model

import "strings"

// VerificationStatus is the verdict a verification response carries
type VerificationStatus string

const (
	StatusVerified      VerificationStatus = "VERIFIED"
	StatusUnverified    VerificationStatus = "UNVERIFIED"
	StatusInappropriate VerificationStatus = "INAPPROPRIATE"
)

// Verification is the parsed verdict on whether a figure is a suitable style source.
// TimePeriod, PrimaryMedium and WritingVolume are empty when the response omitted them.
type Verification struct {
	FigureName       string             `json:"figure_name"`
	Status           VerificationStatus `json:"status"`
	Reason           string             `json:"reason"`
	AvailableSources string             `json:"available_sources"`
	Concerns         string             `json:"concerns"`
	TimePeriod       string             `json:"time_period,omitempty"`
	PrimaryMedium    string             `json:"primary_medium,omitempty"`
	WritingVolume    string             `json:"writing_volume,omitempty"`
}

// IsVerified reports whether the figure was verified
func (v Verification) IsVerified() bool {
	return v.Status == StatusVerified
}

// IsKnownStatus reports whether Status is one of the three defined verdicts.
// Parsers keep unrecognised statuses verbatim.
func (v Verification) IsKnownStatus() bool {
	switch v.Status {
	case StatusVerified, StatusUnverified, StatusInappropriate:
		return true
	}
	return false
}

// NormalizeStatus trims and upper-cases a raw status value
func NormalizeStatus(raw string) VerificationStatus {
	return VerificationStatus(strings.ToUpper(strings.TrimSpace(raw)))
}
