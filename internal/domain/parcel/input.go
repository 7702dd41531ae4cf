package parcel

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Field names of a parcel submission
const (
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldLengthCm    = "length_cm"
	FieldWidthCm     = "width_cm"
	FieldHeightCm    = "height_cm"
	FieldWeightKg    = "weight_kg"
	FieldUnits       = "units"
	FieldFragile     = "fragile"
	FieldFormToken   = "form_token"
)

// RawFields is an untyped form submission. Nothing in it is trusted until it
// has been parsed into an Input.
type RawFields map[string]string

// Get returns a field value or "" when absent
func (r RawFields) Get(name string) string {
	if r == nil {
		return ""
	}
	return r[name]
}

// Input is a parsed parcel submission. It is immutable once produced.
type Input struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	LengthCm    float64 `json:"length_cm"`
	WidthCm     float64 `json:"width_cm"`
	HeightCm    float64 `json:"height_cm"`
	WeightKg    float64 `json:"weight_kg"`
	Units       int     `json:"units"`
	Fragile     bool    `json:"fragile"`
}

// ParseInput shapes raw fields into an Input without validating them
func ParseInput(raw RawFields) Input {
	return Input{
		Category:    SanitizeText(raw.Get(FieldCategory)),
		Description: SanitizeText(raw.Get(FieldDescription)),
		LengthCm:    ParseNumber(raw.Get(FieldLengthCm)),
		WidthCm:     ParseNumber(raw.Get(FieldWidthCm)),
		HeightCm:    ParseNumber(raw.Get(FieldHeightCm)),
		WeightKg:    ParseNumber(raw.Get(FieldWeightKg)),
		Units:       ParseUnits(raw.Get(FieldUnits)),
		Fragile:     ParseFlag(raw.Get(FieldFragile)),
	}
}

// HasValidMeasurements reports whether every dimension and the weight are positive
func (in Input) HasValidMeasurements() bool {
	return in.LengthCm > 0 && in.WidthCm > 0 && in.HeightCm > 0 && in.WeightKg > 0
}

// ComputeVolumeM3 derives the volume in cubic metres from the dimensions.
// A priced Record carries the result as Quote.VolumeM3.
func (in Input) ComputeVolumeM3() float64 {
	return VolumeM3(in.LengthCm, in.WidthCm, in.HeightCm)
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// SanitizeText cleans a free-text field: invalid UTF-8, markup and control
// characters are removed, whitespace runs collapse to one space and the
// result is NFC normalised.
func SanitizeText(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = htmlTag.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")
	return norm.NFC.String(s)
}
