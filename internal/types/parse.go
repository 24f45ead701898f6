package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidHealthValue       = errors.New("invalid health value")
	ErrInvalidDietaryPreference = errors.New("invalid dietary preference")
)

var diseaseSanitizer = regexp.MustCompile(`[^a-zA-Z0-9\s-]`)

// SanitizeDisease strips everything except letters, digits, whitespace and hyphens.
func SanitizeDisease(name string) string {
	return strings.TrimSpace(diseaseSanitizer.ReplaceAllString(name, ""))
}

// SanitizeDiseases sanitizes every name and drops the ones left empty.
func SanitizeDiseases(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if clean := SanitizeDisease(n); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

// ParseSeverity is case-insensitive and falls back to Moderate.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mild":
		return SeverityMild
	case "moderate":
		return SeverityModerate
	case "severe":
		return SeveritySevere
	}
	return SeverityModerate
}

// ParseDietaryPreference accepts the canonical labels case-insensitively.
func ParseDietaryPreference(s string) (DietaryPreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "veg", "vegetarian":
		return DietVeg, nil
	case "vegan":
		return DietVegan, nil
	case "non-veg", "nonveg", "non veg", "non-vegetarian":
		return DietNonVeg, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDietaryPreference, s)
}

// ParseReading converts a raw health value into a number. Blank input is zero.
// Hypertension readings may be written as "systolic/diastolic"; only the
// systolic part is kept.
func ParseReading(cond Condition, raw string) (float64, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, nil
	}
	if cond == Hypertension {
		if i := strings.Index(v, "/"); i >= 0 {
			v = strings.TrimSpace(v[:i])
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidHealthValue, cond, raw)
	}
	return f, nil
}

// RawReading is a health value as submitted by a client. It accepts JSON
// numbers and strings so "130/85" style readings survive decoding.
type RawReading string

func (r *RawReading) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*r = RawReading(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidHealthValue, string(b))
	}
	*r = RawReading(n.String())
	return nil
}
