package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReading(t *testing.T) {
	tests := []struct {
		name    string
		cond    Condition
		raw     string
		want    float64
		wantErr bool
	}{
		{"blank is zero", Diabetes, "", 0, false},
		{"plain number", Diabetes, "140", 140, false},
		{"decimal", Cholesterol, " 129.5 ", 129.5, false},
		{"blood pressure keeps systolic", Hypertension, "135/85", 135, false},
		{"blood pressure without diastolic", Hypertension, "118", 118, false},
		{"slash only parsed for hypertension", Diabetes, "120/80", 0, true},
		{"garbage", Diabetes, "high", 0, true},
		{"negative", Cholesterol, "-4", 0, true},
		{"nan", Diabetes, "NaN", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReading(tt.cond, tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidHealthValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSeverityDefaultsToModerate(t *testing.T) {
	assert.Equal(t, SeveritySevere, ParseSeverity("SEVERE"))
	assert.Equal(t, SeverityMild, ParseSeverity(" mild "))
	assert.Equal(t, SeverityModerate, ParseSeverity("extreme"))
	assert.Equal(t, SeverityModerate, ParseSeverity(""))
}

func TestParseDietaryPreference(t *testing.T) {
	d, err := ParseDietaryPreference("vegan")
	require.NoError(t, err)
	assert.Equal(t, DietVegan, d)

	d, err = ParseDietaryPreference("Non-Veg")
	require.NoError(t, err)
	assert.Equal(t, DietNonVeg, d)

	_, err = ParseDietaryPreference("carnivore")
	assert.ErrorIs(t, err, ErrInvalidDietaryPreference)
}

func TestSanitizeDiseases(t *testing.T) {
	got := SanitizeDiseases([]string{"Diabetes<script>", "  Type-2 Diabetes ", "!!!", "Hypertension;DROP"})
	assert.Equal(t, []string{"Diabetesscript", "Type-2 Diabetes", "HypertensionDROP"}, got)
}

func TestConditionFromDisease(t *testing.T) {
	c, ok := ConditionFromDisease("Type 2 Diabetes")
	assert.True(t, ok)
	assert.Equal(t, Diabetes, c)

	c, ok = ConditionFromDisease("High Blood Pressure")
	assert.True(t, ok)
	assert.Equal(t, Hypertension, c)

	c, ok = ConditionFromDisease("Blood Pressure")
	assert.True(t, ok)
	assert.Equal(t, Hypertension, c)

	for _, name := range []string{"Asthma", "Low Blood Pressure", "Hypotension"} {
		_, ok = ConditionFromDisease(name)
		assert.False(t, ok, name)
	}
}

func TestRawReadingAcceptsNumbersAndStrings(t *testing.T) {
	var values map[string]RawReading
	err := json.Unmarshal([]byte(`{"diabetes": 140, "hypertension": "130/85", "cholesterol": null}`), &values)
	require.NoError(t, err)

	assert.Equal(t, RawReading("140"), values["diabetes"])
	assert.Equal(t, RawReading("130/85"), values["hypertension"])
	assert.Equal(t, RawReading(""), values["cholesterol"])

	err = json.Unmarshal([]byte(`{"diabetes": [1]}`), &values)
	assert.Error(t, err)
}

func TestFoodItemOrderable(t *testing.T) {
	assert.True(t, FoodItem{}.Orderable())
	assert.False(t, FoodItem{StockQuantity: IntPtr(0)}.Orderable())
	assert.False(t, FoodItem{IsAvailable: BoolPtr(false)}.Orderable())
	assert.True(t, FoodItem{StockQuantity: IntPtr(2)}.HasStock(2))
	assert.False(t, FoodItem{StockQuantity: IntPtr(2)}.HasStock(3))
}

func TestHealthProfileLookups(t *testing.T) {
	p := DefaultProfile()
	p.Diseases = []string{"Diabetes"}
	p.Severities[Diabetes] = SeveritySevere

	assert.True(t, p.HasCondition(Diabetes))
	assert.False(t, p.HasCondition(Hypertension))
	assert.Equal(t, SeveritySevere, p.SeverityOf(Diabetes, SeverityModerate))
	assert.Equal(t, SeverityMild, p.SeverityOf(Hypertension, SeverityMild))
	assert.Equal(t, StatusNormal, p.StatusOf(Cholesterol))
}
