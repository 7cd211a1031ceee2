package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSchema(t *testing.T) {
	for _, reportType := range []ReportType{
		ReportTypeStandard, ReportTypeEnhanced, ReportTypeFullSpectrum, ReportTypeRoutine,
	} {
		t.Run(reportType.String(), func(t *testing.T) {
			schema, err := GetSchema(reportType)
			require.NoError(t, err)
			assert.NotEmpty(t, schema)

			seen := make(map[string]bool)
			for _, def := range schema {
				assert.NotEmpty(t, def.Key)
				assert.NotEmpty(t, def.Title)
				assert.NotEmpty(t, def.Components, "section %s has no components", def.Key)
				assert.False(t, seen[def.Key], "duplicate section key %s", def.Key)
				seen[def.Key] = true
			}
		})
	}
}

func TestGetSchemaUnknownType(t *testing.T) {
	_, err := GetSchema(ReportType("premium"))
	require.Error(t, err)
	assert.Equal(t, ESCHEMA, ErrorCode(err))
}

func TestFullSpectrumHasMostSections(t *testing.T) {
	full, err := GetSchema(ReportTypeFullSpectrum)
	require.NoError(t, err)

	for _, other := range []ReportType{ReportTypeStandard, ReportTypeEnhanced, ReportTypeRoutine} {
		schema, err := GetSchema(other)
		require.NoError(t, err)
		assert.Greater(t, len(full), len(schema), "full-spectrum should have more sections than %s", other)
	}
}

func TestSectionTitle(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{SectionWheelsTires, "Tires & Wheels"},
		{SectionBodyCondition, "Body Condition"},
		{SectionSafetyRestraints, "Seat Belts & Airbags"},
		// Unmapped keys fall back to camelCase splitting.
		{"oilSystem", "Oil System"},
		{"misc", "Misc"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, SectionTitle(tt.key))
		})
	}
}

func TestSectionOrdering(t *testing.T) {
	assert.Less(t, SectionOrderIndex(SectionBodyCondition), SectionOrderIndex(SectionEngine))
	assert.Less(t, SectionOrderIndex(SectionEngine), SectionOrderIndex(SectionTestDrive))

	// Unknown keys sort after every canonical key.
	assert.Greater(t, SectionOrderIndex("zzzCustom"), SectionOrderIndex(SectionTestDrive))
}

func TestIsSafetySection(t *testing.T) {
	for _, key := range []string{SectionBrakes, SectionSteering, SectionSafetyRestraints, SectionLights, SectionWheelsTires} {
		assert.True(t, IsSafetySection(key), "%s should be safety-relevant", key)
	}
	for _, key := range []string{SectionBodyCondition, SectionInterior, SectionEngine} {
		assert.False(t, IsSafetySection(key), "%s should not be safety-relevant", key)
	}
}
