// Package domain contains core business types and interfaces.
//
// This file defines the static checklist schemas for each report type.
// A schema is the ordered list of sections and component names that an
// inspection record of that type is built from.
package domain

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// Report Type
// =============================================================================

// ReportType selects which checklist schema applies to an inspection.
type ReportType string

const (
	// ReportTypeStandard is the baseline pre-purchase inspection.
	ReportTypeStandard ReportType = "standard"

	// ReportTypeEnhanced adds drivetrain, electrical, and road-test sections.
	ReportTypeEnhanced ReportType = "enhanced"

	// ReportTypeFullSpectrum is the most thorough variant, adding diagnostics,
	// emissions, undercarriage, and price-negotiation data.
	ReportTypeFullSpectrum ReportType = "full-spectrum"

	// ReportTypeRoutine is a short maintenance check-up.
	ReportTypeRoutine ReportType = "routine"
)

// String returns the string representation of the report type.
func (t ReportType) String() string {
	return string(t)
}

// IsValid returns true if the report type is a recognized value.
func (t ReportType) IsValid() bool {
	switch t {
	case ReportTypeStandard, ReportTypeEnhanced, ReportTypeFullSpectrum, ReportTypeRoutine:
		return true
	}
	return false
}

// =============================================================================
// Schema Types
// =============================================================================

// SectionDef describes one checklist section within a schema: its stable
// key, display title, and the ordered component names it inspects.
type SectionDef struct {
	Key        string
	Title      string
	Components []string
}

// Schema is the ordered list of sections for one report type.
type Schema []SectionDef

// TotalComponents returns the number of checklist items across all sections.
func (s Schema) TotalComponents() int {
	n := 0
	for _, sec := range s {
		n += len(sec.Components)
	}
	return n
}

// Section returns the section definition for the given key, if present.
func (s Schema) Section(key string) (SectionDef, bool) {
	for _, sec := range s {
		if sec.Key == key {
			return sec, true
		}
	}
	return SectionDef{}, false
}

// =============================================================================
// Section Tables
// =============================================================================

// Section keys shared across schemas. Keys are stable identifiers persisted
// with every report; renaming one is a breaking data change.
const (
	SectionBodyCondition    = "bodyCondition"
	SectionLights           = "lights"
	SectionWheelsTires      = "wheelsTires"
	SectionBrakes           = "brakes"
	SectionEngine           = "engine"
	SectionSteering         = "steering"
	SectionSuspension       = "suspension"
	SectionInterior         = "interior"
	SectionElectrical       = "electrical"
	SectionTransmission     = "transmission"
	SectionExhaust          = "exhaust"
	SectionTestDrive        = "testDrive"
	SectionSafetyRestraints = "safetyRestraints"
	SectionDiagnostics      = "diagnostics"
	SectionEmissions        = "emissions"
	SectionUndercarriage    = "undercarriage"
	SectionFluids           = "fluids"
	SectionBattery          = "battery"
)

var sectionBodyCondition = SectionDef{
	Key:   SectionBodyCondition,
	Title: "Body Condition",
	Components: []string{
		"Paint Condition",
		"Body Panels",
		"Rust or Corrosion",
		"Glass & Mirrors",
		"Doors & Locks",
	},
}

var sectionLights = SectionDef{
	Key:   SectionLights,
	Title: "Lights",
	Components: []string{
		"Headlights",
		"Brake Lights",
		"Turn Signals",
		"Reverse Lights",
		"Interior Lighting",
	},
}

var sectionWheelsTires = SectionDef{
	Key:   SectionWheelsTires,
	Title: "Tires & Wheels",
	Components: []string{
		"Tire Tread Depth",
		"Tire Wear Pattern",
		"Tire Age & Condition",
		"Wheels & Rims",
		"Spare Tire",
	},
}

var sectionBrakes = SectionDef{
	Key:   SectionBrakes,
	Title: "Brakes",
	Components: []string{
		"Brake Pads",
		"Brake Discs",
		"Brake Lines",
		"Parking Brake",
		"Brake Fluid",
	},
}

var sectionEngine = SectionDef{
	Key:   SectionEngine,
	Title: "Engine",
	Components: []string{
		"Engine Oil Level & Condition",
		"Coolant Level & Condition",
		"Drive Belts",
		"Hoses",
		"Engine Mounts",
		"Fluid Leaks",
		"Engine Noise",
	},
}

var sectionSteering = SectionDef{
	Key:   SectionSteering,
	Title: "Steering",
	Components: []string{
		"Steering Response",
		"Power Steering Fluid",
		"Tie Rods",
		"Ball Joints",
	},
}

var sectionSuspension = SectionDef{
	Key:   SectionSuspension,
	Title: "Suspension",
	Components: []string{
		"Shock Absorbers",
		"Springs",
		"Bushings",
		"Wheel Bearings",
	},
}

var sectionInterior = SectionDef{
	Key:   SectionInterior,
	Title: "Interior",
	Components: []string{
		"Seats & Upholstery",
		"Dashboard Warning Lights",
		"Climate Control",
		"Infotainment System",
		"Horn",
	},
}

var sectionElectrical = SectionDef{
	Key:   SectionElectrical,
	Title: "Electrical System",
	Components: []string{
		"Battery Condition",
		"Alternator Output",
		"Starter Motor",
		"Wiring Condition",
		"Fuses & Relays",
	},
}

var sectionTransmission = SectionDef{
	Key:   SectionTransmission,
	Title: "Transmission & Drivetrain",
	Components: []string{
		"Transmission Fluid",
		"Gear Engagement",
		"Clutch Operation",
		"Transmission Mounts",
	},
}

var sectionExhaust = SectionDef{
	Key:   SectionExhaust,
	Title: "Exhaust System",
	Components: []string{
		"Exhaust Manifold",
		"Catalytic Converter",
		"Muffler & Pipes",
		"Exhaust Smoke",
	},
}

var sectionTestDrive = SectionDef{
	Key:   SectionTestDrive,
	Title: "Test Drive",
	Components: []string{
		"Cold Start",
		"Acceleration",
		"Braking Performance",
		"Gear Changes",
		"Cabin Noise",
	},
}

var sectionSafetyRestraints = SectionDef{
	Key:   SectionSafetyRestraints,
	Title: "Seat Belts & Airbags",
	Components: []string{
		"Seat Belt Operation",
		"Seat Belt Webbing",
		"Airbag Warning Lamp",
		"Child Seat Anchors",
	},
}

var sectionDiagnostics = SectionDef{
	Key:   SectionDiagnostics,
	Title: "Computer Diagnostics",
	Components: []string{
		"OBD Fault Codes",
		"Readiness Monitors",
		"Live Sensor Data",
		"ECU Software Status",
	},
}

var sectionEmissions = SectionDef{
	Key:   SectionEmissions,
	Title: "Emissions",
	Components: []string{
		"Emissions Test Result",
		"EVAP System",
		"EGR Valve",
		"Oxygen Sensors",
	},
}

var sectionUndercarriage = SectionDef{
	Key:   SectionUndercarriage,
	Title: "Undercarriage",
	Components: []string{
		"Frame & Subframe",
		"Floor Pan",
		"Fuel Lines",
		"Driveshaft & CV Joints",
	},
}

var sectionFluids = SectionDef{
	Key:   SectionFluids,
	Title: "Fluids",
	Components: []string{
		"Engine Oil",
		"Coolant",
		"Brake Fluid",
		"Washer Fluid",
		"Power Steering Fluid",
	},
}

var sectionBattery = SectionDef{
	Key:   SectionBattery,
	Title: "Battery",
	Components: []string{
		"Battery Terminals",
		"Battery Charge",
	},
}

var sectionRoutineLights = SectionDef{
	Key:   SectionLights,
	Title: "Lights",
	Components: []string{
		"Headlights",
		"Brake Lights",
		"Turn Signals",
	},
}

var sectionRoutineWheelsTires = SectionDef{
	Key:   SectionWheelsTires,
	Title: "Tires & Wheels",
	Components: []string{
		"Tire Pressure",
		"Tread Depth",
		"Visual Condition",
	},
}

var sectionRoutineBrakes = SectionDef{
	Key:   SectionBrakes,
	Title: "Brakes",
	Components: []string{
		"Pad Wear",
		"Brake Feel",
	},
}

// =============================================================================
// Schemas Per Report Type
// =============================================================================

var standardSchema = Schema{
	sectionBodyCondition,
	sectionLights,
	sectionWheelsTires,
	sectionBrakes,
	sectionEngine,
	sectionSteering,
	sectionSuspension,
	sectionInterior,
}

var enhancedSchema = Schema{
	sectionBodyCondition,
	sectionLights,
	sectionWheelsTires,
	sectionBrakes,
	sectionEngine,
	sectionSteering,
	sectionSuspension,
	sectionInterior,
	sectionElectrical,
	sectionTransmission,
	sectionExhaust,
	sectionTestDrive,
}

var fullSpectrumSchema = Schema{
	sectionBodyCondition,
	sectionLights,
	sectionWheelsTires,
	sectionBrakes,
	sectionEngine,
	sectionSteering,
	sectionSuspension,
	sectionSafetyRestraints,
	sectionInterior,
	sectionElectrical,
	sectionTransmission,
	sectionExhaust,
	sectionUndercarriage,
	sectionDiagnostics,
	sectionEmissions,
	sectionTestDrive,
}

var routineSchema = Schema{
	sectionFluids,
	sectionRoutineLights,
	sectionRoutineWheelsTires,
	sectionRoutineBrakes,
	sectionBattery,
}

var schemasByType = map[ReportType]Schema{
	ReportTypeStandard:     standardSchema,
	ReportTypeEnhanced:     enhancedSchema,
	ReportTypeFullSpectrum: fullSpectrumSchema,
	ReportTypeRoutine:      routineSchema,
}

// GetSchema returns the checklist schema for the given report type.
// Returns an ESCHEMA error for unknown report types.
func GetSchema(reportType ReportType) (Schema, error) {
	const op = "schema.get"

	schema, ok := schemasByType[reportType]
	if !ok {
		return nil, Errorf(ESCHEMA, op, "unknown report type: %q", reportType)
	}
	return schema, nil
}

// =============================================================================
// Section Ordering and Titles
// =============================================================================

// canonicalSectionOrder is the fixed display order used by report assembly
// to re-sort an otherwise unordered section map. It is the union of all
// schema section keys; keys not listed sort last in name order.
var canonicalSectionOrder = []string{
	SectionBodyCondition,
	SectionLights,
	SectionWheelsTires,
	SectionBrakes,
	SectionFluids,
	SectionEngine,
	SectionSteering,
	SectionSuspension,
	SectionSafetyRestraints,
	SectionInterior,
	SectionElectrical,
	SectionBattery,
	SectionTransmission,
	SectionExhaust,
	SectionUndercarriage,
	SectionDiagnostics,
	SectionEmissions,
	SectionTestDrive,
}

// sectionTitles maps section keys to display titles for sections that need
// more than generic capitalization (e.g. "wheelsTires" -> "Tires & Wheels").
var sectionTitles = map[string]string{
	SectionBodyCondition:    "Body Condition",
	SectionLights:           "Lights",
	SectionWheelsTires:      "Tires & Wheels",
	SectionBrakes:           "Brakes",
	SectionFluids:           "Fluids",
	SectionEngine:           "Engine",
	SectionSteering:         "Steering",
	SectionSuspension:       "Suspension",
	SectionSafetyRestraints: "Seat Belts & Airbags",
	SectionInterior:         "Interior",
	SectionElectrical:       "Electrical System",
	SectionBattery:          "Battery",
	SectionTransmission:     "Transmission & Drivetrain",
	SectionExhaust:          "Exhaust System",
	SectionUndercarriage:    "Undercarriage",
	SectionDiagnostics:      "Computer Diagnostics",
	SectionEmissions:        "Emissions",
	SectionTestDrive:        "Test Drive",
}

var titleCaser = cases.Title(language.English)

// SectionTitle returns the display title for a section key.
// Keys without a static mapping fall back to splitting the camelCase key
// into title-cased words ("oilSystem" -> "Oil System").
func SectionTitle(key string) string {
	if title, ok := sectionTitles[key]; ok {
		return title
	}

	// Generic fallback: split camelCase into words.
	var words []rune
	for i, r := range key {
		if i > 0 && r >= 'A' && r <= 'Z' {
			words = append(words, ' ')
		}
		words = append(words, r)
	}
	return titleCaser.String(string(words))
}

// SectionOrderIndex returns the canonical sort position for a section key.
// Unknown keys sort after all known keys.
func SectionOrderIndex(key string) int {
	for i, k := range canonicalSectionOrder {
		if k == key {
			return i
		}
	}
	return len(canonicalSectionOrder)
}

// sortSectionKeys orders keys by canonical position, falling back to name
// order for keys outside the canonical list.
func sortSectionKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		oi, oj := SectionOrderIndex(keys[i]), SectionOrderIndex(keys[j])
		if oi != oj {
			return oi < oj
		}
		return keys[i] < keys[j]
	})
}

// =============================================================================
// Safety-Relevant Sections
// =============================================================================

// safetySections are the categories weighted more heavily in recommendation
// derivation: brakes, steering, seat belts, airbags, lights, and tires.
var safetySections = map[string]bool{
	SectionBrakes:           true,
	SectionSteering:         true,
	SectionSafetyRestraints: true,
	SectionLights:           true,
	SectionWheelsTires:      true,
}

// IsSafetySection returns true if the section key is safety-relevant.
func IsSafetySection(key string) bool {
	return safetySections[key]
}
