package catalog

import "separator-tco-backend/internal/parse"

// Specification is a single catalog entry. Entries are loaded once and
// never mutated.
type Specification struct {
	Application             string  `json:"application"`
	SubApplication          string  `json:"subApplication"`
	FeedSolidsMin           float64 `json:"feedSolidsMin"`
	FeedSolidsMax           float64 `json:"feedSolidsMax"`
	CapacityMin             float64 `json:"capacityMinInp"`
	CapacityMax             float64 `json:"capacityMaxInp"`
	DriveType               string  `json:"driveType"`
	Level                   string  `json:"level"`
	ModelNumber             string  `json:"modelNumber"`
	BowlDiameterMM          float64 `json:"bowlDiameter"`
	ListPrice               float64 `json:"listPrice"`
	MotorPowerKW            float64 `json:"motorPowerKW"`
	ProtectionClass         string  `json:"protectionClass"`
	MotorEfficiency         string  `json:"motorEfficiency"`
	WaterSupplyBar          float64 `json:"waterSupplyBar"`
	WaterFlowLs             float64 `json:"waterFlowLs"`
	WaterPerEjectionL       float64 `json:"waterPerEjectionL"`
	LengthMM                float64 `json:"length"`
	WidthMM                 float64 `json:"width"`
	HeightMM                float64 `json:"height"`
	TotalWeightKg           float64 `json:"totalWeightKg"`
	BowlWeightKg            float64 `json:"bowlWeightKg"`
	MotorWeightKg           float64 `json:"motorWeightKg"`
	BowlVolumeL             float64 `json:"bowlVolumeL"`
	EjectionSystem          string  `json:"ejectionSystem"`
	PowerConsumptionTotalKW float64 `json:"powerConsumptionTotalKW"`
}

// FlatBelt reports whether the entry uses a flat-belt drive.
func (s Specification) FlatBelt() bool {
	return parse.FlatBelt(s.DriveType)
}

// EfficiencyClass returns the normalised motor efficiency class, or "".
func (s Specification) EfficiencyClass() string {
	return parse.EfficiencyClass(s.MotorEfficiency)
}

// PowerKW is the total power draw, falling back to the motor rating when
// the catalog has no total.
func (s Specification) PowerKW() float64 {
	if s.PowerConsumptionTotalKW > 0 {
		return s.PowerConsumptionTotalKW
	}
	return s.MotorPowerKW
}

// Find returns the entry with the given model number.
func Find(specs []Specification, model string) (Specification, bool) {
	for _, s := range specs {
		if s.ModelNumber == model {
			return s, true
		}
	}
	return Specification{}, false
}
