package catalog

import "context"

// Default returns a fresh copy of the built-in reference catalog.
func Default() []Specification {
	out := make([]Specification, len(builtin))
	copy(out, builtin)
	return out
}

// Load reads the catalog export at path, which may be a file or an
// http(s) URL, or returns the built-in catalog when path is empty.
func Load(path string) ([]Specification, error) {
	return Open(context.Background(), Source{Path: path})
}

var builtin = []Specification{
	{
		Application:             "Citrus",
		SubApplication:          "Citrus Juice Clarification",
		FeedSolidsMin:           10,
		FeedSolidsMax:           12,
		CapacityMin:             11000,
		CapacityMax:             15000,
		DriveType:               "integrated direct drive",
		Level:                   "premium - Level",
		ModelNumber:             "GFA 200-30-820",
		BowlDiameterMM:          810,
		ListPrice:               344261,
		MotorPowerKW:            55,
		ProtectionClass:         "IP00",
		MotorEfficiency:         "",
		WaterSupplyBar:          2.5,
		WaterFlowLs:             1.2,
		WaterPerEjectionL:       11.0,
		LengthMM:                1480,
		WidthMM:                 1730,
		HeightMM:                2070,
		TotalWeightKg:           3100,
		BowlWeightKg:            1400,
		MotorWeightKg:           0,
		BowlVolumeL:             69,
		EjectionSystem:          "HydroStop",
		PowerConsumptionTotalKW: 44,
	},
	{
		Application:             "Citrus",
		SubApplication:          "Citrus Juice Clarification",
		FeedSolidsMin:           3,
		FeedSolidsMax:           5,
		CapacityMin:             7000,
		CapacityMax:             10000,
		DriveType:               "flat-belt drive",
		Level:                   "standard - Level",
		ModelNumber:             "GFA 100-69-357",
		BowlDiameterMM:          660,
		ListPrice:               234070,
		MotorPowerKW:            45,
		ProtectionClass:         "IP55",
		MotorEfficiency:         "≥ IE3",
		WaterSupplyBar:          2.5,
		WaterFlowLs:             0.8,
		WaterPerEjectionL:       3.5,
		LengthMM:                2450,
		WidthMM:                 1250,
		HeightMM:                1820,
		TotalWeightKg:           3270,
		BowlWeightKg:            720,
		MotorWeightKg:           550,
		BowlVolumeL:             50,
		EjectionSystem:          "HydroStop",
		PowerConsumptionTotalKW: 36,
	},
	{
		Application:             "Wine",
		SubApplication:          "Clarific. of Sparkling Wine",
		FeedSolidsMin:           0.3,
		FeedSolidsMax:           0.5,
		CapacityMin:             2000,
		CapacityMax:             2500,
		DriveType:               "flat-belt drive",
		Level:                   "standard - Level",
		ModelNumber:             "GFA 10-43-210",
		BowlDiameterMM:          260,
		ListPrice:               83397,
		MotorPowerKW:            7.5,
		ProtectionClass:         "IP55",
		MotorEfficiency:         "≥ IE3",
		WaterSupplyBar:          2.5,
		WaterFlowLs:             0.5,
		WaterPerEjectionL:       0.6,
		LengthMM:                1070,
		WidthMM:                 490,
		HeightMM:                830,
		TotalWeightKg:           220,
		BowlWeightKg:            48,
		MotorWeightKg:           66,
		BowlVolumeL:             2,
		EjectionSystem:          "HydroStop",
		PowerConsumptionTotalKW: 6,
	},
	{
		Application:             "Beer",
		SubApplication:          "Clarification of Kwass",
		FeedSolidsMin:           0.2,
		FeedSolidsMax:           0.5,
		CapacityMin:             16000,
		CapacityMax:             26000,
		DriveType:               "integrated direct drive",
		Level:                   "premium - Level",
		ModelNumber:             "GFA 200-98-270",
		BowlDiameterMM:          810,
		ListPrice:               307128,
		MotorPowerKW:            55,
		ProtectionClass:         "IP00",
		MotorEfficiency:         "",
		WaterSupplyBar:          2.5,
		WaterFlowLs:             1,
		WaterPerEjectionL:       7.5,
		LengthMM:                2000,
		WidthMM:                 2070,
		HeightMM:                2080,
		TotalWeightKg:           2900,
		BowlWeightKg:            1200,
		MotorWeightKg:           0,
		BowlVolumeL:             63,
		EjectionSystem:          "piston valve",
		PowerConsumptionTotalKW: 44,
	},
	{
		Application:             "Tea",
		SubApplication:          "Clarification of RTD Tea",
		FeedSolidsMin:           0.2,
		FeedSolidsMax:           0.5,
		CapacityMin:             1000,
		CapacityMax:             1800,
		DriveType:               "flat-belt drive",
		Level:                   "standard - Level",
		ModelNumber:             "GFA 10-50-645",
		BowlDiameterMM:          260,
		ListPrice:               79612,
		MotorPowerKW:            7.5,
		ProtectionClass:         "IP55",
		MotorEfficiency:         "≥ IE3",
		WaterSupplyBar:          2.5,
		WaterFlowLs:             0.5,
		WaterPerEjectionL:       0.6,
		LengthMM:                1070,
		WidthMM:                 490,
		HeightMM:                830,
		TotalWeightKg:           220,
		BowlWeightKg:            48,
		MotorWeightKg:           66,
		BowlVolumeL:             2,
		EjectionSystem:          "HydroStop",
		PowerConsumptionTotalKW: 6,
	},
	{
		Application:             "Fruit Juice",
		SubApplication:          "Fruit Juice",
		FeedSolidsMin:           2,
		FeedSolidsMax:           4,
		CapacityMin:             20000,
		CapacityMax:             21000,
		DriveType:               "integrated direct drive",
		Level:                   "premium - Level",
		ModelNumber:             "GFA 200-69-517",
		BowlDiameterMM:          810,
		ListPrice:               338917,
		MotorPowerKW:            55,
		ProtectionClass:         "IP00",
		MotorEfficiency:         "",
		WaterSupplyBar:          2.5,
		WaterFlowLs:             1.2,
		WaterPerEjectionL:       11.0,
		LengthMM:                1480,
		WidthMM:                 1730,
		HeightMM:                2070,
		TotalWeightKg:           3100,
		BowlWeightKg:            1400,
		MotorWeightKg:           0,
		BowlVolumeL:             69,
		EjectionSystem:          "HydroStop",
		PowerConsumptionTotalKW: 44,
	},
}
