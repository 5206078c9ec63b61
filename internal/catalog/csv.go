package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"separator-tco-backend/internal/parse"
)

var (
	// ErrNoModelColumn is returned when a catalog file has no model number column.
	ErrNoModelColumn = errors.New("catalog has no model number column")
	// ErrDuplicateModel is returned when two rows share a model number.
	ErrDuplicateModel = errors.New("duplicate model number")
)

type setter func(s *Specification, cell string)

func text(f func(*Specification) *string) setter {
	return func(s *Specification, cell string) { *f(s) = parse.Text(cell) }
}

// number leaves the field at zero when the cell is missing.
func number(f func(*Specification) *float64) setter {
	return func(s *Specification, cell string) {
		if v, ok := parse.Float(cell); ok {
			*f(s) = v
		}
	}
}

// columns maps normalised headers to fields. Both the ERP export names and
// the plain field names are accepted.
var columns = map[string]setter{}

func register(set setter, headers ...string) {
	for _, h := range headers {
		columns[parse.Header(h)] = set
	}
}

func init() {
	register(text(func(s *Specification) *string { return &s.Application }), "Application")
	register(text(func(s *Specification) *string { return &s.SubApplication }), "Sub Application")
	register(number(func(s *Specification) *float64 { return &s.FeedSolidsMin }), "SEP_SQLFeedSolidsMin_VolPerc", "feedSolidsMin")
	register(number(func(s *Specification) *float64 { return &s.FeedSolidsMax }), "SEP_SQLFeedSolidsMax_VolPerc", "feedSolidsMax")
	register(number(func(s *Specification) *float64 { return &s.CapacityMin }), "SEP_CapacityMinInp", "capacityMinInp")
	register(number(func(s *Specification) *float64 { return &s.CapacityMax }), "SEP_CapacityMaxInp", "capacityMaxInp")
	register(text(func(s *Specification) *string { return &s.DriveType }), "SEP_DriveType", "driveType")
	register(text(func(s *Specification) *string { return &s.Level }), "SEP_Level", "level")
	register(text(func(s *Specification) *string { return &s.ModelNumber }), "SEP_SQLLangtyp", "modelNumber", "model")
	register(number(func(s *Specification) *float64 { return &s.BowlDiameterMM }), "SEP_SQLDMR", "bowlDiameter")
	register(number(func(s *Specification) *float64 { return &s.ListPrice }), "Listprice")
	register(number(func(s *Specification) *float64 { return &s.MotorPowerKW }), "SEP_SQLMotorPowerKW", "motorPowerKW")
	register(text(func(s *Specification) *string { return &s.ProtectionClass }), "SEP_SQLProtectionClass", "protectionClass")
	register(text(func(s *Specification) *string { return &s.MotorEfficiency }), "SEP_SQLMotorEfficiency", "motorEfficiency")
	register(number(func(s *Specification) *float64 { return &s.WaterSupplyBar }), "SEP_SQLOpWaterSupplyBar", "waterSupplyBar")
	register(number(func(s *Specification) *float64 { return &s.WaterFlowLs }), "SEP_SQLOpWaterls", "waterFlowLs")
	register(number(func(s *Specification) *float64 { return &s.WaterPerEjectionL }), "SEP_SQLOpWaterliteject", "waterPerEjectionL")
	register(number(func(s *Specification) *float64 { return &s.LengthMM }), "SEP_SQLLength", "length")
	register(number(func(s *Specification) *float64 { return &s.WidthMM }), "SEP_SQLWidth", "width")
	register(number(func(s *Specification) *float64 { return &s.HeightMM }), "SEP_SQLHeigth", "SEP_SQLHeight", "height")
	register(number(func(s *Specification) *float64 { return &s.TotalWeightKg }), "SEP_SQLTotalWeightKg", "totalWeightKg")
	register(number(func(s *Specification) *float64 { return &s.BowlWeightKg }), "SEP_SQLBowlWeightKg", "bowlWeightKg")
	register(number(func(s *Specification) *float64 { return &s.MotorWeightKg }), "SEP_SQLMotorWeightKg", "motorWeightKg")
	register(number(func(s *Specification) *float64 { return &s.BowlVolumeL }), "SEP_SQLBowlVolumeLit", "bowlVolumeL")
	register(text(func(s *Specification) *string { return &s.EjectionSystem }), "ejection system")
	register(number(func(s *Specification) *float64 { return &s.PowerConsumptionTotalKW }), "power consumption TOTAL [kW]", "powerConsumptionTotalKW")
}

// LoadCSV reads a catalog export from path.
func LoadCSV(path string) ([]Specification, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	specs, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return specs, nil
}

// ReadCSV parses a catalog export. Unknown columns are ignored, numeric
// cells are parsed leniently and every row must carry a unique model number.
func ReadCSV(r io.Reader) ([]Specification, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	setters := make([]setter, len(header))
	hasModel := false
	for i, h := range header {
		key := parse.Header(strings.TrimPrefix(h, "\ufeff"))
		setters[i] = columns[key]
		if key == parse.Header("SEP_SQLLangtyp") || key == parse.Header("modelNumber") || key == parse.Header("model") {
			hasModel = true
		}
	}
	if !hasModel {
		return nil, ErrNoModelColumn
	}

	var specs []Specification
	seen := make(map[string]int)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if blank(record) {
			continue
		}

		var spec Specification
		for i, cell := range record {
			if i < len(setters) && setters[i] != nil {
				setters[i](&spec, cell)
			}
		}
		if spec.ModelNumber == "" {
			return nil, fmt.Errorf("line %d: missing model number", line)
		}
		if first, dup := seen[spec.ModelNumber]; dup {
			return nil, fmt.Errorf("line %d: %w %q (first seen on line %d)", line, ErrDuplicateModel, spec.ModelNumber, first)
		}
		seen[spec.ModelNumber] = line
		specs = append(specs, spec)
	}
	return specs, nil
}

func blank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
