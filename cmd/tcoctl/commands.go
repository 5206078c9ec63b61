package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"separator-tco-backend/config"
	"separator-tco-backend/internal/catalog"
	"separator-tco-backend/internal/model"
	"separator-tco-backend/internal/present"
	"separator-tco-backend/internal/projection"
	"separator-tco-backend/internal/ranking"
	"separator-tco-backend/internal/tco"
)

// env is what every command needs, resolved from the global flags.
type env struct {
	calc       *tco.Calculator
	specs      []catalog.Specification
	heuristics ranking.Heuristics
	size       int
}

func loadEnv(c *cli.Context) (*env, error) {
	e := &env{
		calc:       tco.Default(),
		heuristics: ranking.DefaultHeuristics(),
		size:       3,
	}
	src := catalog.Source{Path: c.String("catalog")}

	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		rates, err := cfg.Rates()
		if err != nil {
			return nil, err
		}
		if e.calc, err = tco.NewCalculator(rates); err != nil {
			return nil, err
		}
		e.heuristics = cfg.Heuristics()
		e.size = cfg.Engine.ShortlistSize
		if src.Path == "" {
			src = cfg.Catalog.Source()
		}
	}

	specs, err := catalog.Open(c.Context, src)
	if err != nil {
		return nil, err
	}
	e.specs = specs
	return e, nil
}

// decodeYAML strictly decodes a YAML file into v.
func decodeYAML(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func money(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "table",
		Usage:   "Output format (table, json)",
	}
}

func checkFormat(c *cli.Context) error {
	switch c.String("format") {
	case "table", "json":
		return nil
	default:
		return fmt.Errorf("unknown format %q", c.String("format"))
	}
}

func siteFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{Name: "energy-price", Value: tco.DefaultEnergyPrice, Usage: "Energy price per kWh"},
		&cli.Float64Flag{Name: "water-price", Value: tco.DefaultWaterPricePerM3, Usage: "Water price per cubic meter"},
		&cli.Float64Flag{Name: "hours-per-day", Value: tco.DefaultHoursPerDay},
		&cli.Float64Flag{Name: "days-per-week", Value: tco.DefaultDaysPerWeek},
		&cli.Float64Flag{Name: "weeks-per-year", Value: tco.DefaultWeeksPerYear},
		&cli.Float64Flag{Name: "discount-rate", Usage: "Acquisition discount in [0,1]"},
		&cli.BoolFlag{Name: "training", Usage: "Include operator training"},
	}
}

func siteAssumptions(c *cli.Context) tco.Assumptions {
	a := tco.DefaultAssumptions()
	a.EnergyPrice = c.Float64("energy-price")
	a.WaterPricePerM3 = c.Float64("water-price")
	a.HoursPerDay = c.Float64("hours-per-day")
	a.DaysPerWeek = c.Float64("days-per-week")
	a.WeeksPerYear = c.Float64("weeks-per-year")
	a.DiscountRate = c.Float64("discount-rate")
	a.NeedsTraining = c.Bool("training")
	return a
}

// machines resolves --model entries against the catalog and --input files
// as full parameter sets.
func (e *env) machines(c *cli.Context) ([]tco.ComprehensiveMachine, error) {
	var out []tco.ComprehensiveMachine
	a := siteAssumptions(c)
	for _, name := range c.StringSlice("model") {
		spec, ok := catalog.Find(e.specs, name)
		if !ok {
			return nil, fmt.Errorf("model %q is not in the catalog", name)
		}
		out = append(out, tco.FromSpecification(spec, a))
	}
	for _, path := range c.StringSlice("input") {
		var m tco.ComprehensiveMachine
		if err := decodeYAML(path, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one --model or --input is required")
	}
	return out, nil
}

func machineFlags() []cli.Flag {
	return append([]cli.Flag{
		&cli.StringSliceFlag{Name: "model", Aliases: []string{"m"}, Usage: "Catalog model number (repeatable)"},
		&cli.StringSliceFlag{Name: "input", Aliases: []string{"i"}, Usage: "YAML file with a full machine parameter set (repeatable)"},
		formatFlag(),
	}, siteFlags()...)
}

func breakdownCommand() *cli.Command {
	return &cli.Command{
		Name:   "breakdown",
		Usage:  "Print the seven-component TCO breakdown of machines",
		Flags:  machineFlags(),
		Action: runBreakdown,
	}
}

func runBreakdown(c *cli.Context) error {
	if err := checkFormat(c); err != nil {
		return err
	}
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	machines, err := e.machines(c)
	if err != nil {
		return err
	}

	views := make([]present.BreakdownView, 0, len(machines))
	for _, m := range machines {
		comps, err := e.calc.Comprehensive(m)
		if err != nil {
			return fmt.Errorf("%s: %w", m.Name, err)
		}
		views = append(views, present.Breakdown(m.Name, comps))
	}

	out := c.App.Writer
	if c.String("format") == "json" {
		return writeJSON(out, views)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t\t\t\n", v.Name)
		for _, r := range v.Rows {
			amount := money(r.Amount.InexactFloat64())
			if r.Credit {
				amount = "-" + amount
			}
			fmt.Fprintf(tw, "%s %s\t%s\t%s%%\t\n", r.Code, r.Label, amount, r.Share.StringFixed(1))
		}
		fmt.Fprintf(tw, "Total before discount\t%s\t\t\n", money(v.TotalBeforeDiscount.InexactFloat64()))
		fmt.Fprintf(tw, "Discount\t-%s\t\t\n", money(v.DiscountAmount.InexactFloat64()))
		fmt.Fprintf(tw, "Total\t%s\t\t\n\n", money(v.TotalAfterDiscount.InexactFloat64()))
	}
	return tw.Flush()
}

// projectFile is the YAML shape of a project for the rank command.
type projectFile struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Machines []struct {
		Name                  string  `yaml:"name"`
		ListPrice             float64 `yaml:"list_price"`
		TotalOperationCosts   float64 `yaml:"total_operation_costs"`
		TotalMaintenanceCosts float64 `yaml:"total_maintenance_costs"`
	} `yaml:"machines"`
}

func (p projectFile) project() (model.Project, error) {
	out := model.Project{ID: p.ID, Name: p.Name}
	for _, m := range p.Machines {
		machine := model.Machine{
			ProjectID:             p.ID,
			Name:                  m.Name,
			ListPrice:             m.ListPrice,
			TotalOperationCosts:   m.TotalOperationCosts,
			TotalMaintenanceCosts: m.TotalMaintenanceCosts,
		}
		if err := machine.Validate(); err != nil {
			return model.Project{}, err
		}
		out.Machines = append(out.Machines, machine.Recomputed())
	}
	return out, nil
}

func rankCommand() *cli.Command {
	return &cli.Command{
		Name:  "rank",
		Usage: "Rank the cheapest machines for a project against the catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "project", Aliases: []string{"p"}, Usage: "YAML file with the project's quoted machines"},
			&cli.IntFlag{Name: "n", Usage: "Shortlist size (defaults to the configured size)"},
			formatFlag(),
		},
		Action: runRank,
	}
}

func runRank(c *cli.Context) error {
	if err := checkFormat(c); err != nil {
		return err
	}
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	var project model.Project
	if path := c.String("project"); path != "" {
		var pf projectFile
		if err := decodeYAML(path, &pf); err != nil {
			return err
		}
		if project, err = pf.project(); err != nil {
			return err
		}
	}
	n := e.size
	if c.IsSet("n") {
		n = c.Int("n")
	}

	rows := present.Shortlist(ranking.SelectTopN(project, e.specs, n, e.heuristics))
	out := c.App.Writer
	if c.String("format") == "json" {
		return writeJSON(out, rows)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tMODEL\tLIST PRICE\tOPERATION\tMAINTENANCE\tTCO\tDELTA\tSOURCE")
	for _, r := range rows {
		source := "quoted"
		if r.Estimated {
			source = "estimated"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t+%s\t%s\n",
			r.Rank, r.Name,
			money(r.ListPrice.InexactFloat64()),
			money(r.TotalOperationCosts.InexactFloat64()),
			money(r.TotalMaintenanceCosts.InexactFloat64()),
			money(r.TCO.InexactFloat64()),
			money(r.DeltaToBest.InexactFloat64()),
			source)
	}
	return tw.Flush()
}

func projectCommand() *cli.Command {
	return &cli.Command{
		Name:  "project",
		Usage: "Project cumulative costs month by month and compare machines",
		Flags: append(machineFlags(),
			&cli.IntFlag{Name: "years", Aliases: []string{"y"}, Value: 10, Usage: "Projection horizon in years"},
		),
		Action: runProject,
	}
}

func runProject(c *cli.Context) error {
	if err := checkFormat(c); err != nil {
		return err
	}
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	machines, err := e.machines(c)
	if err != nil {
		return err
	}

	series := make([]projection.Series, 0, len(machines))
	for _, m := range machines {
		s, err := projection.Project(e.calc, m, c.Int("years"))
		if err != nil {
			return fmt.Errorf("%s: %w", m.Name, err)
		}
		series = append(series, s)
	}
	views := present.Comparison(series)

	out := c.App.Writer
	if c.String("format") == "json" {
		return writeJSON(out, views)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "YEAR")
	for _, v := range views {
		fmt.Fprintf(tw, "\t%s", v.Label)
	}
	fmt.Fprintln(tw)
	for month := 0; month < len(views[0].Months); month += 12 {
		fmt.Fprintf(tw, "%d", month/12)
		for _, v := range views {
			fmt.Fprintf(tw, "\t%s", money(v.Months[month].InexactFloat64()))
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprint(tw, "SERVICES")
	for _, v := range views {
		fmt.Fprintf(tw, "\t%d", v.Services)
	}
	fmt.Fprintln(tw)
	fmt.Fprint(tw, "BREAK-EVEN MONTH")
	for _, v := range views {
		cell := "-"
		if v.BreakEven != nil {
			cell = fmt.Sprintf("%d", *v.BreakEven)
		}
		fmt.Fprintf(tw, "\t%s", cell)
	}
	fmt.Fprintln(tw)
	return tw.Flush()
}
