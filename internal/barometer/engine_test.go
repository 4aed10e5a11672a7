package barometer

import (
	"errors"
	"math"
	"testing"

	"github.com/relabs-tech/home_display/internal/grid"
	"github.com/relabs-tech/home_display/internal/hsv"
	"github.com/relabs-tech/home_display/internal/telemetry"
)

type recordingPublisher struct {
	readings []telemetry.Reading
	err      error
}

func (p *recordingPublisher) Publish(r telemetry.Reading) error {
	p.readings = append(p.readings, r)
	return p.err
}

func newTestEngine(t *testing.T, opts Options) (*Engine, *grid.Grid, *recordingPublisher) {
	t.Helper()
	reg, err := grid.NewRegistry(grid.DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}
	g := grid.New(reg)
	pub := &recordingPublisher{}
	return NewEngine(opts, g, pub), g, pub
}

func cell(t *testing.T, g *grid.Grid, id string) hsv.RGB {
	t.Helper()
	c, err := g.Cell(id)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestEngineWarmupPublishesStableCode(t *testing.T) {
	e, g, pub := newTestEngine(t, Options{SensorIndex: 7})

	for i := 0; i < HistoryLen-1; i++ {
		res, err := e.Sample(1015)
		if err != nil {
			t.Fatal(err)
		}
		if res.State != Warmup || res.Decision != nil {
			t.Fatalf("tick %d: state %v decision %v", i, res.State, res.Decision)
		}
	}
	if len(pub.readings) != HistoryLen-1 {
		t.Fatalf("published %d readings", len(pub.readings))
	}
	for _, r := range pub.readings {
		if r != (telemetry.Reading{SensorIndex: 7, Pressure: "1015.0", ForecastCode: "0"}) {
			t.Fatalf("warmup reading %+v", r)
		}
	}
	// gauge updated, forecast cells untouched
	if got := cell(t, g, grid.Barometer); got == hsv.Off {
		t.Fatal("gauge not painted during warmup")
	}
	if got := cell(t, g, grid.WindForecast); got != hsv.Off {
		t.Fatalf("wind cell painted during warmup: %+v", got)
	}
}

func TestEngineTenSteadyReadingsForecastNoChange(t *testing.T) {
	e, g, pub := newTestEngine(t, Options{})

	var res Result
	var err error
	for i := 0; i < HistoryLen; i++ {
		if res, err = e.Sample(1015.0); err != nil {
			t.Fatal(err)
		}
	}
	if res.State != Active || res.Decision == nil {
		t.Fatalf("state %v decision %v", res.State, res.Decision)
	}
	if res.Decision.Category != NoChange || res.Decision.Delta != 0 {
		t.Fatalf("decision %+v", res.Decision)
	}
	if last := pub.readings[len(pub.readings)-1]; last.ForecastCode != "0" || last.Pressure != "1015.0" {
		t.Fatalf("last reading %+v", last)
	}

	grey, _ := hsv.ToRGB(120, 0, 100)
	for _, id := range []string{grid.WindForecast, grid.RainForecast, grid.TempForecast} {
		if got := cell(t, g, id); got != grey {
			t.Fatalf("%s = %+v, want %+v", id, got, grey)
		}
	}
	if _, ok := e.Last(); !ok {
		t.Fatal("Last() empty after a forecast")
	}
}

func TestEngineRisingPressureUsesThreeHourDelta(t *testing.T) {
	e, g, pub := newTestEngine(t, Options{})
	// 1018 -> 1025 over ten ticks: delta 7 at > 1023
	readings := []float64{1018, 1019, 1020, 1021, 1022, 1023, 1024, 1024.5, 1024.8, 1025}
	var res Result
	for _, r := range readings {
		var err error
		if res, err = e.Sample(r); err != nil {
			t.Fatal(err)
		}
	}
	if res.Decision.Category != StrongWindWarning || res.Decision.Delta != 7 {
		t.Fatalf("decision %+v", res.Decision)
	}
	if pub.readings[len(pub.readings)-1].ForecastCode != "3" {
		t.Fatalf("code %q", pub.readings[len(pub.readings)-1].ForecastCode)
	}
	if got := cell(t, g, grid.BarometerChange); got != (hsv.RGB{R: 255}) {
		t.Fatalf("change cell %+v, want red", got)
	}

	// an eleventh reading evicts 1018: delta = 1025 - 1019
	res, err := e.Sample(1025)
	if err != nil {
		t.Fatal(err)
	}
	if res.Decision.Delta != 6 {
		t.Fatalf("delta after eviction = %v", res.Decision.Delta)
	}
}

func TestEngineDiscardsImplausibleReadings(t *testing.T) {
	e, g, pub := newTestEngine(t, Options{})
	before := g.Snapshot()

	_, err := e.Sample(0)
	if !errors.Is(err, ErrImplausible) {
		t.Fatalf("expected ErrImplausible, got %v", err)
	}
	if len(e.History()) != 0 || e.State() != Warmup {
		t.Fatal("history mutated by implausible reading")
	}
	if len(pub.readings) != 0 {
		t.Fatal("published an implausible reading")
	}
	if g.Snapshot() != before {
		t.Fatal("display changed on implausible reading")
	}
}

func TestEngineRejectsNonFiniteReadings(t *testing.T) {
	e, g, pub := newTestEngine(t, Options{})
	for i := 0; i < HistoryLen-1; i++ {
		if _, err := e.Sample(1015); err != nil {
			t.Fatal(err)
		}
	}
	before := g.Snapshot()

	for _, raw := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		if _, err := e.Sample(raw); !errors.Is(err, ErrImplausible) {
			t.Fatalf("Sample(%v): expected ErrImplausible, got %v", raw, err)
		}
	}
	if n := len(e.History()); n != HistoryLen-1 || e.State() != Warmup {
		t.Fatalf("history has %d samples, state %v", n, e.State())
	}
	if len(pub.readings) != HistoryLen-1 {
		t.Fatalf("published %d readings", len(pub.readings))
	}
	if g.Snapshot() != before {
		t.Fatal("display changed on non-finite reading")
	}

	inf, _, _ := newTestEngine(t, Options{CalibrationOffset: math.Inf(1)})
	if _, err := inf.Sample(1015); !errors.Is(err, ErrImplausible) {
		t.Fatalf("infinite offset: expected ErrImplausible, got %v", err)
	}
}

func TestEngineAppliesCalibrationOffset(t *testing.T) {
	e, _, pub := newTestEngine(t, Options{CalibrationOffset: 2.5})
	res, err := e.Sample(1010.25)
	if err != nil {
		t.Fatal(err)
	}
	if res.Pressure != 1012.75 {
		t.Fatalf("pressure %v", res.Pressure)
	}
	if pub.readings[0].Pressure != "1012.8" {
		t.Fatalf("published %q", pub.readings[0].Pressure)
	}
}

func TestEngineOffsetCanRescueLowRawReading(t *testing.T) {
	e, _, _ := newTestEngine(t, Options{CalibrationOffset: 100, Floor: 900})
	if _, err := e.Sample(850); err != nil {
		t.Fatalf("calibrated reading rejected: %v", err)
	}
}

func TestEngineReportsPublishFailureAfterPainting(t *testing.T) {
	e, g, pub := newTestEngine(t, Options{})
	pub.err = errors.New("broker down")

	res, err := e.Sample(1013)
	if err == nil {
		t.Fatal("expected publish error")
	}
	if res.Pressure != 1013 {
		t.Fatalf("result lost on publish error: %+v", res)
	}
	if cell(t, g, grid.Barometer) == hsv.Off {
		t.Fatal("gauge not painted")
	}
}

func TestEngineToleratesLayoutWithoutWeatherCells(t *testing.T) {
	reg, err := grid.NewRegistry([]grid.Entry{{Identity: "Living Motion", X: 0, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}
	e := NewEngine(Options{}, grid.New(reg), nil)
	for i := 0; i < HistoryLen; i++ {
		if _, err := e.Sample(1012); err != nil {
			t.Fatal(err)
		}
	}
}
