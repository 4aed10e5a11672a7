package barometer

import (
	"errors"
	"math"
	"testing"
)

var (
	boundaryPressures = []float64{990, 1008, 1008.99, 1009, 1012, 1015, 1015.01, 1018, 1018.01, 1020, 1023, 1023.01, 1024, 1040}
	boundaryDeltas    = []float64{-15, -10, -9.99, -4.01, -4, -3.99, -1.11, -1.1, -1.09, -0.5, 0, 0.01, 1.09, 1.1, 1.11, 5.99, 6, 6.01, 9.99, 10, 10.01, 20}
)

func TestRulesAreTotalAndDisjoint(t *testing.T) {
	for _, p := range boundaryPressures {
		for _, d := range boundaryDeltas {
			if n := len(Matches(p, d)); n != 1 {
				t.Errorf("pressure=%v delta=%v matched %d rules", p, d, n)
			}
		}
	}
}

func TestRulesDenseSweep(t *testing.T) {
	for p := 980.0; p <= 1045; p += 0.25 {
		for d := -14.0; d <= 14; d += 0.05 {
			if n := len(Matches(p, d)); n != 1 {
				t.Fatalf("pressure=%v delta=%v matched %d rules", p, d, n)
			}
		}
	}
}

func TestEveryCategoryHasOutlook(t *testing.T) {
	for _, r := range Rules {
		o, ok := Outlooks[r.Category]
		if !ok {
			t.Fatalf("no outlook for %q", r.Category)
		}
		switch o.Code {
		case CodeStable, CodeSunny, CodeUnstable, CodeStorm:
		default:
			t.Fatalf("%q has code %q", r.Category, o.Code)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		pressure, delta float64
		want            Category
	}{
		{1000, 0, ClearingAndColder},
		{1000, 6, StrongWindWarning},
		{1000, 10, GaleWarning},
		{1000, -1.1, RainAndWind},
		{1000, -4, RainAndWind},
		{1000, -5, Storm},
		{1000, -10, StormAndGale},
		{1015, 0, NoChange},
		{1015, 3, NoChange},
		{1016, 3, PoorerWeather},
		{1016, 6, PoorerWeather},
		{1016, 7, StrongWindWarning},
		{1009, 12, GaleWarning},
		{1018, -4, RainAndWind},
		{1020, 0.5, NoChange},
		{1020, 2, PoorerWeather},
		{1020, 8, StrongWindWarning},
		{1020, 0, FairSlightTempChange},
		{1020, -2, NoChangeRainIn24h},
		{1023, -6, RainWindHigherTemp},
		{1025, 0.5, FairWeather},
		{1025, 0, FairNoMarkedTempChange},
		{1025, 3, PoorerWeather},
		{1025, 7, StrongWindWarning},
		{1025, 15, GaleWarning},
		{1025, -3, FairSlowlyRisingTemp},
		{1025, -8, WarmingTrend},
	}
	for _, tt := range tests {
		d, err := Classify(tt.pressure, tt.delta)
		if err != nil {
			t.Fatalf("Classify(%v, %v): %v", tt.pressure, tt.delta, err)
		}
		if d.Category != tt.want {
			t.Errorf("Classify(%v, %v) = %q, want %q", tt.pressure, tt.delta, d.Category, tt.want)
		}
	}
}

func TestClassifyStrongWindScenario(t *testing.T) {
	d, err := Classify(1025.0, 7.0)
	if err != nil {
		t.Fatal(err)
	}
	if d.Category != StrongWindWarning || d.Code != "3" {
		t.Fatalf("got %q code %q", d.Category, d.Code)
	}
}

func TestClassifyRejectsNonFinite(t *testing.T) {
	for _, pair := range [][2]float64{{math.NaN(), 0}, {1010, math.NaN()}, {math.Inf(1), 0}, {1010, math.Inf(-1)}} {
		if _, err := Classify(pair[0], pair[1]); !errors.Is(err, ErrUnclassified) {
			t.Fatalf("Classify(%v, %v): expected ErrUnclassified, got %v", pair[0], pair[1], err)
		}
	}
}

func TestRangeString(t *testing.T) {
	if got := closedOpen(1.1, 6).String(); got != "[1.1, 6)" {
		t.Fatalf("got %q", got)
	}
}
