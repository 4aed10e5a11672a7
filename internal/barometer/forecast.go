// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package barometer

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnclassified is returned when no table row covers a (pressure, delta) pair.
var ErrUnclassified = errors.New("pressure/delta not classifiable")

// Category is a named forecast.
type Category string

const (
	ClearingAndColder      Category = "Clearing and Colder"
	StrongWindWarning      Category = "Strong Wind Warning"
	GaleWarning            Category = "Gale Warning"
	RainAndWind            Category = "Rain and Wind"
	Storm                  Category = "Storm"
	StormAndGale           Category = "Storm and Gale"
	NoChange               Category = "No Change"
	PoorerWeather          Category = "Poorer Weather"
	FairSlightTempChange   Category = "Fair Weather, Slight Temp Change"
	NoChangeRainIn24h      Category = "No Change, Rain in 24h"
	RainWindHigherTemp     Category = "Rain, Wind, Higher Temp"
	FairWeather            Category = "Fair Weather"
	FairNoMarkedTempChange Category = "Fair Weather, No Marked Temp Change"
	FairSlowlyRisingTemp   Category = "Fair Weather, Slowly Rising Temp"
	WarmingTrend           Category = "Warming Trend"
)

// Code is the forecast value sent to the telemetry sink.
type Code string

const (
	CodeStable   Code = "0"
	CodeSunny    Code = "1"
	CodeUnstable Code = "3"
	CodeStorm    Code = "4"
)

// LED is the hue/saturation of a forecast cell; brightness is always full.
type LED struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
}

// Outlook is the static display and telemetry mapping of a category.
type Outlook struct {
	Wind  LED
	Rain  LED
	Trend LED
	Code  Code
}

var (
	grey   = LED{Hue: 120, Saturation: 0}
	red    = LED{Hue: 0, Saturation: 100}
	orange = LED{Hue: 30, Saturation: 100}
	yellow = LED{Hue: 60, Saturation: 100}
	lime   = LED{Hue: 80, Saturation: 100}
	green  = LED{Hue: 120, Saturation: 100}
	teal   = LED{Hue: 150, Saturation: 100}
	cyan   = LED{Hue: 180, Saturation: 100}
	blue   = LED{Hue: 240, Saturation: 100}
)

// Outlooks maps every category to its cells and code.
var Outlooks = map[Category]Outlook{
	NoChange:               {Wind: grey, Rain: grey, Trend: grey, Code: CodeStable},
	ClearingAndColder:      {Wind: green, Rain: green, Trend: cyan, Code: CodeSunny},
	RainAndWind:            {Wind: yellow, Rain: blue, Trend: grey, Code: CodeUnstable},
	Storm:                  {Wind: orange, Rain: blue, Trend: cyan, Code: CodeStorm},
	StormAndGale:           {Wind: red, Rain: blue, Trend: cyan, Code: CodeStorm},
	StrongWindWarning:      {Wind: orange, Rain: grey, Trend: grey, Code: CodeUnstable},
	GaleWarning:            {Wind: red, Rain: grey, Trend: grey, Code: CodeUnstable},
	PoorerWeather:          {Wind: yellow, Rain: cyan, Trend: cyan, Code: CodeUnstable},
	FairSlightTempChange:   {Wind: green, Rain: green, Trend: teal, Code: CodeSunny},
	NoChangeRainIn24h:      {Wind: grey, Rain: cyan, Trend: grey, Code: CodeStable},
	RainWindHigherTemp:     {Wind: lime, Rain: cyan, Trend: yellow, Code: CodeUnstable},
	FairWeather:            {Wind: green, Rain: green, Trend: green, Code: CodeSunny},
	FairNoMarkedTempChange: {Wind: green, Rain: green, Trend: grey, Code: CodeSunny},
	FairSlowlyRisingTemp:   {Wind: green, Rain: green, Trend: yellow, Code: CodeSunny},
	WarmingTrend:           {Wind: grey, Rain: grey, Trend: orange, Code: CodeSunny},
}

// Range is an interval of the real line with per-end inclusivity.
type Range struct {
	Min, Max         float64
	MinIncl, MaxIncl bool
}

// Contains reports whether v lies in r.
func (r Range) Contains(v float64) bool {
	if r.MinIncl {
		if v < r.Min {
			return false
		}
	} else if v <= r.Min {
		return false
	}
	if r.MaxIncl {
		return v <= r.Max
	}
	return v < r.Max
}

func (r Range) String() string {
	lo, hi := "(", ")"
	if r.MinIncl {
		lo = "["
	}
	if r.MaxIncl {
		hi = "]"
	}
	return fmt.Sprintf("%s%g, %g%s", lo, r.Min, r.Max, hi)
}

var inf = math.Inf(1)

func open(lo, hi float64) Range {
	return Range{Min: lo, Max: hi}
}

func closed(lo, hi float64) Range {
	return Range{Min: lo, Max: hi, MinIncl: true, MaxIncl: true}
}

func closedOpen(lo, hi float64) Range {
	return Range{Min: lo, Max: hi, MinIncl: true}
}

func openClosed(lo, hi float64) Range {
	return Range{Min: lo, Max: hi, MaxIncl: true}
}

// Rule is one row of the classification table.
type Rule struct {
	Pressure Range
	Delta    Range
	Category Category
}

// Pressure bands in hPa.
var (
	bandLow    = open(-inf, 1009)
	bandMid    = closed(1009, 1018)
	bandMidLo  = closed(1009, 1015)
	bandMidHi  = openClosed(1015, 1018)
	bandHigh   = openClosed(1018, 1023)
	bandVeryHi = open(1023, inf)
)

// Rules is the forecast table. Rows are disjoint and together cover every
// finite (pressure, delta) pair.
var Rules = []Rule{
	{bandLow, open(-1.1, 6), ClearingAndColder},
	{bandLow, closedOpen(6, 10), StrongWindWarning},
	{bandLow, closedOpen(10, inf), GaleWarning},
	{bandLow, closed(-4, -1.1), RainAndWind},
	{bandLow, open(-10, -4), Storm},
	{bandLow, openClosed(-inf, -10), StormAndGale},

	{bandMid, open(-4, 1.1), NoChange},
	{bandMidLo, closed(1.1, 6), NoChange},
	{bandMidHi, closed(1.1, 6), PoorerWeather},
	{bandMid, open(6, 10), StrongWindWarning},
	{bandMid, closedOpen(10, inf), GaleWarning},
	{bandMid, openClosed(-inf, -4), RainAndWind},

	{bandHigh, open(0, 1.1), NoChange},
	{bandHigh, closedOpen(1.1, 6), PoorerWeather},
	{bandHigh, closedOpen(6, 10), StrongWindWarning},
	{bandHigh, closedOpen(10, inf), GaleWarning},
	{bandHigh, openClosed(-1.1, 0), FairSlightTempChange},
	{bandHigh, openClosed(-4, -1.1), NoChangeRainIn24h},
	{bandHigh, openClosed(-inf, -4), RainWindHigherTemp},

	{bandVeryHi, open(0, 1.1), FairWeather},
	{bandVeryHi, openClosed(-1.1, 0), FairNoMarkedTempChange},
	{bandVeryHi, closedOpen(1.1, 6), PoorerWeather},
	{bandVeryHi, closedOpen(6, 10), StrongWindWarning},
	{bandVeryHi, closedOpen(10, inf), GaleWarning},
	{bandVeryHi, openClosed(-4, -1.1), FairSlowlyRisingTemp},
	{bandVeryHi, openClosed(-inf, -4), WarmingTrend},
}

// Decision is the result of classifying one sample.
type Decision struct {
	Pressure float64  `json:"pressure"`
	Delta    float64  `json:"delta"`
	Category Category `json:"category"`
	Wind     LED      `json:"wind"`
	Rain     LED      `json:"rain"`
	Trend    LED      `json:"trend"`
	Code     Code     `json:"code"`
}

// Matches returns every rule covering (pressure, delta).
func Matches(pressure, delta float64) []Rule {
	var out []Rule
	for _, r := range Rules {
		if r.Pressure.Contains(pressure) && r.Delta.Contains(delta) {
			out = append(out, r)
		}
	}
	return out
}

// Classify looks up the forecast for a pressure and its three hour change.
func Classify(pressure, delta float64) (Decision, error) {
	if !finite(pressure) || !finite(delta) {
		return Decision{}, fmt.Errorf("%w: pressure=%v delta=%v", ErrUnclassified, pressure, delta)
	}
	for _, r := range Rules {
		if r.Pressure.Contains(pressure) && r.Delta.Contains(delta) {
			o := Outlooks[r.Category]
			return Decision{
				Pressure: pressure,
				Delta:    delta,
				Category: r.Category,
				Wind:     o.Wind,
				Rain:     o.Rain,
				Trend:    o.Trend,
				Code:     o.Code,
			}, nil
		}
	}
	return Decision{}, fmt.Errorf("%w: pressure=%v delta=%v", ErrUnclassified, pressure, delta)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
