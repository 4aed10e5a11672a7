package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/relabs-tech/home_display/internal/barometer"
	"github.com/relabs-tech/home_display/internal/env"
)

type fixedBarometer struct {
	hpa float64
	err error
}

func (b fixedBarometer) Read() (env.Sample, error) {
	if b.err != nil {
		return env.Sample{}, b.err
	}
	return env.Sample{Source: "test", Pressure: b.hpa * env.PascalsPerHPa}, nil
}

func (fixedBarometer) Close() error { return nil }

type recordingSampler struct {
	mu   sync.Mutex
	raws []float64
	err  error
}

func (s *recordingSampler) SampleBarometer(raw float64) (barometer.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raws = append(s.raws, raw)
	if errors.Is(s.err, barometer.ErrImplausible) {
		return barometer.Result{}, s.err
	}
	return barometer.Result{Pressure: raw}, s.err
}

func (s *recordingSampler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.raws)
}

func TestTickFeedsHectopascals(t *testing.T) {
	target := &recordingSampler{}
	s := New(fixedBarometer{hpa: 1012.5}, target, 0)

	var got []barometer.Result
	s.OnSample(func(r barometer.Result) { got = append(got, r) })
	s.Tick()

	if target.count() != 1 || target.raws[0] != 1012.5 {
		t.Fatalf("sampler got %v", target.raws)
	}
	if len(got) != 1 || got[0].Pressure != 1012.5 {
		t.Fatalf("callback got %+v", got)
	}
}

func TestTickSkipsFailedReads(t *testing.T) {
	target := &recordingSampler{}
	s := New(fixedBarometer{err: errors.New("bus error")}, target, 0)
	s.Tick()
	if target.count() != 0 {
		t.Fatal("failed read reached the sampler")
	}
}

func TestTickDoesNotReportRejectedSamples(t *testing.T) {
	target := &recordingSampler{err: barometer.ErrImplausible}
	s := New(fixedBarometer{hpa: 0}, target, 0)

	called := false
	s.OnSample(func(barometer.Result) { called = true })
	s.Tick()
	if called {
		t.Fatal("callback ran for a rejected sample")
	}
}

func TestStartSamplesImmediately(t *testing.T) {
	target := &recordingSampler{}
	s := New(fixedBarometer{hpa: 1000}, target, time.Hour)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for target.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no sample taken on start")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
