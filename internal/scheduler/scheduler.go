// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package scheduler samples the barometer on a fixed interval.
package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/relabs-tech/home_display/internal/barometer"
	"github.com/relabs-tech/home_display/internal/sensors"
)

// DefaultInterval is the sampling period; ten samples span three hours.
const DefaultInterval = 18 * time.Minute

// Sampler consumes raw pressure readings in hPa.
type Sampler interface {
	SampleBarometer(raw float64) (barometer.Result, error)
}

// Scheduler periodically reads the barometer and feeds the sampler.
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    sensors.Barometer
	target    Sampler
	interval  time.Duration
	onSample  func(barometer.Result)
}

// New creates a new Scheduler. A non-positive interval selects DefaultInterval.
func New(source sensors.Barometer, target Sampler, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		source:    source,
		target:    target,
		interval:  interval,
	}
}

// OnSample registers fn to run after every accepted sample.
func (s *Scheduler) OnSample(fn func(barometer.Result)) {
	s.onSample = fn
}

// Tick takes one reading.
func (s *Scheduler) Tick() {
	sample, err := s.source.Read()
	if err != nil {
		log.Printf("scheduler: barometer read failed: %v", err)
		return
	}

	res, err := s.target.SampleBarometer(sample.PressureHPa())
	if res.Pressure == 0 {
		// rejected; the sampler has logged why
		return
	}
	if err != nil {
		log.Printf("scheduler: sample accepted with error: %v", err)
	}
	if s.onSample != nil {
		s.onSample(res)
	}
}

// Start schedules the sampling job and starts the underlying scheduler. The
// first reading is taken immediately.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 1
	}

	_, err := s.scheduler.Every(minutes).Minutes().SingletonMode().Do(s.Tick)
	if err != nil {
		return err
	}

	log.Printf("scheduler: sampling barometer every %d minutes", minutes)
	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
