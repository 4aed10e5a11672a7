// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package barometer

// HistoryLen is the number of samples kept: three hours at an 18 minute cadence.
const HistoryLen = 10

// History is a fixed-size ring buffer of calibrated pressure samples.
// It is not safe for concurrent use.
type History struct {
	buf   [HistoryLen]float64
	head  int // next slot to write
	count int // samples ever recorded, saturating at HistoryLen
}

// Push records a sample, evicting the oldest once the buffer is full.
func (h *History) Push(v float64) {
	h.buf[h.head] = v
	h.head = (h.head + 1) % HistoryLen
	if h.count < HistoryLen {
		h.count++
	}
}

// Len returns the number of samples currently held.
func (h *History) Len() int {
	return h.count
}

// Valid reports whether every slot holds a recorded sample.
func (h *History) Valid() bool {
	return h.count == HistoryLen
}

// Newest returns the most recent sample.
func (h *History) Newest() (float64, bool) {
	if h.count == 0 {
		return 0, false
	}
	return h.buf[(h.head+HistoryLen-1)%HistoryLen], true
}

// Oldest returns the oldest sample still held.
func (h *History) Oldest() (float64, bool) {
	if h.count == 0 {
		return 0, false
	}
	return h.buf[(h.head+HistoryLen-h.count)%HistoryLen], true
}

// Delta is newest minus oldest, defined only once the buffer is full.
func (h *History) Delta() (float64, bool) {
	if !h.Valid() {
		return 0, false
	}
	newest, _ := h.Newest()
	oldest, _ := h.Oldest()
	return newest - oldest, true
}

// Samples returns the held samples ordered oldest to newest.
func (h *History) Samples() []float64 {
	out := make([]float64, 0, h.count)
	start := (h.head + HistoryLen - h.count) % HistoryLen
	for i := 0; i < h.count; i++ {
		out = append(out, h.buf[(start+i)%HistoryLen])
	}
	return out
}
