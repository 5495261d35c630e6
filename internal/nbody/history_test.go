package nbody

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestStepCount(t *testing.T) {
	tests := []struct {
		name         string
		t0, tMax, dt float64
		expected     int
	}{
		{"exact", 0, 1.0, 0.1, 10},
		{"remainder", 0, 10, 3, 4},
		{"rounding", 0, 0.3, 0.1, 3},
		{"already done", 5, 5, 1, 0},
		{"past end", 6, 5, 1, 0},
		{"offset start", 2, 5, 1, 3},
		{"zero dt", 0, 5, 0, 0},
		{"default run", 0, DefaultDuration, DefaultStep, 9125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StepCount(tt.t0, tt.tMax, tt.dt)
			if got != tt.expected {
				t.Errorf("StepCount(%v, %v, %v) = %d, want %d", tt.t0, tt.tMax, tt.dt, got, tt.expected)
			}
			if got > 0 {
				end := tt.t0 + float64(got)*tt.dt
				if end < tt.tMax || end >= tt.tMax+tt.dt {
					t.Errorf("end time %v outside [%v, %v)", end, tt.tMax, tt.tMax+tt.dt)
				}
			}
		})
	}
}

func TestHistoryReserve(t *testing.T) {
	h := newHistory([]string{"a", "b"})
	h.reserve(8)
	for _, tr := range h.tracks {
		if cap(tr.points) < 8 {
			t.Errorf("%s: capacity %d, want >= 8", tr.name, cap(tr.points))
		}
	}

	before := &h.tracks[0].points[:1][0]
	for i := 0; i < 8; i++ {
		h.push(0, mgl64.Vec3{float64(i), 0, 0})
		h.push(1, mgl64.Vec3{0, float64(i), 0})
		h.times = append(h.times, float64(i))
	}
	if &h.tracks[0].points[0] != before {
		t.Error("reserved history reallocated while appending")
	}
	if h.Len() != 8 {
		t.Errorf("Len() = %d, want 8", h.Len())
	}
}

func TestHistoryCopies(t *testing.T) {
	h := newHistory([]string{"a"})
	h.push(0, mgl64.Vec3{1, 2, 3})
	h.times = append(h.times, 1)

	tr, err := h.Trajectory("a")
	if err != nil {
		t.Fatalf("trajectory: %v", err)
	}

	pts := tr.Points()
	pts[0] = mgl64.Vec3{9, 9, 9}
	xs, _ := tr.XY()
	xs[0] = 42
	frame := h.Frame(0)
	frame[0] = mgl64.Vec3{}

	if tr.At(0) != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("history mutated through a copy: %v", tr.At(0))
	}
}

func TestHistoryUnknownBody(t *testing.T) {
	h := newHistory([]string{"a"})
	if _, err := h.Trajectory("b"); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("expected ErrUnknownBody, got %v", err)
	}
}

func TestHistoryBounds(t *testing.T) {
	h := newHistory([]string{"a", "b"})
	if _, _, _, _, ok := h.Bounds(); ok {
		t.Error("empty history reported bounds")
	}

	h.push(0, mgl64.Vec3{-1, 2, 0})
	h.push(1, mgl64.Vec3{3, -4, 0})
	h.push(1, mgl64.Vec3{math.NaN(), 100, 0})

	minX, minY, maxX, maxY, ok := h.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if minX != -1 || minY != -4 || maxX != 3 || maxY != 2 {
		t.Errorf("Bounds() = %v %v %v %v", minX, minY, maxX, maxY)
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Step: 3, Time: 51840, Body: "Comet", Wrapped: ErrNonFinite}
	expected := "step 3 (t=51840.0s, Comet): nbody: non-finite state (NaN or Inf detected)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrNonFinite) {
		t.Error("SimulationError does not unwrap to ErrNonFinite")
	}
}
