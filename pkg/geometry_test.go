package reducer

import (
	"math"
	"testing"
)

func makeSamples(coords [][2]float32) []OffsetSample {
	samples := make([]OffsetSample, len(coords))
	for i, c := range coords {
		samples[i] = OffsetSample{
			Timestamp: float64(i),
			XOff:      c[0],
			YOff:      c[1],
		}
	}
	return samples
}

func TestRotateToUVFrameFlipsAxisForFUV(t *testing.T) {
	samples := makeSamples([][2]float32{{1, 2}, {-3, 4}, {0, -5}})
	x, y := RotateToUVFrame(samples, "FUV")

	wantX := []float64{1, -3, 0}
	wantY := []float64{-2, -4, 5}
	for i := range samples {
		if x[i] != wantX[i] || y[i] != wantY[i] {
			t.Errorf("sample %d: got (%v, %v), want (%v, %v)", i, x[i], y[i], wantX[i], wantY[i])
		}
	}
}

func TestRotateToUVFramePreservesNormForNUV(t *testing.T) {
	samples := makeSamples([][2]float32{{1, 0}, {3, 4}, {-2.5, 7.25}, {0, -1}})
	x, y := RotateToUVFrame(samples, "NUV")

	for i, sample := range samples {
		in := float64(sample.XOff)*float64(sample.XOff) + float64(sample.YOff)*float64(sample.YOff)
		out := x[i]*x[i] + y[i]*y[i]
		if math.Abs(in-out) > 1e-9 {
			t.Errorf("sample %d: norm not preserved, in %v out %v", i, in, out)
		}
	}
}

func TestRotateToUVFrameMatchesRotationMatrix(t *testing.T) {
	samples := makeSamples([][2]float32{{3, 4}})
	x, y := RotateToUVFrame(samples, "NUV")

	angle := 35 * math.Pi / 180
	wantX := 3*math.Cos(angle) - 4*math.Sin(angle)
	wantY := 3*math.Sin(angle) + 4*math.Cos(angle)
	if math.Abs(x[0]-wantX) > 1e-9 || math.Abs(y[0]-wantY) > 1e-9 {
		t.Errorf("got (%v, %v), want (%v, %v)", x[0], y[0], wantX, wantY)
	}
}

func TestRotateToUVFrameUnknownDetectorIsZero(t *testing.T) {
	samples := makeSamples([][2]float32{{1, 2}, {3, 4}, {5, 6}})
	for _, detector := range []string{"VIS", "", "fuv", "XRAY"} {
		x, y := RotateToUVFrame(samples, detector)
		if len(x) != len(samples) || len(y) != len(samples) {
			t.Fatalf("detector %q: length changed", detector)
		}
		for i := range samples {
			if x[i] != 0 || y[i] != 0 {
				t.Errorf("detector %q sample %d: got (%v, %v), want zeros", detector, i, x[i], y[i])
			}
		}
	}
}

func TestRotateToUVFrameEmptyInput(t *testing.T) {
	x, y := RotateToUVFrame(nil, "NUV")
	if len(x) != 0 || len(y) != 0 {
		t.Errorf("expected empty output, got %d/%d", len(x), len(y))
	}
}
