package reducer

import "math"

// QualityThresholds are the calibration constants of the classifier and
// the reconciliation policy. They can be overridden per run range from
// the calibration database.
type QualityThresholds struct {
	UVSaturation        float64
	UVExcursion         float64
	VisMinValidFraction float64
}

func DefaultThresholds() QualityThresholds {
	return QualityThresholds{
		UVSaturation:        100,
		UVExcursion:         500,
		VisMinValidFraction: 0.5,
	}
}

var thresholds = DefaultThresholds()

func GetThresholds() QualityThresholds {
	return thresholds
}

func SetThresholds(t QualityThresholds) {
	thresholds = t
}

// SourceQuality is the classifier verdict on the two offset sources.
type SourceQuality struct {
	UVAvailable      bool
	VisAvailable     bool
	VisValidFraction float64
}

// ClassifySources decides whether each offset source has usable data.
// The UV self-tracked series is usable when it is neither saturated
// (smallest absolute offset on either axis above the saturation level)
// nor trivially all-zero. The visible-channel series is usable when at
// least one sample carries a valid attitude solution.
func ClassifySources(uvX, uvY []float64, samples []OffsetSample) SourceQuality {
	quality := SourceQuality{}

	minAbs := math.Inf(1)
	maxAbs := 0.0
	for i := range uvX {
		for _, v := range [2]float64{math.Abs(uvX[i]), math.Abs(uvY[i])} {
			if v < minAbs {
				minAbs = v
			}
			if v > maxAbs {
				maxAbs = v
			}
		}
	}
	quality.UVAvailable = minAbs < thresholds.UVSaturation && maxAbs > 0

	if len(samples) == 0 {
		return quality
	}
	valid := 0
	for _, sample := range samples {
		if sample.AttFlag == 0 {
			valid++
		}
	}
	quality.VisAvailable = valid > 0
	quality.VisValidFraction = float64(valid) / float64(len(samples))
	return quality
}

// UVOffsets extracts the self-tracked UV offset series from the frames.
func UVOffsets(frames []EventFrame) ([]float64, []float64) {
	x := make([]float64, len(frames))
	y := make([]float64, len(frames))
	for i := range frames {
		x[i] = float64(frames[i].XOff)
		y[i] = float64(frames[i].YOff)
	}
	return x, y
}
