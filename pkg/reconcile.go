package reducer

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/slices"
)

type OffsetSource int

const (
	SourceNone OffsetSource = iota
	SourceUV
	SourceVisible
)

func (s OffsetSource) String() string {
	switch s {
	case SourceUV:
		return "UV self-tracked"
	case SourceVisible:
		return "visible-channel"
	default:
		return "none"
	}
}

// Reconciliation is the outcome of one reconciliation pass: the chosen
// source and the authoritative offset series, one (x, y) pair per frame.
type Reconciliation struct {
	Source        OffsetSource
	X             []float64
	Y             []float64
	FlaggedFrames int
}

// ReconcileOffsets fuses the two offset streams into the authoritative
// spacecraft offset series. First matching rule wins:
//
//  1. visible-channel offsets, when available with a valid fraction above
//     the threshold. Frames whose nearest sample has no valid attitude
//     are flagged.
//  2. UV self-tracked offsets, when usable. Frames with an offset beyond
//     the excursion limit on either axis are flagged.
//  3. neither source usable: the UV series verbatim, unflagged, so the
//     downstream registration effectively runs unregistered.
//
// The frames are mutated in place: DQI flags are only ever raised, never
// cleared, and the chosen series is written back into the frame offset
// fields. uvX/uvY is the self-tracked series captured before any
// previous reconciliation overwrote the frame fields.
func ReconcileOffsets(frames []EventFrame, samples []OffsetSample, detector string,
	uvX, uvY []float64, quality SourceQuality) Reconciliation {
	rec := Reconciliation{
		X: make([]float64, len(frames)),
		Y: make([]float64, len(frames)),
	}

	switch {
	case quality.VisAvailable && quality.VisValidFraction > thresholds.VisMinValidFraction:
		rec.Source = SourceVisible
		visX, visY, att := visibleSeries(frames, samples, detector)
		for i := range frames {
			rec.X[i] = visX[i]
			rec.Y[i] = visY[i]
			if att[i] != 0 && frames[i].DQI == DQIGood {
				frames[i].DQI = DQIOffsetUnreliable
				rec.FlaggedFrames++
			}
		}
	case quality.UVAvailable:
		rec.Source = SourceUV
		copy(rec.X, uvX)
		copy(rec.Y, uvY)
		for i := range frames {
			excursion := math.Abs(uvX[i]) > thresholds.UVExcursion ||
				math.Abs(uvY[i]) > thresholds.UVExcursion
			if excursion && frames[i].DQI == DQIGood {
				frames[i].DQI = DQIOffsetUnreliable
				rec.FlaggedFrames++
			}
		}
	default:
		rec.Source = SourceNone
		copy(rec.X, uvX)
		copy(rec.Y, uvY)
	}

	writeBackOffsets(frames, &rec)

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Offset source: %v, flagged frames: %d", rec.Source, rec.FlaggedFrames)
		logger.Info(message, "reconcile")
	}
	return rec
}

// visibleSeries resamples the sparser visible-channel series onto the
// frame time base by nearest sample, after rotating it into the UV
// detector frame. Returns one offset pair and one attitude flag per frame.
func visibleSeries(frames []EventFrame, samples []OffsetSample, detector string) ([]float64, []float64, []int32) {
	visX, visY := RotateToUVFrame(samples, detector)

	order := make([]int, len(samples))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		switch {
		case samples[a].Timestamp < samples[b].Timestamp:
			return -1
		case samples[a].Timestamp > samples[b].Timestamp:
			return 1
		default:
			return 0
		}
	})

	x := make([]float64, len(frames))
	y := make([]float64, len(frames))
	att := make([]int32, len(frames))
	for i := range frames {
		j := nearestSample(samples, order, frames[i].Timestamp)
		x[i] = visX[j]
		y[i] = visY[j]
		att[i] = samples[j].AttFlag
	}
	return x, y, att
}

// nearestSample returns the index of the sample closest in time to t.
// order must hold the sample indices sorted by timestamp.
func nearestSample(samples []OffsetSample, order []int, t float64) int {
	pos := sort.Search(len(order), func(i int) bool {
		return samples[order[i]].Timestamp >= t
	})
	if pos == 0 {
		return order[0]
	}
	if pos == len(order) {
		return order[len(order)-1]
	}
	before := order[pos-1]
	after := order[pos]
	if t-samples[before].Timestamp <= samples[after].Timestamp-t {
		return before
	}
	return after
}

func writeBackOffsets(frames []EventFrame, rec *Reconciliation) {
	for i := range frames {
		frames[i].XOff = float32(rec.X[i])
		frames[i].YOff = float32(rec.Y[i])
	}
}
