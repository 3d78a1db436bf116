package reducer

import "math"

// ImageAccumulator is the co-added sky image, one photon count per pixel
// at the oversampled resolution.
type ImageAccumulator struct {
	Width  int
	Height int
	Counts []int32
}

func NewImageAccumulator(width, height int) *ImageAccumulator {
	return &ImageAccumulator{
		Width:  width,
		Height: height,
		Counts: make([]int32, width*height),
	}
}

func (im *ImageAccumulator) At(x, y int) int32 {
	return im.Counts[y*im.Width+x]
}

func (im *ImageAccumulator) add(x, y int) {
	if x < 0 || x >= im.Width || y < 0 || y >= im.Height {
		return
	}
	im.Counts[y*im.Width+x]++
}

// ShiftAndAdd bins the photon positions of every good frame into the
// accumulator after applying the per-frame offset correction at the
// configured resolution. Frames with a nonzero quality flag are skipped.
type ShiftAndAdd struct{}

func (ShiftAndAdd) AddFrames(frames []EventFrame, image *ImageAccumulator,
	params *ReductionParameters, xOff, yOff []float64) (int, error) {
	res := float64(params.Resolution)
	added := 0
	for i := range frames {
		if frames[i].DQI != DQIGood {
			continue
		}
		for k := 0; k < int(frames[i].NEvents); k++ {
			px := int(math.Round((float64(frames[i].X[k]) - xOff[i]) * res))
			py := int(math.Round((float64(frames[i].Y[k]) - yOff[i]) * res))
			image.add(px, py)
		}
		added++
	}
	return added, nil
}
