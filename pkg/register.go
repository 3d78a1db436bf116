package reducer

type RegisterMode int

const (
	RegisterPointSource RegisterMode = iota
	RegisterDiffuse
)

// Registrar refines the per-frame offsets from the photon data itself.
// The offsets are passed pre-scaled by the spatial resolution factor.
// The registration algorithm lives outside this package.
type Registrar interface {
	Register(frames []EventFrame, params *ReductionParameters, mask []int32,
		xOffScaled, yOffScaled []float64, threshold float64, mode RegisterMode) ([]float64, []float64, error)
}

// FrameAdder co-adds the photon positions of the good frames into the
// image accumulator using the authoritative offsets. Returns the number
// of frames added.
type FrameAdder interface {
	AddFrames(frames []EventFrame, image *ImageAccumulator, params *ReductionParameters,
		xOff, yOff []float64) (int, error)
}

// NullRegistrar returns the offsets unchanged. It is the default binding
// when no registration algorithm is wired in.
type NullRegistrar struct{}

func (NullRegistrar) Register(frames []EventFrame, params *ReductionParameters, mask []int32,
	xOffScaled, yOffScaled []float64, threshold float64, mode RegisterMode) ([]float64, []float64, error) {
	return xOffScaled, yOffScaled, nil
}

// FrameMask marks each frame usable (1) or excluded (0) for registration.
func FrameMask(frames []EventFrame) []int32 {
	mask := make([]int32, len(frames))
	for i := range frames {
		if frames[i].DQI == DQIGood {
			mask[i] = 1
		}
	}
	return mask
}

// ScaleOffsets multiplies an offset series by the resolution factor, as
// the registration boundary expects.
func ScaleOffsets(offsets []float64, resolution int) []float64 {
	scaled := make([]float64, len(offsets))
	for i, v := range offsets {
		scaled[i] = v * float64(resolution)
	}
	return scaled
}
