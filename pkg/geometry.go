package reducer

import "math"

type GeometryMode int

const (
	// GeometryZero disables the visible-channel source for unknown
	// detectors: no rotation, no signal.
	GeometryZero GeometryMode = iota
	GeometryFlip
	GeometryRotate
)

// DetectorGeometry maps visible-channel offsets into the UV detector
// coordinate frame. One fixed entry per detector type.
type DetectorGeometry struct {
	Mode        GeometryMode
	RotationDeg float64
}

var geometries = defaultGeometries()

func defaultGeometries() map[string]DetectorGeometry {
	return map[string]DetectorGeometry{
		"FUV": {Mode: GeometryFlip},
		"NUV": {Mode: GeometryRotate, RotationDeg: 35},
	}
}

func geometryFor(detector string) DetectorGeometry {
	if geom, ok := geometries[detector]; ok {
		return geom
	}
	return DetectorGeometry{Mode: GeometryZero}
}

// RotateToUVFrame transforms the visible-channel offset samples into the
// UV detector frame of the given detector type. The output arrays keep
// the length and order of the input. Unknown detector types yield
// all-zero series rather than an error.
func RotateToUVFrame(samples []OffsetSample, detector string) ([]float64, []float64) {
	xUV := make([]float64, len(samples))
	yUV := make([]float64, len(samples))

	geom := geometryFor(detector)
	switch geom.Mode {
	case GeometryFlip:
		for i, sample := range samples {
			xUV[i] = float64(sample.XOff)
			yUV[i] = -float64(sample.YOff)
		}
	case GeometryRotate:
		angle := geom.RotationDeg * math.Pi / 180
		sin, cos := math.Sincos(angle)
		for i, sample := range samples {
			x := float64(sample.XOff)
			y := float64(sample.YOff)
			xUV[i] = x*cos - y*sin
			yUV[i] = x*sin + y*cos
		}
	case GeometryZero:
		// Arrays stay zero, the classifier will reject the source
	}
	return xUV, yUV
}
