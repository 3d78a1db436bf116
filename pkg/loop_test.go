package reducer

import (
	"errors"
	"testing"
)

func testList(nFrames int) *EventList {
	frames := makeFrames(nFrames, 10, 10)
	return &EventList{
		RunNumber: 1,
		Detector:  "FUV",
		Frames:    frames,
		Samples:   SynthesizeOffsetSamples(frames),
	}
}

func testParams() ReductionParameters {
	params := DefaultParameters()
	params.Resolution = 1
	params.ImageSize = 64
	return params
}

func TestRunUnattendedSinglePass(t *testing.T) {
	list := testList(10)
	s := NewSession(list, testParams())

	persisted := 0
	s.Persist = func(*Session, *Reconciliation, *ImageAccumulator) error {
		persisted++
		return nil
	}

	if err := s.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if persisted != 1 {
		t.Errorf("persisted %d times, want 1 (single unattended pass)", persisted)
	}
}

func TestRunNotEnoughGoodPoints(t *testing.T) {
	list := testList(10)
	for i := range list.Frames {
		list.Frames[i].DQI = 1
	}
	s := NewSession(list, testParams())

	persisted := false
	s.Persist = func(*Session, *Reconciliation, *ImageAccumulator) error {
		persisted = true
		return nil
	}

	if err := s.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if persisted {
		t.Error("no products should be written when no frame is good")
	}
}

func TestRunRepeatRestoresFlags(t *testing.T) {
	list := testList(1000)
	// 800 valid visible samples, 200 invalid: rule 1 flags 200 frames
	list.Samples = trackedSamples(1000, 800)

	s := NewSession(list, testParams())
	s.Interactive = true
	s.Prompter = &scriptedPrompter{
		// iteration 1: keep source, persist, repeat
		// iteration 2: keep source, persist, stop
		confirms: []bool{true, true, true, true, true, false},
	}

	var flagged []int
	s.Persist = func(_ *Session, rec *Reconciliation, _ *ImageAccumulator) error {
		flagged = append(flagged, rec.FlaggedFrames)
		return nil
	}

	if err := s.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(flagged) != 2 {
		t.Fatalf("ran %d iterations, want 2", len(flagged))
	}
	// without the flag restore the second pass would find the frames
	// already flagged and report zero
	if flagged[0] != 200 || flagged[1] != 200 {
		t.Errorf("flagged per iteration = %v, want [200 200]", flagged)
	}
}

type failingRegistrar struct{}

func (failingRegistrar) Register([]EventFrame, *ReductionParameters, []int32,
	[]float64, []float64, float64, RegisterMode) ([]float64, []float64, error) {
	return nil, nil, errors.New("registration diverged")
}

func TestRunRegistrationFailureKeepsSavedFlags(t *testing.T) {
	list := testList(100)
	list.Frames[4].DQI = 1
	list.Samples = trackedSamples(100, 50) // forces UV fallback, no new flags

	s := NewSession(list, testParams())
	s.Registrar = failingRegistrar{}

	if err := s.Run(); err == nil {
		t.Fatal("expected the registration failure to propagate")
	}
	for i := range list.Frames {
		want := DQIGood
		if i == 4 {
			want = 1
		}
		if list.Frames[i].DQI != want {
			t.Fatalf("frame %d: DQI = %d, want %d (saved state)", i, list.Frames[i].DQI, want)
		}
	}
}

func TestRunScalesOffsetsForRegistration(t *testing.T) {
	list := testList(10)
	params := testParams()
	params.Resolution = 8

	s := NewSession(list, params)

	var gotX []float64
	s.Registrar = recordingRegistrar{&gotX}

	if err := s.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// UV offsets are 10, scaled by the resolution factor
	for i, v := range gotX {
		if v != 80 {
			t.Fatalf("scaled offset %d = %v, want 80", i, v)
		}
	}
}

type recordingRegistrar struct {
	x *[]float64
}

func (r recordingRegistrar) Register(frames []EventFrame, params *ReductionParameters, mask []int32,
	xOffScaled, yOffScaled []float64, threshold float64, mode RegisterMode) ([]float64, []float64, error) {
	*r.x = append([]float64(nil), xOffScaled...)
	return xOffScaled, yOffScaled, nil
}
