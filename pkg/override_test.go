package reducer

import "testing"

func TestManualOverrideKeepsAutomaticChoice(t *testing.T) {
	list := testList(50)
	list.Samples = trackedSamples(50, 50)
	s := NewSession(list, testParams())
	s.Prompter = &scriptedPrompter{confirms: []bool{true}}

	quality := ClassifySources(s.uvX, s.uvY, list.Samples)
	rec := ReconcileOffsets(list.Frames, list.Samples, list.Detector, s.uvX, s.uvY, quality)
	if rec.Source != SourceVisible {
		t.Fatalf("setup: source = %v", rec.Source)
	}

	ApplyManualOverride(s, &rec)
	if rec.Source != SourceVisible {
		t.Errorf("source changed to %v after keeping the automatic choice", rec.Source)
	}
}

func TestManualOverrideForcesUV(t *testing.T) {
	list := testList(50)
	list.Samples = trackedSamples(50, 50) // visible wins automatically
	s := NewSession(list, testParams())
	s.Prompter = &scriptedPrompter{confirms: []bool{false, false}}

	quality := ClassifySources(s.uvX, s.uvY, list.Samples)
	rec := ReconcileOffsets(list.Frames, list.Samples, list.Detector, s.uvX, s.uvY, quality)

	ApplyManualOverride(s, &rec)
	if rec.Source != SourceUV {
		t.Fatalf("source = %v, want UV", rec.Source)
	}
	for i := range rec.X {
		if rec.X[i] != 10 || rec.Y[i] != 10 {
			t.Fatalf("frame %d: series (%v, %v), want the self-tracked (10, 10)", i, rec.X[i], rec.Y[i])
		}
	}
	if float64(list.Frames[15].XOff) != 10 {
		t.Error("forced series not written back into the frames")
	}
}

func TestManualOverrideForcesVisible(t *testing.T) {
	list := testList(100)
	list.Samples = trackedSamples(100, 50) // fraction 0.5, UV wins automatically
	s := NewSession(list, testParams())
	s.Prompter = &scriptedPrompter{confirms: []bool{false, true}}

	quality := ClassifySources(s.uvX, s.uvY, list.Samples)
	rec := ReconcileOffsets(list.Frames, list.Samples, list.Detector, s.uvX, s.uvY, quality)
	if rec.Source != SourceUV {
		t.Fatalf("setup: source = %v", rec.Source)
	}

	ApplyManualOverride(s, &rec)
	if rec.Source != SourceVisible {
		t.Fatalf("source = %v, want visible", rec.Source)
	}
	wantX, wantY, _ := visibleSeries(list.Frames, list.Samples, list.Detector)
	for i := range rec.X {
		if rec.X[i] != wantX[i] || rec.Y[i] != wantY[i] {
			t.Fatalf("frame %d: series (%v, %v), want (%v, %v)", i, rec.X[i], rec.Y[i], wantX[i], wantY[i])
		}
	}
}

func TestManualOverrideLeavesFlagsAlone(t *testing.T) {
	list := testList(100)
	list.Samples = trackedSamples(100, 80)
	s := NewSession(list, testParams())
	s.Prompter = &scriptedPrompter{confirms: []bool{false, false}}

	quality := ClassifySources(s.uvX, s.uvY, list.Samples)
	rec := ReconcileOffsets(list.Frames, list.Samples, list.Detector, s.uvX, s.uvY, quality)
	before := SnapshotFlags(list.Frames)

	ApplyManualOverride(s, &rec)
	after := SnapshotFlags(list.Frames)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("frame %d: flag changed from %d to %d by the override", i, before[i], after[i])
		}
	}
}
