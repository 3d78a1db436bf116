package reducer

import "testing"

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	frames := makeFrames(100, 10, 10)
	frames[10].DQI = 1
	frames[20].DQI = 4

	saved := SnapshotFlags(frames)

	// mutate the working copy
	for i := range frames {
		frames[i].DQI = DQIOffsetUnreliable
	}
	RestoreFlags(frames, saved)

	for i := range frames {
		if frames[i].DQI != saved[i] {
			t.Fatalf("frame %d: DQI = %d, want %d", i, frames[i].DQI, saved[i])
		}
	}
	if frames[10].DQI != 1 || frames[20].DQI != 4 {
		t.Error("restored flags differ from the originals")
	}
}

func TestSnapshotIsDistinctFromWorkingCopy(t *testing.T) {
	frames := makeFrames(10, 0, 0)
	saved := SnapshotFlags(frames)

	frames[0].DQI = DQIOffsetUnreliable
	if saved[0] != DQIGood {
		t.Error("snapshot shares storage with the working copy")
	}
}

func TestGoodFrameCount(t *testing.T) {
	frames := makeFrames(10, 0, 0)
	frames[1].DQI = DQIOffsetUnreliable
	frames[2].DQI = 1

	if got := GoodFrameCount(frames); got != 8 {
		t.Errorf("GoodFrameCount = %d, want 8", got)
	}
}

func TestNewSessionCapturesUVSeries(t *testing.T) {
	frames := makeFrames(5, 12, -7)
	list := &EventList{Detector: "FUV", Frames: frames}
	list.Samples = SynthesizeOffsetSamples(frames)

	s := NewSession(list, DefaultParameters())

	// reconciliation overwrites the frame offsets, the captured series
	// must not move with them
	for i := range list.Frames {
		list.Frames[i].XOff = 999
	}
	if s.uvX[0] != 12 || s.uvY[0] != -7 {
		t.Errorf("captured UV series = (%v, %v), want (12, -7)", s.uvX[0], s.uvY[0])
	}
}
