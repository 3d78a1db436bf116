package reducer

// FlagSnapshot holds the persisted quality flags, distinct from the
// working copy in the frames. The saved values are always recoverable.
type FlagSnapshot []int32

func SnapshotFlags(frames []EventFrame) FlagSnapshot {
	snapshot := make(FlagSnapshot, len(frames))
	for i := range frames {
		snapshot[i] = frames[i].DQI
	}
	return snapshot
}

func RestoreFlags(frames []EventFrame, snapshot FlagSnapshot) {
	for i := range frames {
		if i >= len(snapshot) {
			break
		}
		frames[i].DQI = snapshot[i]
	}
}

func GoodFrameCount(frames []EventFrame) int {
	count := 0
	for i := range frames {
		if frames[i].DQI == DQIGood {
			count++
		}
	}
	return count
}

// PersistFunc writes the reduction products of one iteration. The binary
// binds it to the HDF5 writer.
type PersistFunc func(*Session, *Reconciliation, *ImageAccumulator) error

// Session owns one reduction run: the event list, the mutable parameters
// edited between iterations, the saved flag snapshot and the external
// collaborators. There is exactly one logical thread of control, so no
// locking is needed.
type Session struct {
	List        *EventList
	Params      ReductionParameters
	Prompter    Prompter
	Registrar   Registrar
	Adder       FrameAdder
	Persist     PersistFunc
	Interactive bool

	// Self-tracked UV offsets captured at session start, before any
	// reconciliation overwrites the frame offset fields.
	uvX, uvY   []float64
	savedFlags FlagSnapshot
}

func NewSession(list *EventList, params ReductionParameters) *Session {
	uvX, uvY := UVOffsets(list.Frames)
	return &Session{
		List:       list,
		Params:     params,
		Prompter:   NullPrompter{},
		Registrar:  NullRegistrar{},
		Adder:      ShiftAndAdd{},
		uvX:        uvX,
		uvY:        uvY,
		savedFlags: SnapshotFlags(list.Frames),
	}
}

// SavedFlags returns the snapshot taken at session start. These are the
// values persisted with the products, not the reconciliation working copy.
func (s *Session) SavedFlags() FlagSnapshot {
	return s.savedFlags
}
