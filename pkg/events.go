package reducer

// MaxFrameEvents is the photon capacity of a single detector frame.
// The acquisition system never delivers more centroids per frame.
const MaxFrameEvents = 336

// Data quality codes stored per frame.
const (
	DQIGood             int32 = 0
	DQIOffsetUnreliable int32 = 2
)

// EventFrame is one detector frame of the Level-2 event list. The photon
// position arrays have fixed capacity with NEvents valid entries. The DQI
// and offset fields are working values: reconciliation mutates them in
// place and the saved flags are restored before every re-run.
type EventFrame struct {
	FrameIndex int32
	OrigIndex  int32
	NEvents    int32
	DQI        int32
	Timestamp  float64
	XOff       float32
	YOff       float32
	X          [MaxFrameEvents]float32
	Y          [MaxFrameEvents]float32
}

// OffsetSample is one visible-channel tracking measurement. The samples
// are on a sparser time base than the event frames. AttFlag 0 means the
// attitude solution is valid, anything else means unreliable or missing.
type OffsetSample struct {
	Timestamp float64
	XOff      float32
	YOff      float32
	AttFlag   int32
}

// EventList is the in-memory Level-2 product owned by one reduction
// session: the frame collection, the optional visible-channel offset
// extension and the header metadata needed for the reduction.
type EventList struct {
	RunNumber uint32
	Detector  string
	FrameMin  int32
	FrameMax  int32
	Frames    []EventFrame
	Samples   []OffsetSample
}
