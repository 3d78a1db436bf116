package reducer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Little-endian Level-2 event product layout: one file header, FrameCount
// frame records, OffsetCount visible-channel offset records.
const EventListMagic uint32 = 0x324C5655 // "UVL2"

type FileHeaderStruct struct {
	Magic       uint32
	Version     uint32
	RunNumber   uint32
	FrameCount  uint32
	OffsetCount uint32
	FrameMin    int32
	FrameMax    int32
	Detector    [8]byte
}

func (h *FileHeaderStruct) DetectorName() string {
	name := h.Detector[:]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return string(name)
}

// ReadEventList reads a full Level-2 event product into memory. A missing
// or degenerate offset extension (at most one record) is recovered by
// synthesizing an all-unavailable dummy series, never surfaced as an
// error.
func ReadEventList(r io.Reader) (*EventList, error) {
	var header FileHeaderStruct
	headerBinary := make([]byte, binary.Size(&header))
	if _, err := io.ReadFull(r, headerBinary); err != nil {
		return nil, &ErrShortRecord{Record: "file header", Err: err}
	}
	headerReader := bytes.NewReader(headerBinary)
	if err := binary.Read(headerReader, binary.LittleEndian, &header); err != nil {
		return nil, &ErrShortRecord{Record: "file header", Err: err}
	}

	if header.Magic != EventListMagic {
		return nil, &ErrBadMagic{Magic: header.Magic}
	}

	list := &EventList{
		RunNumber: header.RunNumber,
		Detector:  header.DetectorName(),
		FrameMin:  header.FrameMin,
		FrameMax:  header.FrameMax,
	}

	frameCount := int(header.FrameCount)
	if configuration.MaxFrames > 0 && frameCount > configuration.MaxFrames {
		frameCount = configuration.MaxFrames
	}
	list.Frames = make([]EventFrame, frameCount)
	var frame EventFrame
	frameBinary := make([]byte, binary.Size(&frame))
	for i := 0; i < frameCount; i++ {
		if _, err := io.ReadFull(r, frameBinary); err != nil {
			return nil, &ErrShortRecord{Record: fmt.Sprintf("frame %d", i), Err: err}
		}
		frameReader := bytes.NewReader(frameBinary)
		binary.Read(frameReader, binary.LittleEndian, &list.Frames[i])
	}

	// The offset extension starts after the full frame section, including
	// the records the MaxFrames cap left unread.
	if skipped := int64(header.FrameCount) - int64(frameCount); skipped > 0 {
		if _, err := io.CopyN(io.Discard, r, skipped*int64(binary.Size(&frame))); err != nil {
			return nil, &ErrShortRecord{Record: "frame section", Err: err}
		}
	}

	var sample OffsetSample
	sampleBinary := make([]byte, binary.Size(&sample))
	samples := make([]OffsetSample, 0, header.OffsetCount)
	for i := 0; i < int(header.OffsetCount); i++ {
		if _, err := io.ReadFull(r, sampleBinary); err != nil {
			break
		}
		sampleReader := bytes.NewReader(sampleBinary)
		binary.Read(sampleReader, binary.LittleEndian, &sample)
		samples = append(samples, sample)
	}

	if len(samples) <= 1 {
		if configuration.Verbosity > 0 {
			logger.Info("Offset extension missing or degenerate, synthesizing dummy series", "fileReader")
		}
		samples = SynthesizeOffsetSamples(list.Frames)
	}
	list.Samples = samples

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Run %d, detector %s: %d frames, %d offset samples",
			list.RunNumber, list.Detector, len(list.Frames), len(list.Samples))
		logger.Info(message, "fileReader")
	}
	return list, nil
}

// SynthesizeOffsetSamples builds the dummy visible-channel series used
// when the offset extension is absent: one all-zero sample per frame with
// the attitude marked unavailable, so the classifier rejects the source.
func SynthesizeOffsetSamples(frames []EventFrame) []OffsetSample {
	samples := make([]OffsetSample, len(frames))
	for i := range frames {
		samples[i] = OffsetSample{Timestamp: frames[i].Timestamp, AttFlag: 1}
	}
	return samples
}
