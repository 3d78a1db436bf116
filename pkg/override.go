package reducer

import "fmt"

// ApplyManualOverride lets the operator force an offset source instead of
// the automatic choice. Interactive sessions only. Overwriting the series
// bypasses the reconciliation rules but leaves the quality flags exactly
// as the automatic policy set them.
func ApplyManualOverride(s *Session, rec *Reconciliation) {
	question := fmt.Sprintf("Selected offset source: %v. Keep it?", rec.Source)
	if s.Prompter.Confirm(question, true) {
		return
	}

	if s.Prompter.Confirm("Use visible-channel offsets?", false) {
		rec.Source = SourceVisible
		visX, visY, _ := visibleSeries(s.List.Frames, s.List.Samples, s.List.Detector)
		copy(rec.X, visX)
		copy(rec.Y, visY)
	} else {
		rec.Source = SourceUV
		copy(rec.X, s.uvX)
		copy(rec.Y, s.uvY)
	}
	writeBackOffsets(s.List.Frames, rec)

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Offset source forced to %v", rec.Source)
		logger.Info(message, "override")
	}
}
