package reducer

import "fmt"

// The reprocessing loop is an explicit finite-state machine with a single
// back edge from the repeat decision to classification. One iteration:
// classify, reconcile, optional manual override, external registration
// and co-addition, optional persistence, repeat decision.
type loopState int

const (
	stateClassify loopState = iota
	stateReconcile
	stateOverride
	stateRegister
	statePersist
	stateRepeat
)

// Run executes the reduction loop until the operator declines to repeat
// or the input has no usable frames left. External call failures abort
// the current iteration with the saved quality flags intact.
func (s *Session) Run() error {
	var quality SourceQuality
	var rec Reconciliation
	var image *ImageAccumulator

	state := stateClassify
	for {
		switch state {
		case stateClassify:
			if GoodFrameCount(s.List.Frames) < s.Params.MinGoodFrames {
				logger.Error("not enough good points")
				if s.Interactive {
					s.Prompter.ReadValue("not enough good points, press enter to exit")
				}
				return nil
			}
			quality = ClassifySources(s.uvX, s.uvY, s.List.Samples)
			if configuration.Verbosity > 0 {
				message := fmt.Sprintf("UV available: %t, visible available: %t (valid fraction %.2f)",
					quality.UVAvailable, quality.VisAvailable, quality.VisValidFraction)
				logger.Info(message, "classify")
			}
			state = stateReconcile

		case stateReconcile:
			rec = ReconcileOffsets(s.List.Frames, s.List.Samples, s.List.Detector,
				s.uvX, s.uvY, quality)
			state = stateOverride

		case stateOverride:
			if s.Interactive {
				ApplyManualOverride(s, &rec)
			}
			state = stateRegister

		case stateRegister:
			mask := FrameMask(s.List.Frames)
			xScaled := ScaleOffsets(rec.X, s.Params.Resolution)
			yScaled := ScaleOffsets(rec.Y, s.Params.Resolution)
			xRefined, yRefined, err := s.Registrar.Register(s.List.Frames, &s.Params, mask,
				xScaled, yScaled, s.Params.RegisterThreshold, s.Params.registerMode())
			if err != nil {
				RestoreFlags(s.List.Frames, s.savedFlags)
				return fmt.Errorf("registration failed: %w", err)
			}
			res := float64(s.Params.Resolution)
			for i := range rec.X {
				rec.X[i] = xRefined[i] / res
				rec.Y[i] = yRefined[i] / res
			}
			writeBackOffsets(s.List.Frames, &rec)

			side := s.Params.ImageSize * s.Params.Resolution
			image = NewImageAccumulator(side, side)
			added, err := s.Adder.AddFrames(s.List.Frames, image, &s.Params, rec.X, rec.Y)
			if err != nil {
				RestoreFlags(s.List.Frames, s.savedFlags)
				return fmt.Errorf("co-addition failed: %w", err)
			}
			if configuration.Verbosity > 0 {
				message := fmt.Sprintf("Co-added %d frames", added)
				logger.Info(message, "coadd")
			}
			state = statePersist

		case statePersist:
			if s.Persist != nil && s.Prompter.Confirm("Write output products?", true) {
				if err := s.Persist(s, &rec, image); err != nil {
					RestoreFlags(s.List.Frames, s.savedFlags)
					return fmt.Errorf("persisting products: %w", err)
				}
			}
			state = stateRepeat

		case stateRepeat:
			if !s.Prompter.Confirm("Repeat with edited parameters?", false) {
				return nil
			}
			RestoreFlags(s.List.Frames, s.savedFlags)
			s.Params.EditParameters(s.Prompter)
			state = stateClassify
		}
	}
}
