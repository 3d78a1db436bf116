package reducer

import (
	"errors"
	"fmt"
	"reflect"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// Writer exports one reduction iteration to an HDF5 Level-2 product:
// the frame table, the authoritative offsets, the restored original
// quality flags, the reduction parameters and the co-added image.
type Writer struct {
	File         *hdf5.File
	Filename     string
	RunGroup     *hdf5.Group
	OffsetsGroup *hdf5.Group
	ImageGroup   *hdf5.Group
	FrameTable   *hdf5.Dataset
	RunInfoTable *hdf5.Dataset
	OffsetTable  *hdf5.Dataset
	DQITable     *hdf5.Dataset
	ParamsTable  *hdf5.Dataset
	ImageArray   *hdf5.Dataset
}

func NewWriter(filename string) *Writer {
	// Set string size for HDF5
	hdf5.SetStringLength(STRLEN)

	writer := &Writer{}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Creating file: %s", filename)
		logger.Info(message, "writer")
	}
	writer.File = openFile(filename)
	writer.Filename = filename
	writer.RunGroup = createGroup(writer.File, "Run")
	writer.OffsetsGroup = createGroup(writer.File, "Offsets")
	writer.ImageGroup = createGroup(writer.File, "Image")
	writer.FrameTable = createTable(writer.RunGroup, "frames", FrameDataHDF5{})
	writer.RunInfoTable = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{})
	writer.OffsetTable = createTable(writer.OffsetsGroup, "spacecraft", OffsetHDF5{})
	writer.DQITable = createTable(writer.OffsetsGroup, "dqi", DQIHDF5{})
	writer.ParamsTable = createTable(writer.OffsetsGroup, "parameters", ParamHDF5{})
	return writer
}

// WriteProducts persists the reduction outputs. The quality flags written
// are the saved originals, not the reconciliation working copy; the
// offset fields of the frames already carry the authoritative series.
func (w *Writer) WriteProducts(list *EventList, rec *Reconciliation,
	saved FlagSnapshot, params *ReductionParameters, image *ImageAccumulator) {
	writeEntryToTable(w.RunInfoTable, RunInfoHDF5{
		run_number: int32(list.RunNumber),
		detector:   convertToHdf5String(list.Detector),
	}, 0)

	n := len(list.Frames)
	frames := make([]FrameDataHDF5, n)
	offsets := make([]OffsetHDF5, n)
	flags := make([]DQIHDF5, n)
	for i := range list.Frames {
		frames[i] = FrameDataHDF5{
			frame_number: list.Frames[i].FrameIndex,
			orig_index:   list.Frames[i].OrigIndex,
			n_events:     list.Frames[i].NEvents,
			timestamp:    list.Frames[i].Timestamp,
		}
		offsets[i] = OffsetHDF5{
			xoff: float32(rec.X[i]),
			yoff: float32(rec.Y[i]),
		}
		if i < len(saved) {
			flags[i] = DQIHDF5{dqi: saved[i]}
		}
	}
	writeArrayToTable(w.FrameTable, &frames, 0)
	writeArrayToTable(w.OffsetTable, &offsets, 0)
	writeArrayToTable(w.DQITable, &flags, 0)

	w.writeReductionParameters(params)

	if image != nil {
		w.ImageArray = createImageArray(w.ImageGroup, "coadded", image.Height, image.Width)
		writeImage(w.ImageArray, &image.Counts, image.Height, image.Width)
	}
}

func (w *Writer) writeReductionParameters(params *ReductionParameters) {
	t := reflect.TypeOf(*params)
	n := t.NumField()
	entries := make([]ParamHDF5, n)

	fieldsToWrite := 0
	for i := 0; i < n; i++ {
		f := t.Field(i)
		paramName := f.Tag.Get("param")
		// Write only numeric fields, the paths and mode strings have no
		// place in the product
		switch f.Type.Kind() {
		case reflect.Int:
			value := reflect.ValueOf(*params).Field(i).Interface().(int)
			entries[fieldsToWrite] = ParamHDF5{
				paramStr: convertToHdf5String(paramName),
				value:    float64(value),
			}
			fieldsToWrite++
		case reflect.Float64:
			value := reflect.ValueOf(*params).Field(i).Interface().(float64)
			entries[fieldsToWrite] = ParamHDF5{
				paramStr: convertToHdf5String(paramName),
				value:    value,
			}
			fieldsToWrite++
		}
	}
	toWrite := entries[:fieldsToWrite]
	writeArrayToTable(w.ParamsTable, &toWrite, 0)
}

func (w *Writer) Close() error {
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Closing file: %s", w.Filename)
		logger.Info(message, "writer")
	}
	var errs []error

	if err := w.FrameTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing frame table: %w", err))
	}
	if err := w.RunInfoTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run info table: %w", err))
	}
	if err := w.OffsetTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing offset table: %w", err))
	}
	if err := w.DQITable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing dqi table: %w", err))
	}
	if err := w.ParamsTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing parameters table: %w", err))
	}
	if w.ImageArray != nil {
		if err := w.ImageArray.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing image array: %w", err))
		}
	}
	if err := w.RunGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run group: %w", err))
	}
	if err := w.OffsetsGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing offsets group: %w", err))
	}
	if err := w.ImageGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing image group: %w", err))
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
