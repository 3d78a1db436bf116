package reducer

import (
	"fmt"
	"reflect"
	"strconv"
)

// ReductionParameters is the mutable configuration record of one
// reduction session, edited by the operator between re-runs. Fields
// tagged edit:"true" may be changed through SetField.
type ReductionParameters struct {
	FrameMin          int     `param:"frame_min" edit:"true"`
	FrameMax          int     `param:"frame_max" edit:"true"`
	Resolution        int     `param:"resolution" edit:"true"`
	ImageSize         int     `param:"image_size" edit:"true"`
	RegisterThreshold float64 `param:"register_threshold" edit:"true"`
	SourceMode        string  `param:"source_mode" edit:"true"`
	MinGoodFrames     int     `param:"min_good_frames" edit:"true"`
	OutputDir         string  `param:"output_dir" edit:"true"`
	Detector          string  `param:"detector" edit:"false"`
	RunNumber         int     `param:"run_number" edit:"false"`
}

func DefaultParameters() ReductionParameters {
	return ReductionParameters{
		FrameMin:          0,
		FrameMax:          -1,
		Resolution:        1,
		ImageSize:         512,
		RegisterThreshold: 3,
		SourceMode:        "point",
		MinGoodFrames:     1,
		OutputDir:         ".",
	}
}

func (p *ReductionParameters) registerMode() RegisterMode {
	if p.SourceMode == "diffuse" {
		return RegisterDiffuse
	}
	return RegisterPointSource
}

// ParamField is one entry of the enumerated field table.
type ParamField struct {
	Name     string
	Kind     reflect.Kind
	Editable bool
	Value    string
}

// Fields enumerates the parameter table in declaration order, with the
// current values rendered as strings.
func (p *ReductionParameters) Fields() []ParamField {
	t := reflect.TypeOf(*p)
	v := reflect.ValueOf(*p)
	fields := make([]ParamField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := f.Tag.Get("param")
		if name == "" {
			continue
		}
		fields = append(fields, ParamField{
			Name:     name,
			Kind:     f.Type.Kind(),
			Editable: f.Tag.Get("edit") == "true",
			Value:    fmt.Sprintf("%v", v.Field(i).Interface()),
		})
	}
	return fields
}

// SetField parses value into the named parameter. Unknown names and
// non-editable fields are rejected with typed errors.
func (p *ReductionParameters) SetField(name string, value string) error {
	t := reflect.TypeOf(*p)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Tag.Get("param") != name {
			continue
		}
		if f.Tag.Get("edit") != "true" {
			return &ErrFieldReadOnly{Field: name}
		}
		target := reflect.ValueOf(p).Elem().Field(i)
		switch f.Type.Kind() {
		case reflect.Int:
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("parsing %q for parameter %q: %w", value, name, err)
			}
			target.SetInt(int64(parsed))
		case reflect.Float64:
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("parsing %q for parameter %q: %w", value, name, err)
			}
			target.SetFloat(parsed)
		case reflect.String:
			target.SetString(value)
		default:
			return fmt.Errorf("unsupported kind %v for parameter %q", f.Type.Kind(), name)
		}
		return nil
	}
	return &ErrUnknownField{Field: name}
}

// EditParameters walks the editable fields through the prompter. An empty
// answer keeps the current value.
func (p *ReductionParameters) EditParameters(prompter Prompter) {
	for _, field := range p.Fields() {
		if !field.Editable {
			continue
		}
		value, ok := prompter.ReadValue(fmt.Sprintf("%s [%s]", field.Name, field.Value))
		if !ok {
			continue
		}
		if err := p.SetField(field.Name, value); err != nil {
			logger.Error(err.Error())
		}
	}
}
