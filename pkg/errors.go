package reducer

import "fmt"

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

// ErrShortRecord represents a truncated record in the event product.
type ErrShortRecord struct {
	Record string
	Err    error
}

func (e *ErrShortRecord) Error() string {
	return fmt.Sprintf("error reading record %q: %v", e.Record, e.Err)
}

// ErrBadMagic represents an input file that is not a Level-2 event product.
type ErrBadMagic struct {
	Magic uint32
}

func (e *ErrBadMagic) Error() string {
	return fmt.Sprintf("not a Level-2 event product: magic 0x%08x", e.Magic)
}

// ErrUnknownField represents a parameter name missing from the field table.
type ErrUnknownField struct {
	Field string
}

func (e *ErrUnknownField) Error() string {
	return fmt.Sprintf("unknown parameter %q", e.Field)
}

// ErrFieldReadOnly represents an attempt to edit a non-editable parameter.
type ErrFieldReadOnly struct {
	Field string
}

func (e *ErrFieldReadOnly) Error() string {
	return fmt.Sprintf("parameter %q is not editable", e.Field)
}

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}
