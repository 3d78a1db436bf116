package reducer

// Prompter is the operator interaction boundary. Prompts are the only
// suspension points of a reduction session.
type Prompter interface {
	// Confirm asks a yes/no question and returns the answer, or the
	// default when the operator gives none.
	Confirm(question string, def bool) bool
	// ReadValue asks for a scalar value. ok is false when the operator
	// entered nothing.
	ReadValue(prompt string) (value string, ok bool)
}

// NullPrompter answers every prompt with its default. It makes a session
// unattended.
type NullPrompter struct{}

func (NullPrompter) Confirm(question string, def bool) bool { return def }

func (NullPrompter) ReadValue(prompt string) (string, bool) { return "", false }
