package reducer

type Logger interface {
	Info(message string, module string)
	Error(string)
}

// The library logs through whatever the binary injects. The no-op default
// keeps the package usable standalone.
var logger Logger = nopLogger{}

func SetLogger(l Logger) {
	logger = l
}

type nopLogger struct{}

func (nopLogger) Info(string, string) {}
func (nopLogger) Error(string)        {}
