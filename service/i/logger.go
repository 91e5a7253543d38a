package i

// Logger writes leveled log messages.
type Logger interface {
	Debug(string)
	Info(string)
	Warning(string)
	Error(string)
}
