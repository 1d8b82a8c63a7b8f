package core

// Logger is the app-wide structured logging contract.
// args may carry errors, maps or any context values the implementation
// knows how to report.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Notifier is the user-facing notification sink (toasts, alerts).
// Fire-and-forget: implementations must never block the caller and are
// never queried back.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier routes notifications to the Logger.
type LogNotifier struct {
	Log Logger
}

var _ Notifier = (*LogNotifier)(nil)

func (n LogNotifier) Success(msg string) { n.Log.Info(msg) }
func (n LogNotifier) Error(msg string)   { n.Log.Warn(msg) }
