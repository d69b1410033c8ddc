package notify

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notifier is the fire-and-forget notification sink invoked after
// every create, update and delete.
type Notifier interface {
	Notify(kind Kind, title, message string)
}

// LogNotifier emits notifications as structured log entries.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier builds a zap-backed sink.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(kind Kind, title, message string) {
	n.logger.Info("notification",
		zap.String("kind", string(kind)),
		zap.String("title", title),
		zap.String("message", message))
}

// ConsoleNotifier writes toast-style lines for interactive use.
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier builds a sink writing to out.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

func (n *ConsoleNotifier) Notify(kind Kind, title, message string) {
	fmt.Fprintf(n.out, "[%s] %s: %s\n", kind, title, message)
}

// Multi fans a notification out to several sinks.
func Multi(notifiers ...Notifier) Notifier {
	return multiNotifier(notifiers)
}

type multiNotifier []Notifier

func (m multiNotifier) Notify(kind Kind, title, message string) {
	for _, n := range m {
		if n != nil {
			n.Notify(kind, title, message)
		}
	}
}
