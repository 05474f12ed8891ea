package panel

import (
	"go.uber.org/zap"
)

// Level distinguishes confirmation notices from failures.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelSuccess {
		return "success"
	}
	return "error"
}

// Notice is a transient, user-visible message. Code is empty for successes and
// carries the error code otherwise.
type Notice struct {
	Level   Level
	Code    string
	Message string
}

// Notifier surfaces notices to the user.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notice) { f(n) }

type logNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier writes notices to logger. Failures log at warn level.
func NewLogNotifier(logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logNotifier{logger: logger.Named("notice")}
}

func (n logNotifier) Notify(notice Notice) {
	if notice.Level == LevelSuccess {
		n.logger.Info(notice.Message)
		return
	}
	n.logger.Warn(notice.Message, zap.String("code", notice.Code))
}

func orNop(n Notifier) Notifier {
	if n == nil {
		return NotifierFunc(func(Notice) {})
	}
	return n
}
