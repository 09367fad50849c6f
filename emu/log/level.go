package log

import "gopkg.in/Sirupsen/logrus.v0"

type Level uint32

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

func (l Level) logrus() logrus.Level {
	return logrus.Level(l)
}

// SetLevel sets the minimum level the standard logger will emit.
func SetLevel(l Level) {
	logrus.SetLevel(l.logrus())
}
