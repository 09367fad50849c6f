package log

import "gopkg.in/Sirupsen/logrus.v0"

// maxZFields bounds the number of fields a single EntryZ call chain can
// attach before End() flushes it; the NES core's hot-path log sites never
// need more than a handful of fields.
const maxZFields = 12

// EntryZ is a zero-overhead-when-disabled log builder: DebugZ/InfoZ/etc.
// return nil when the module/level isn't enabled, and every field method is
// a no-op on a nil receiver, so disabled log call chains cost one pointer
// comparison per field instead of a full logrus.Entry allocation.
type EntryZ struct {
	mod  Module
	lvl  Level
	msg  string
	zbuf [maxZFields]ZField
	zidx int

	// zfbuf/zfidx back the context fields contributed by AddLogContext.
	zfbuf [maxZFields]ZField
	zfidx int
}

func NewEntryZ() *EntryZ {
	return &EntryZ{}
}

func (e *EntryZ) push(f ZField) *EntryZ {
	if e == nil {
		return nil
	}
	if e.zidx < len(e.zbuf) {
		e.zbuf[e.zidx] = f
		e.zidx++
	}
	return e
}

func (e *EntryZ) String(key, val string) *EntryZ {
	return e.push(ZField{Type: FieldTypeString, Key: key, String: val})
}

func (e *EntryZ) Bool(key string, val bool) *EntryZ {
	return e.push(ZField{Type: FieldTypeBool, Key: key, Boolean: val})
}

func (e *EntryZ) Int(key string, val int) *EntryZ {
	return e.push(ZField{Type: FieldTypeInt, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Uint8(key string, val uint8) *EntryZ {
	return e.push(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Uint16(key string, val uint16) *EntryZ {
	return e.push(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Uint32(key string, val uint32) *EntryZ {
	return e.push(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Uint64(key string, val uint64) *EntryZ {
	return e.push(ZField{Type: FieldTypeUint, Key: key, Integer: val})
}

func (e *EntryZ) Hex8(key string, val uint8) *EntryZ {
	return e.push(ZField{Type: FieldTypeHex8, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Hex16(key string, val uint16) *EntryZ {
	return e.push(ZField{Type: FieldTypeHex16, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Hex32(key string, val uint32) *EntryZ {
	return e.push(ZField{Type: FieldTypeHex32, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	return e.push(ZField{Type: FieldTypeError, Key: key, Error: err})
}

// End flushes the builder to the logrus backend. No-op when the call chain
// was disabled (receiver is nil).
func (e *EntryZ) End() {
	if e == nil {
		return
	}

	final := logrus.StandardLogger().WithField("_mod", modNames[e.mod])
	for _, c := range contexts {
		c.AddLogContext(e)
	}

	fields := make(logrus.Fields, e.zidx+e.zfidx)
	for _, f := range e.zbuf[:e.zidx] {
		fields[f.Key] = f.Value()
	}
	for _, f := range e.zfbuf[:e.zfidx] {
		fields[f.Key] = f.Value()
	}
	entry := final.WithFields(fields)

	switch e.lvl {
	case DebugLevel:
		entry.Debug(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	case PanicLevel:
		entry.Panic(e.msg)
	}
}

// addContextField lets a LogContext contribute a field to the next flushed
// EntryZ without going through the String/Uint8/... fluent API.
func (e *EntryZ) addContextField(f ZField) {
	if e == nil || e.zfidx >= len(e.zfbuf) {
		return
	}
	e.zfbuf[e.zfidx] = f
	e.zfidx++
}

// LogContext lets a component (e.g. the console, to attach the current
// frame/scanline) contribute fields to every EntryZ log line without every
// call site having to pass them explicitly.
type LogContext interface {
	AddLogContext(e *EntryZ)
}

var contexts []LogContext

// RegisterContext installs a LogContext that will annotate every subsequent
// structured log entry.
func RegisterContext(c LogContext) {
	contexts = append(contexts, c)
}
