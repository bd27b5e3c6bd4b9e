package log

import (
	"fmt"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level int

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

func init() {
	logrus.SetLevel(logrus.DebugLevel)
}

// EntryZ is a log entry under construction. Fields are accumulated with the
// typed setters and the entry is emitted by End. A nil *EntryZ (level
// filtered out) is valid: all methods are no-ops.
type EntryZ struct {
	mod    Module
	lvl    Level
	msg    string
	fields logrus.Fields
}

func newEntryZ(mod Module, lvl Level, msg string) *EntryZ {
	if !mod.Enabled(lvl) {
		return nil
	}
	return &EntryZ{mod: mod, lvl: lvl, msg: msg, fields: make(logrus.Fields, 8)}
}

func (e *EntryZ) String(key, val string) *EntryZ {
	if e != nil {
		e.fields[key] = val
	}
	return e
}

func (e *EntryZ) Stringer(key string, val fmt.Stringer) *EntryZ {
	if e != nil {
		e.fields[key] = val.String()
	}
	return e
}

func (e *EntryZ) Bool(key string, val bool) *EntryZ {
	if e != nil {
		e.fields[key] = val
	}
	return e
}

func (e *EntryZ) Int(key string, val int) *EntryZ {
	if e != nil {
		e.fields[key] = val
	}
	return e
}

func (e *EntryZ) Int64(key string, val int64) *EntryZ {
	if e != nil {
		e.fields[key] = val
	}
	return e
}

func (e *EntryZ) Hex8(key string, val uint8) *EntryZ {
	if e != nil {
		e.fields[key] = fmt.Sprintf("%02x", val)
	}
	return e
}

func (e *EntryZ) Hex16(key string, val uint16) *EntryZ {
	if e != nil {
		e.fields[key] = fmt.Sprintf("%04x", val)
	}
	return e
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	if e != nil {
		e.fields[key] = err
	}
	return e
}

// End emits the entry.
func (e *EntryZ) End() {
	if e == nil {
		return
	}
	entry := logrus.StandardLogger().
		WithField("_mod", modNames[e.mod]).
		WithFields(e.fields)

	switch e.lvl {
	case PanicLevel:
		entry.Panic(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	default:
		entry.Debug(e.msg)
	}
}

// printf-like family, for the places where structured fields are overkill.

func (mod Module) logf(lvl Level, format string, args ...any) {
	if !mod.Enabled(lvl) {
		return
	}
	entry := logrus.StandardLogger().WithField("_mod", modNames[mod])
	switch lvl {
	case FatalLevel:
		entry.Fatalf(format, args...)
	case ErrorLevel:
		entry.Errorf(format, args...)
	case WarnLevel:
		entry.Warnf(format, args...)
	case InfoLevel:
		entry.Infof(format, args...)
	default:
		entry.Debugf(format, args...)
	}
}

func (mod Module) Debugf(format string, args ...any) { mod.logf(DebugLevel, format, args...) }
func (mod Module) Infof(format string, args ...any)  { mod.logf(InfoLevel, format, args...) }
func (mod Module) Warnf(format string, args ...any)  { mod.logf(WarnLevel, format, args...) }
func (mod Module) Errorf(format string, args ...any) { mod.logf(ErrorLevel, format, args...) }
func (mod Module) Fatalf(format string, args ...any) { mod.logf(FatalLevel, format, args...) }
