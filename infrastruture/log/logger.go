package logger

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/beka-birhanu/vinom-floodfill/config"
)

var ErrNilWriter = errors.New("logger output is nil")

// Logger writes leveled lines of the form "[PREFIX] [LEVEL] message", with
// the prefix in the component's color and the level in the level's color.
type Logger struct {
	prefix string
	color  string
	out    *log.Logger
}

// New creates a Logger for one component.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	return &Logger{
		prefix: prefix,
		color:  color,
		out:    log.New(w, "", log.LstdFlags),
	}, nil
}

func (l *Logger) Info(msg string) {
	l.print("INFO", config.LogInfoColor, msg)
}

func (l *Logger) Warning(msg string) {
	l.print("WARNING", config.LogWarningColor, msg)
}

func (l *Logger) Error(msg string) {
	l.print("ERROR", config.LogErrorColor, msg)
}

func (l *Logger) print(level, levelColor, msg string) {
	l.out.Println(fmt.Sprintf("%s[%s]%s %s[%s]%s %s",
		l.color, l.prefix, config.ColorReset,
		levelColor, level, config.LogColorReset,
		msg))
}
