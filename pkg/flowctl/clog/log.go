package clog

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

// this package provides (C)lient logs, or CLI logs. It writes to STDOUT and is designed for CLI
// output, not for log files. We want -v behavior familiar to kubectl users without pulling in
// klog's global flags and file machinery; clog provides just verbosity control for CLI output.

// guidance for use of V level
//  0-1 normal standard out
//  2-4 as debug-level logs
//  5-6 logical choices (e.g. which credential strategy was selected)
//  7-8 input/output details
//  9-10 as trace-level (http details)

// Level specifies a level of verbosity for V logs.
type Level int8

// pflag.Value implementation

// String is part of the flag.Value interface.
func (l *Level) String() string {
	return strconv.FormatInt(int64(*l), 10)
}

// Set is part of the flag.Value interface.
func (l *Level) Set(value string) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*l = Level(v)
	return nil
}

// Type is part of the pflag.Value interface.
func (l *Level) Type() string {
	return "Level"
}

type loggingT struct {
	verbosity Level // V logging level, the value of the -v flag
	out       io.Writer
}

func (l *loggingT) printf(format string, args ...interface{}) {
	fmt.Fprintf(l.out, format, args...)
	fmt.Fprintf(l.out, "\n")
}

var logging loggingT

// Verbose is a boolean type that implements Printf, guarded by the -v flag.
type Verbose bool

// V reports true if the verbosity at the call site is at least the requested level, enabling
//
//	clog.V(2).Printf("log this")
func V(level Level) Verbose {
	return Verbose(logging.verbosity >= level)
}

// Printf is equivalent to the global Printf function, guarded by the value of v.
func (v Verbose) Printf(format string, args ...interface{}) {
	if v {
		logging.printf(format, args...)
	}
}

// InitWithFlags allows for the initialization of log via root command
func InitWithFlags(f *pflag.FlagSet, out io.Writer) {
	// allows for initialization of writer in testing without CLI flags
	if f != nil {
		f.VarP(&logging.verbosity, "v", "v", "Log level for V logs")
	}
	logging.out = out
}

// InitNoFlag initializes without a CLI flag which means the level must be provided, useful for tests
func InitNoFlag(out io.Writer, level Level) {
	logging.verbosity = level
	logging.out = out
}

// Printf provides default level printing for things that will always print
func Printf(format string, args ...interface{}) {
	V(0).Printf(format, args...)
}

// Errorf formats and returns an error and logs it at level 2
func Errorf(format string, a ...interface{}) error {
	err := fmt.Errorf(format, a...)
	V(2).Printf("%v", err)
	return err
}

func init() {
	// expected to be overridden with InitWithFlags(). This simplifies testing and default behavior
	logging.out = os.Stdout
}
