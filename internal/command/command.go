// Package command implements the operator command grammar: line
// accumulation with destructive-edit handling, tokenization into a
// tagged command value, and range validation. It knows nothing about
// the servo or the sensor; the control loop applies accepted commands.
package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags a parsed command.
type Kind int

const (
	KindHelp Kind = iota
	KindStopNow
	KindStopIn
	KindSetThrottle
	KindSetTargetRPM
	KindRead
)

// Command is one parsed and tokenized operator command. Value is
// meaningful for KindStopIn (minutes), KindSetThrottle and
// KindSetTargetRPM.
type Command struct {
	Kind  Kind
	Value float64
	// Raw is the trimmed line the command was parsed from.
	Raw string
}

// ParseError reports a line whose argument was not numeric.
type ParseError struct {
	Verb string
	Raw  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s value in command <%s>", e.Verb, e.Raw)
}

// UnrecognizedError reports a line matching no verb.
type UnrecognizedError struct {
	Raw string
}

func (e *UnrecognizedError) Error() string {
	return fmt.Sprintf("invalid command <%s>", e.Raw)
}

// RangeError reports a numeric argument outside its allowed bound.
type RangeError struct {
	Verb     string
	Value    float64
	Min, Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %f out of range [%f .. %f]", e.Verb, e.Value, e.Min, e.Max)
}

// Parse tokenizes one completed line into a Command. The line is
// split on whitespace into a verb and an optional argument, and the
// argument parsed as a float. Verbs are exact lowercase words, not
// the original firmware's positional prefix match.
func Parse(line string) (Command, error) {
	raw := strings.TrimSpace(line)
	fields := strings.Fields(raw)
	var verb, arg string
	if len(fields) > 0 {
		verb = fields[0]
		arg = strings.Join(fields[1:], " ")
	}

	switch verb {
	case "help":
		return Command{Kind: KindHelp, Raw: raw}, nil
	case "stop":
		if arg == "" {
			return Command{Kind: KindStopNow, Raw: raw}, nil
		}
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return Command{}, &ParseError{Verb: "stop time", Raw: raw}
		}
		return Command{Kind: KindStopIn, Value: v, Raw: raw}, nil
	case "speed":
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return Command{}, &ParseError{Verb: "speed", Raw: raw}
		}
		return Command{Kind: KindSetThrottle, Value: v, Raw: raw}, nil
	case "rpm":
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return Command{}, &ParseError{Verb: "rpm", Raw: raw}
		}
		return Command{Kind: KindSetTargetRPM, Value: v, Raw: raw}, nil
	case "read":
		return Command{Kind: KindRead, Raw: raw}, nil
	}
	return Command{}, &UnrecognizedError{Raw: raw}
}

// Limits holds the per-verb argument bounds.
type Limits struct {
	MinThrottle    float64
	MaxThrottle    float64
	MaxRPM         float64
	MaxStopMinutes float64
}

// Validate checks a parsed command against the bound table. Commands
// without arguments always pass.
func Validate(cmd Command, lim Limits) error {
	switch cmd.Kind {
	case KindStopIn:
		if cmd.Value < 0 || cmd.Value > lim.MaxStopMinutes {
			return &RangeError{Verb: "stop time", Value: cmd.Value, Min: 0, Max: lim.MaxStopMinutes}
		}
	case KindSetThrottle:
		if cmd.Value < lim.MinThrottle || cmd.Value > lim.MaxThrottle {
			return &RangeError{Verb: "speed", Value: cmd.Value, Min: lim.MinThrottle, Max: lim.MaxThrottle}
		}
	case KindSetTargetRPM:
		if cmd.Value < 0 || cmd.Value > lim.MaxRPM {
			return &RangeError{Verb: "rpm", Value: cmd.Value, Min: 0, Max: lim.MaxRPM}
		}
	}
	return nil
}

// HelpText is the response to the help command.
const HelpText = ` Magnetic Field Rotator Commands:
help - prints this message
stop - stops the servo (both speed and rpm mode)
stop minutes - stops the servo after the given number of minutes
speed value - sets the speed to given value (only works if rpm value = 0)
rpm value - sets the desired RPM value (set rpm 0 to use speed command)
read - returns magnet probe readout
`
