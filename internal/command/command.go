package command

import (
	"strconv"
	"strings"
)

// Kind identifies a decoded command.
type Kind string

const (
	KindUnrecognized    Kind = "unrecognized"
	KindReplaceSchedule Kind = "replace_schedule"
	KindResetSchedule   Kind = "reset_schedule"
	KindReportTime      Kind = "report_time"
	KindManualDispense  Kind = "manual_dispense"
	KindSetAutomatic    Kind = "set_automatic"
	KindSetManual       Kind = "set_manual"
	KindMotorControl    Kind = "motor_control"
)

// MotorAction is a bench-test motor order.
type MotorAction string

const (
	MotorForward  MotorAction = "forward"
	MotorBackward MotorAction = "backward"
	MotorStop     MotorAction = "stop"
)

// Wire literals.
const (
	SchedulePrefix = "SCHEDULE:"
	ResetSchedule  = "RESETSCH"
	GetTime        = "GETTIME"
	Dispense       = "D"
	Feed           = "FEED"
	Auto           = "AUTO"
	Manual         = "MANUAL"
)

// Command is one decoded protocol line.
type Command struct {
	Kind Kind
	// Times holds the trimmed schedule candidates of a SCHEDULE line.
	Times []string
	// Motor is set for KindMotorControl.
	Motor MotorAction
	// Raw is the trimmed input line.
	Raw string
}

// Parser decodes lines. MotorPort selects which M<port>F/B/S tokens are accepted.
type Parser struct {
	MotorPort int
}

// NewParser returns a parser accepting bench tokens for motorPort.
func NewParser(motorPort int) *Parser {
	return &Parser{MotorPort: motorPort}
}

// Parse decodes a single line. Unknown input yields KindUnrecognized.
func (p *Parser) Parse(line string) Command {
	line = strings.TrimSpace(line)
	cmd := Command{Kind: KindUnrecognized, Raw: line}

	switch line {
	case ResetSchedule:
		cmd.Kind = KindResetSchedule
	case GetTime:
		cmd.Kind = KindReportTime
	case Dispense, Feed:
		cmd.Kind = KindManualDispense
	case Auto:
		cmd.Kind = KindSetAutomatic
	case Manual:
		cmd.Kind = KindSetManual
	default:
		if payload, ok := strings.CutPrefix(line, SchedulePrefix); ok {
			cmd.Kind = KindReplaceSchedule
			cmd.Times = SplitTimes(payload)

			return cmd
		}

		if action, ok := p.motorAction(line); ok {
			cmd.Kind = KindMotorControl
			cmd.Motor = action
		}
	}

	return cmd
}

// SplitTimes splits a schedule payload on commas and trims every field.
// The last field is kept even without a trailing comma; an empty payload and a
// trailing comma produce no extra field.
func SplitTimes(payload string) []string {
	if payload == "" {
		return nil
	}

	fields := strings.Split(payload, ",")
	if fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	return fields
}

// MotorToken renders the bench token for a port and action, e.g. M1F.
func MotorToken(port int, action MotorAction) string {
	suffix := "S"

	switch action {
	case MotorForward:
		suffix = "F"
	case MotorBackward:
		suffix = "B"
	case MotorStop:
	}

	return "M" + strconv.Itoa(port) + suffix
}

func (p *Parser) motorAction(line string) (MotorAction, bool) {
	for _, action := range []MotorAction{MotorForward, MotorBackward, MotorStop} {
		if line == MotorToken(p.MotorPort, action) {
			return action, true
		}
	}

	return "", false
}
