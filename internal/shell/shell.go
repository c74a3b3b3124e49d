package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/base-14/examples/go/parking-lot/internal/logging"
	"github.com/base-14/examples/go/parking-lot/internal/parking"
)

const (
	CmdCreate      = "create"
	CmdStatus      = "status"
	CmdPark        = "park"
	CmdLeave       = "leave"
	CmdRegByColor  = "reg_by_color"
	CmdSpotByColor = "spot_by_color"
	CmdSpotByReg   = "spot_by_reg"
	CmdExit        = "exit"
)

var usages = map[string]string{
	CmdCreate:      "Usage: create <size>",
	CmdStatus:      "Usage: status",
	CmdPark:        "Usage: park <registration_number> <color>",
	CmdLeave:       "Usage: leave <spot>",
	CmdRegByColor:  "Usage: reg_by_color <color>",
	CmdSpotByColor: "Usage: spot_by_color <color>",
	CmdSpotByReg:   "Usage: spot_by_reg <registration_number>",
	CmdExit:        "Usage: exit",
}

// Shell reads one command per line, validates its arguments and forwards it
// to the attendant. Replies go to out, input problems to errOut.
type Shell struct {
	attendant *parking.Attendant
	scanner   *bufio.Scanner
	out       io.Writer
	errOut    io.Writer
	tracer    trace.Tracer
	sessionID string
	warn      *color.Color
}

func New(attendant *parking.Attendant, tracer trace.Tracer, in io.Reader, out, errOut io.Writer) *Shell {
	return &Shell{
		attendant: attendant,
		scanner:   bufio.NewScanner(in),
		out:       out,
		errOut:    errOut,
		tracer:    tracer,
		sessionID: uuid.NewString(),
		warn:      color.New(color.FgYellow),
	}
}

// Run processes input until `exit`, end of input or ctx cancellation.
func (s *Shell) Run(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "shell.run",
		trace.WithAttributes(attribute.String("session.id", s.sessionID)))
	defer span.End()

	logging.Debug(ctx).Str("session", s.sessionID).Msg("shell started")

	commands := 0
	for ctx.Err() == nil && s.scanner.Scan() {
		input := strings.TrimSpace(s.scanner.Text())
		if input == "" {
			continue
		}

		commands++
		if !s.processCommand(ctx, input) {
			break
		}
	}

	span.SetAttributes(attribute.Int("shell.commands", commands))
	logging.Debug(ctx).Int("commands", commands).Msg("shell ended")

	if err := s.scanner.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to read commands: %w", err)
	}

	return nil
}

// processCommand returns false once the loop should stop.
func (s *Shell) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	command, args := parts[0], parts[1:]

	ctx, span := s.tracer.Start(ctx, "shell.command",
		trace.WithAttributes(attribute.String("command.name", command)))
	defer span.End()

	logging.Debug(ctx).Str("command", command).Strs("args", args).Msg("command received")

	switch command {
	case CmdCreate:
		if capacity, ok := s.intArg(span, command, args, 0); ok {
			s.reply(s.attendant.Create(ctx, capacity))
		}
	case CmdStatus:
		if s.checkArgs(span, command, args, 0) {
			s.reply(s.attendant.Status(ctx)...)
		}
	case CmdPark:
		if s.checkArgs(span, command, args, 2) {
			s.reply(s.attendant.Park(ctx, args[0], args[1]))
		}
	case CmdLeave:
		if spot, ok := s.intArg(span, command, args, math.MinInt+1); ok {
			s.reply(s.attendant.Leave(ctx, spot-1))
		}
	case CmdRegByColor:
		if s.checkArgs(span, command, args, 1) {
			s.reply(s.attendant.RegByColor(ctx, args[0]))
		}
	case CmdSpotByColor:
		if s.checkArgs(span, command, args, 1) {
			s.reply(s.attendant.SpotByColor(ctx, args[0]))
		}
	case CmdSpotByReg:
		if s.checkArgs(span, command, args, 1) {
			s.reply(s.attendant.SpotByReg(ctx, args[0]))
		}
	case CmdExit:
		span.AddEvent("exit_requested")
		return false
	default:
		span.AddEvent("unknown_command")
		s.warnf("Unknown command: %s", command)
	}

	return true
}

func (s *Shell) checkArgs(span trace.Span, command string, args []string, want int) bool {
	if len(args) == want {
		return true
	}

	span.AddEvent("invalid_arguments", trace.WithAttributes(
		attribute.Int("args.count", len(args)),
	))
	s.warnf("%s", usages[command])
	return false
}

// intArg parses the single numeric argument of command and rejects values
// below lowest.
func (s *Shell) intArg(span trace.Span, command string, args []string, lowest int) (int, bool) {
	if !s.checkArgs(span, command, args, 1) {
		return 0, false
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < lowest {
		span.RecordError(fmt.Errorf("invalid number %q for %s", args[0], command))
		s.warnf("Invalid number: %s", args[0])
		return 0, false
	}

	return n, true
}

func (s *Shell) reply(lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(s.out, line)
	}
}

func (s *Shell) warnf(format string, args ...any) {
	s.warn.Fprintf(s.errOut, format+"\n", args...)
}
