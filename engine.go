// Package shrdlite contains a CLI-driven engine for accepting blocks-world
// utterances and printing the resulting plans, a clarification question, or
// an error until the user quits.
package shrdlite

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/internal/input"
	"github.com/dekarrin/shrdlite/internal/planerr"
	"github.com/dekarrin/shrdlite/internal/worldfixture"
)

// DefaultSearchBudget bounds how long a single utterance's A* search may
// run before surfacing planerr.MsgNoTimeToFigureOut.
const DefaultSearchBudget = 5 * time.Second

// Engine ties an input/output stream pair to a planning Pipeline, reading
// utterances until QUIT and printing whatever the pipeline returns.
type Engine struct {
	pipe        *blocks.Pipeline
	in          input.CommandReader
	out         *bufio.Writer
	forceDirect bool
	running     bool
}

const consoleOutputWidth = 80

// New creates a new Engine ready to operate on the given input and output
// streams, with the world loaded from the SWW fixture at worldFilePath.
//
// If nil is given for the input stream, a bufio.Reader is opened on stdin.
// If nil is given for the output stream, a bufio.Writer is opened on stdout.
func New(inputStream io.Reader, outputStream io.Writer, worldFilePath string, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	world, err := worldfixture.Load(worldFilePath)
	if err != nil {
		return nil, fmt.Errorf("loading world fixture: %w", err)
	}

	eng := &Engine{
		out:         bufio.NewWriter(outputStream),
		pipe:        blocks.NewPipeline(world, DefaultSearchBudget),
		forceDirect: forceDirectInput,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout
	if useReadline {
		eng.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}
	if err := eng.in.Close(); err != nil {
		return fmt.Errorf("close command reader: %w", err)
	}
	return nil
}

// RunUntilQuit begins reading utterances from the input stream and printing
// plans (or clarifications, or errors) until "quit" is received.
func (eng *Engine) RunUntilQuit(startCommands []string) error {
	intro := "Welcome to the Shrdlite blocks-world planner\n"
	if eng.forceDirect {
		intro += "(direct input mode)\n"
	}
	intro += "=============================================\n\n"
	if err := eng.writeLine(intro); err != nil {
		return err
	}

	eng.running = true
	defer func() { eng.running = false }()

	for _, c := range startCommands {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if err := eng.handleLine(c); err != nil {
			return err
		}
	}

	for eng.running {
		eng.in.AllowBlank(true)
		line, err := eng.in.ReadCommand()
		eng.in.AllowBlank(false)
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read utterance: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "quit") {
			break
		}

		if err := eng.handleLine(line); err != nil {
			return err
		}
	}

	return eng.writeLine("Goodbye\n")
}

// handleLine routes one utterance through the pipeline, consulting whichever
// of the Ambiguity Manager's pending slots is set, and prints the result.
func (eng *Engine) handleLine(line string) error {
	sess := eng.pipe.Session

	if len(sess.PendingParses) > 0 {
		lines, ok, err := eng.pipe.HandleParseReply(line)
		if ok {
			return eng.report(lines, err)
		}
		// not a selection: falls through to treat line as a fresh utterance
	}

	if sess.PendingResolution != nil {
		if obj, ok := blocks.ParseReferentReply(line); ok {
			lines, err := eng.pipe.HandleReferentReply(obj)
			return eng.report(lines, err)
		}
		sess.Clear()
	}

	parses, err := blocks.ParseUtterance(line)
	if err != nil {
		return eng.report(nil, err)
	}
	lines, err := eng.pipe.HandleParses(parses)
	return eng.report(lines, err)
}

func (eng *Engine) report(lines []string, err error) error {
	if err != nil {
		msg := planerr.UserMessage(err)
		msg = rosed.Edit(msg).Wrap(consoleOutputWidth).String()
		return eng.writeLine(msg + "\n")
	}
	for _, l := range lines {
		if err := eng.writeLine(l + "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (eng *Engine) writeLine(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	return eng.out.Flush()
}
