// Package console implements a text console: the handle passed to actions
// for messages and questions, and a simple driver running switches and
// forms on a terminal.
package console

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-drift/semkit/pkg/logger"
)

// ErrCancelled is returned by questions when the user cancels or the input
// is exhausted.
var ErrCancelled = stderrors.New("console: cancelled")

// Console is the dialog surface an action may use through its console
// handle.
type Console interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	StartJob(name string)
	EndJob()
	// AskYesNo asks a yes/no question. An empty answer selects def.
	AskYesNo(question string, def bool, help string) (bool, error)
	// AskChoice asks to pick one of choices and returns its index. An empty
	// answer selects def; pass -1 for no default.
	AskChoice(question string, choices []string, def int, help string) (int, error)
}

// Text is a Console reading answers from a reader and writing to writers.
// Typing "cancel", or reaching the end of input, cancels a question.
type Text struct {
	in   *bufio.Reader
	out  io.Writer
	diag io.Writer
	log  *logger.Logger
	jobs []string
	quit bool
}

var _ Console = (*Text)(nil)

// New creates a text console. Questions and answers go to out; messages go
// to diag.
func New(in io.Reader, out, diag io.Writer) *Text {
	return &Text{in: bufio.NewReader(in), out: out, diag: diag, log: logger.Nop()}
}

// WithLogger sets the logger recording jobs and cancellations.
func (t *Text) WithLogger(l *logger.Logger) *Text {
	if l != nil {
		t.log = l
	}
	return t
}

// Info displays an informative message.
func (t *Text) Info(msg string) {
	fmt.Fprintf(t.diag, "%s%s\n", t.indent(), msg)
}

// Warn displays a warning.
func (t *Text) Warn(msg string) {
	fmt.Fprintf(t.diag, "%sWARNING: %s\n", t.indent(), msg)
}

// Error displays an error.
func (t *Text) Error(msg string) {
	fmt.Fprintf(t.diag, "%sERROR: %s\n", t.indent(), msg)
}

// StartJob groups the following messages under name until EndJob.
func (t *Text) StartJob(name string) {
	fmt.Fprintf(t.diag, "%sSTARTING: %s\n", t.indent(), name)
	t.jobs = append(t.jobs, name)
	t.log.Debugw("job started", "job", name, "depth", len(t.jobs))
}

// EndJob closes the innermost job.
func (t *Text) EndJob() {
	if len(t.jobs) == 0 {
		return
	}
	name := t.jobs[len(t.jobs)-1]
	t.jobs = t.jobs[:len(t.jobs)-1]
	fmt.Fprintf(t.diag, "%sENDED: %s\n", t.indent(), name)
	t.log.Debugw("job ended", "job", name)
}

// Quit asks the running driver loop to stop.
func (t *Text) Quit() { t.quit = true }

// Done reports whether Quit was called.
func (t *Text) Done() bool { return t.quit }

func (t *Text) indent() string {
	return strings.Repeat("  ", len(t.jobs))
}

// AskYesNo implements Console.
func (t *Text) AskYesNo(question string, def bool, help string) (bool, error) {
	yes, no := "yes", "NO"
	if def {
		yes, no = "YES", "no"
	}
	for {
		fmt.Fprintf(t.out, "%s [%s|%s]: ", question, yes, no)
		answer, err := t.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToUpper(answer) {
		case "":
			return def, nil
		case "YES", "Y":
			return true, nil
		case "NO", "N":
			return false, nil
		case "HELP", "?":
			fmt.Fprintln(t.out, helpText(help))
		default:
			fmt.Fprintln(t.out, "Please answer YES or NO.")
		}
	}
}

// AskChoice implements Console.
func (t *Text) AskChoice(question string, choices []string, def int, help string) (int, error) {
	if len(choices) == 0 {
		return -1, ErrCancelled
	}
	if def >= len(choices) {
		def = -1
	}
	fmt.Fprintln(t.out, question)
	for i, c := range choices {
		fmt.Fprintf(t.out, "%d. %s\n", i+1, c)
	}
	for {
		if def >= 0 {
			fmt.Fprintf(t.out, "Your choice [1-%d, default=%d]: ", len(choices), def+1)
		} else {
			fmt.Fprintf(t.out, "Your choice [1-%d]: ", len(choices))
		}
		answer, err := t.readLine()
		if err != nil {
			return -1, err
		}
		if answer == "" {
			if def >= 0 {
				return def, nil
			}
			fmt.Fprintln(t.out, "Please, perform a choice.")
			continue
		}
		n, err := strconv.Atoi(answer)
		if err != nil {
			if strings.EqualFold(answer, "help") || answer == "?" {
				fmt.Fprintln(t.out, helpText(help))
			} else {
				fmt.Fprintln(t.out, "Please, write a number.")
			}
			continue
		}
		if n < 1 || n > len(choices) {
			fmt.Fprintf(t.out, "Please, write a number in [1, %d].\n", len(choices))
			continue
		}
		return n - 1, nil
	}
}

// AskText asks for a line of text. An empty answer returns def.
func (t *Text) AskText(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(t.out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(t.out, "%s: ", question)
	}
	answer, err := t.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// readLine returns the next trimmed line. End of input and "cancel" yield
// ErrCancelled.
func (t *Text) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && (line == "" || !stderrors.Is(err, io.EOF)) {
		if stderrors.Is(err, io.EOF) {
			t.log.Debugw("input exhausted")
			return "", ErrCancelled
		}
		return "", err
	}
	line = strings.TrimSpace(line)
	if strings.EqualFold(line, "cancel") {
		t.log.Debugw("question cancelled")
		return "", ErrCancelled
	}
	return line, nil
}

func helpText(help string) string {
	if help == "" {
		return "No help available."
	}
	return help
}
