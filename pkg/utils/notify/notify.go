package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/devantler-tech/jenkins-manager/pkg/utils/timer"
	fcolor "github.com/fatih/color"
)

// MessageType selects the symbol and color of a message.
type MessageType int

// Message types.
const (
	// ErrorType is printed in red with ✗.
	ErrorType MessageType = iota
	// WarningType is printed in yellow with ⚠.
	WarningType
	// ActivityType is printed with ►.
	ActivityType
	// GenerateType is printed with ✚ and announces a written file.
	GenerateType
	// SuccessType is printed in green with ✔.
	SuccessType
	// InfoType is printed in blue with ℹ.
	InfoType
	// TitleType is printed bold behind an emoji.
	TitleType
)

const defaultTitleEmoji = "ℹ️"

// Message is a single notification.
type Message struct {
	Type    MessageType
	Content string
	// Args are applied to Content with fmt.Sprintf when non-empty.
	Args []any
	// Timer adds a timing block after success messages.
	Timer timer.Timer
	// Emoji replaces the default title emoji for TitleType.
	Emoji string
	// Writer defaults to os.Stdout.
	Writer io.Writer
}

type style struct {
	symbol string
	color  *fcolor.Color
}

func styleFor(msgType MessageType) style {
	switch msgType {
	case ErrorType:
		return style{symbol: "✗ ", color: fcolor.New(fcolor.FgRed)}
	case WarningType:
		return style{symbol: "⚠ ", color: fcolor.New(fcolor.FgYellow)}
	case ActivityType:
		return style{symbol: "► ", color: fcolor.New(fcolor.Reset)}
	case GenerateType:
		return style{symbol: "✚ ", color: fcolor.New(fcolor.Reset)}
	case SuccessType:
		return style{symbol: "✔ ", color: fcolor.New(fcolor.FgGreen)}
	case InfoType:
		return style{symbol: "ℹ ", color: fcolor.New(fcolor.FgBlue)}
	case TitleType:
		return style{color: fcolor.New(fcolor.Reset, fcolor.Bold)}
	default:
		return style{color: fcolor.New(fcolor.Reset)}
	}
}

// Errorf prints an error line.
func Errorf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ErrorType, Content: format, Args: args, Writer: writer})
}

// Warningf prints a warning line.
func Warningf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: WarningType, Content: format, Args: args, Writer: writer})
}

// Activityf prints a progress line.
func Activityf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ActivityType, Content: format, Args: args, Writer: writer})
}

// Generatef prints a file generation line.
func Generatef(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: GenerateType, Content: format, Args: args, Writer: writer})
}

// Successf prints a success line.
func Successf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: SuccessType, Content: format, Args: args, Writer: writer})
}

// SuccessWithTimerf prints a success line followed by the timer's current and total durations.
func SuccessWithTimerf(writer io.Writer, tmr timer.Timer, format string, args ...any) {
	WriteMessage(Message{Type: SuccessType, Content: format, Args: args, Timer: tmr, Writer: writer})
}

// Infof prints an informational line.
func Infof(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: InfoType, Content: format, Args: args, Writer: writer})
}

// Titlef prints a stage title behind emoji.
func Titlef(writer io.Writer, emoji, format string, args ...any) {
	WriteMessage(Message{Type: TitleType, Content: fmt.Sprintf(format, args...), Emoji: emoji, Writer: writer})
}

// WriteMessage renders msg to its writer. Write failures are reported on stderr and
// otherwise ignored so that output problems never abort a provisioning run.
func WriteMessage(msg Message) {
	writer := msg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	content := msg.Content
	if len(msg.Args) > 0 {
		content = fmt.Sprintf(msg.Content, msg.Args...)
	}

	st := styleFor(msg.Type)

	if msg.Type == TitleType {
		emoji := msg.Emoji
		if emoji == "" {
			emoji = defaultTitleEmoji
		}

		reportWriteError(st.color.Fprintf(writer, "%s %s\n", emoji, content))

		return
	}

	content = alignContinuationLines(content, st.symbol)
	reportWriteError(st.color.Fprintf(writer, "%s%s\n", st.symbol, content))

	if msg.Type != SuccessType || msg.Timer == nil {
		return
	}

	total, stage := msg.Timer.GetTiming()
	reportWriteError(st.color.Fprintf(writer, "⏲ current: %s\n", stage))
	reportWriteError(st.color.Fprintf(writer, "  total:  %s\n", total))
}

func reportWriteError(_ int, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notify: failed to print message: %v\n", err)
	}
}

// alignContinuationLines indents every non-empty line after the first by the symbol width.
func alignContinuationLines(content, symbol string) string {
	if symbol == "" || !strings.Contains(content, "\n") {
		return content
	}

	pad := strings.Repeat(" ", len([]rune(symbol)))
	lines := strings.Split(content, "\n")

	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}

	return strings.Join(lines, "\n")
}
