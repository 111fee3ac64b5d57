package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/smithy/internal/usecase"
)

// SpinnerProgressReporter implements progress reporting with a spinner
type SpinnerProgressReporter struct {
	mu      sync.Mutex
	out     io.Writer
	spinner *spinner.Spinner
	stages  []stageInfo
}

type stageInfo struct {
	Stage     usecase.ExecutionStage
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

// NewSpinnerProgressReporter creates a spinner reporter writing to stderr
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return newSpinnerProgressReporter(os.Stderr)
}

func newSpinnerProgressReporter(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		out:     out,
		spinner: s,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch event.Stage {
	case usecase.StageCompleted, usecase.StageFailed:
		r.finishStage(event.Stage)
		r.spinner.Stop()
		return
	case "":
	default:
		r.startStage(event.Stage)
	}

	if !event.Spinner {
		if r.spinner.Active() {
			r.spinner.Stop()
		}
		return
	}

	r.spinner.Suffix = " " + r.stageLine() + "  " + color.New(color.Faint).Sprint(event.Message)
	if !r.spinner.Active() {
		r.spinner.Start()
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.println(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.println(color.New(color.FgRed), message)
}

func (r *SpinnerProgressReporter) println(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// startStage closes the running stage and opens a new one
func (r *SpinnerProgressReporter) startStage(stage usecase.ExecutionStage) {
	if n := len(r.stages); n > 0 && r.stages[n-1].Stage == stage {
		return
	}
	r.finishStage("")
	r.stages = append(r.stages, stageInfo{
		Stage:     stage,
		StartTime: time.Now(),
		Status:    "running",
	})
}

func (r *SpinnerProgressReporter) finishStage(outcome usecase.ExecutionStage) {
	n := len(r.stages)
	if n == 0 || r.stages[n-1].Status != "running" {
		return
	}
	r.stages[n-1].EndTime = time.Now()
	if outcome == usecase.StageFailed {
		r.stages[n-1].Status = "failed"
	} else {
		r.stages[n-1].Status = "completed"
	}
}

// stageLine renders "✓ Resolving (12ms) → ● Deploying (1s)"
func (r *SpinnerProgressReporter) stageLine() string {
	parts := make([]string, 0, len(r.stages))
	for _, stage := range r.stages {
		var icon string
		var stageColor *color.Color

		switch stage.Status {
		case "completed":
			icon = "✓"
			stageColor = color.New(color.FgGreen)
		case "failed":
			icon = "✗"
			stageColor = color.New(color.FgRed)
		default:
			icon = "●"
			stageColor = color.New(color.FgYellow)
		}

		duration := ""
		if !stage.EndTime.IsZero() {
			duration = fmt.Sprintf(" (%s)", stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond))
		}

		parts = append(parts, fmt.Sprintf("%s %s%s", icon, stageColor.Sprint(string(stage.Stage)), duration))
	}
	return strings.Join(parts, " → ")
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
