package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/truchet/pkg/pipeline"
)

// spinnerFrames turn a triangle through its four corners.
var spinnerFrames = []string{"◢", "◣", "◤", "◥"}

const spinnerInterval = 120 * time.Millisecond

// spinner animates the pipeline stage on a terminal line while a pattern is
// generated. The message follows the runner through its stages via
// [spinner.stage]; a cancelled context clears the line and ends the
// animation.
type spinner struct {
	w        io.Writer
	interval time.Duration

	mu    sync.Mutex
	msg   string
	width int // widest line written so far, for clearing

	quit chan struct{}
	done chan struct{}
	once sync.Once
}

func newSpinner(w io.Writer, msg string) *spinner {
	return &spinner{
		w:        w,
		interval: spinnerInterval,
		msg:      msg,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// start draws the first frame and animates until stop or ctx is done.
func (s *spinner) start(ctx context.Context) {
	s.draw(0)
	go func() {
		defer close(s.done)
		t := time.NewTicker(s.interval)
		defer t.Stop()
		for i := 1; ; i++ {
			select {
			case <-ctx.Done():
				s.clear()
				return
			case <-s.quit:
				return
			case <-t.C:
				s.draw(i)
			}
		}
	}()
}

// set replaces the message shown next to the frame.
func (s *spinner) set(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

// stage is a [pipeline.Runner.OnStage] callback.
func (s *spinner) stage(formats []string) func(pipeline.Stage, pipeline.Params) {
	return func(stage pipeline.Stage, p pipeline.Params) {
		s.set(stageMessage(stage, p, formats))
	}
}

func (s *spinner) draw(frame int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleSpinner.Render(spinnerFrames[frame%len(spinnerFrames)]) + " " + StyleDim.Render(s.msg)
	// pad over the remains of a longer previous message
	n := len(s.msg) + 2
	pad := max(s.width-n, 0)
	s.width = max(s.width, n)
	fmt.Fprintf(s.w, "\r%s%s", line, strings.Repeat(" ", pad))
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", max(s.width, len(s.msg)+2)))
}

// stop ends the animation and clears the line. It is safe to call twice.
func (s *spinner) stop() {
	s.once.Do(func() {
		close(s.quit)
		<-s.done
		s.clear()
	})
}

// fail stops the spinner and reports msg as an error.
func (s *spinner) fail(msg string) {
	s.stop()
	printError("%s", msg)
}

// stageMessage describes what the runner is doing in stage.
func stageMessage(stage pipeline.Stage, p pipeline.Params, formats []string) string {
	switch stage {
	case pipeline.StageGenerate:
		return fmt.Sprintf("Subdividing seed %d to depth %d...", p.Seed, p.MaxDepth)
	case pipeline.StageRender:
		return fmt.Sprintf("Rendering %s...", formatList(formats))
	}
	return "Working..."
}
