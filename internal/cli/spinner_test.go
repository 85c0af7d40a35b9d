package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/truchet/pkg/pipeline"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerFollowsStages(t *testing.T) {
	var out syncBuffer
	s := newSpinner(&out, "Resolving parameters...")
	s.interval = time.Millisecond
	s.start(context.Background())

	onStage := s.stage([]string{"svg", "png"})
	onStage(pipeline.StageGenerate, pipeline.Params{Seed: 7, MaxDepth: 4})
	waitFor(t, &out, "Subdividing seed 7 to depth 4...")
	onStage(pipeline.StageRender, pipeline.Params{Seed: 7, MaxDepth: 4})
	waitFor(t, &out, "Rendering png, svg...")
	s.stop()

	got := out.String()
	if !strings.Contains(got, "Resolving parameters...") {
		t.Errorf("first frame should show the initial message: %q", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("stop should clear the line: %q", got)
	}
}

func TestSpinnerStopTwice(t *testing.T) {
	s := newSpinner(&syncBuffer{}, "Rendering svg...")
	s.start(context.Background())
	s.stop()
	s.stop()
}

func TestSpinnerContextCancel(t *testing.T) {
	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(&out, "Subdividing seed 1 to depth 6...")
	s.start(ctx)
	cancel()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after cancel")
	}
	if !strings.HasSuffix(out.String(), "\r") {
		t.Errorf("cancel should clear the line: %q", out.String())
	}
	s.stop()
}

func TestSpinnerClearsLongerMessage(t *testing.T) {
	var out syncBuffer
	s := newSpinner(&out, "Subdividing seed 123456 to depth 6...")
	s.draw(0)
	s.set("Rendering svg...")
	s.draw(1)

	frames := strings.Split(out.String(), "\r")
	last := frames[len(frames)-1]
	if len(last) < len(frames[1]) {
		t.Errorf("shorter message should be padded over the longer one: %q", out.String())
	}
}

func TestStageMessage(t *testing.T) {
	p := pipeline.Params{Seed: 42, MaxDepth: 5}
	tests := []struct {
		stage pipeline.Stage
		want  string
	}{
		{pipeline.StageGenerate, "Subdividing seed 42 to depth 5..."},
		{pipeline.StageRender, "Rendering json, svg..."},
		{pipeline.Stage("other"), "Working..."},
	}
	for _, tt := range tests {
		if got := stageMessage(tt.stage, p, []string{"svg", "json"}); got != tt.want {
			t.Errorf("stageMessage(%s) = %q, want %q", tt.stage, got, tt.want)
		}
	}
}

func waitFor(t *testing.T, out *syncBuffer, msg string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !strings.Contains(out.String(), msg) {
		if time.Now().After(deadline) {
			t.Fatalf("spinner never showed %q: %q", msg, out.String())
		}
		time.Sleep(time.Millisecond)
	}
}
