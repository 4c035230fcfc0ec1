package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"generate-briefing-video/application/ports/inbound"
	"generate-briefing-video/application/ports/outbound"
	"generate-briefing-video/domain"

	"github.com/panjf2000/ants/v2"
)

type fakeSynthesizer struct {
	payload   []byte
	err       error
	gotScript string
	gotVoice  string
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, req outbound.SynthesizeSpeechRequest) ([]byte, error) {
	f.gotScript = req.Script
	f.gotVoice = req.VoiceID
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

type fakeSlideRenderer struct{}

func (f *fakeSlideRenderer) Render(slide domain.Slide, dir string) (string, error) {
	fileName := filepath.Join(dir, "slide_"+strconv.Itoa(slide.Ordinal)+".png")
	if err := os.WriteFile(fileName, []byte("png"), 0o644); err != nil {
		return "", err
	}
	return fileName, nil
}

type fakeAssembler struct {
	err error
	got *outbound.AssembleVideoRequest
}

func (f *fakeAssembler) Assemble(_ context.Context, req outbound.AssembleVideoRequest) (*outbound.AssembleVideoResponse, error) {
	f.got = &req
	if f.err != nil {
		return nil, f.err
	}
	if _, err := os.Stat(req.AudioFileName); err != nil {
		return nil, err
	}
	return &outbound.AssembleVideoResponse{FileName: req.OutputFileName, Duration: 12.5}, nil
}

func newTestPipeline(t *testing.T, synthesizer outbound.SpeechSynthesizerPort,
	assembler outbound.VideoAssemblerPort) (inbound.BriefingPipelinePort, string) {
	t.Helper()

	workerPool, err := ants.NewPool(16)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	t.Cleanup(workerPool.Release)

	logger := noopLogger{}
	outputRoot := t.TempDir()

	pipeline := NewBriefingPipeline(
		logger,
		workerPool,
		NewScriptComposer(2),
		NewSlidePlanner(2, 3, 3, 4),
		NewSlideDeckRenderer(logger, &fakeSlideRenderer{}, workerPool),
		synthesizer,
		assembler,
		nil,
		nil,
		PipelineOptions{
			OutputRoot:       outputRoot,
			VoiceID:          "test-voice",
			SynthesisTimeout: 5 * time.Second,
		})

	return pipeline, outputRoot
}

func TestBriefingPipeline_GenerateBriefing(t *testing.T) {
	synthesizer := &fakeSynthesizer{payload: []byte("mp3")}
	assembler := &fakeAssembler{}
	pipeline, _ := newTestPipeline(t, synthesizer, assembler)

	briefing := domain.Briefing{Topics: []domain.Topic{
		{ID: "ai", Items: []domain.NewsItem{{Title: "GPT-5 Released", Source: "TechCrunch"}}},
		{ID: "pakistan", Items: []domain.NewsItem{{Title: "New Metro Line Opens", Source: "Dawn"}}},
	}}

	result, err := pipeline.GenerateBriefing(context.Background(), inbound.GenerateBriefingParams{Briefing: briefing})
	if err != nil {
		t.Fatal("pipeline failed:", err)
	}

	if result.SlideCount != 5 {
		t.Fatalf("expected 5 slides, got %d", result.SlideCount)
	}
	if result.Duration != 12.5 {
		t.Fatalf("unexpected duration %v", result.Duration)
	}
	if synthesizer.gotVoice != "test-voice" {
		t.Fatalf("unexpected voice %q", synthesizer.gotVoice)
	}
	if assembler.got == nil {
		t.Fatal("assembler never invoked")
	}
	for i, slide := range assembler.got.Slides {
		if slide.Ordinal != i {
			t.Fatalf("deck out of order at %d: %+v", i, slide)
		}
	}
}

func TestBriefingPipeline_EmptyBriefing(t *testing.T) {
	synthesizer := &fakeSynthesizer{payload: []byte("mp3")}
	assembler := &fakeAssembler{}
	pipeline, _ := newTestPipeline(t, synthesizer, assembler)

	result, err := pipeline.GenerateBriefing(context.Background(), inbound.GenerateBriefingParams{})
	if err != nil {
		t.Fatal("pipeline failed:", err)
	}

	if result.SlideCount != 1 {
		t.Fatalf("expected only the title slide, got %d", result.SlideCount)
	}
	want := "Welcome to your daily intelligence briefing. That's all for today. Stay informed."
	if synthesizer.gotScript != want {
		t.Fatalf("unexpected script %q", synthesizer.gotScript)
	}
}

func TestBriefingPipeline_SynthesisFailure(t *testing.T) {
	synthesizer := &fakeSynthesizer{err: errors.New("backend unreachable")}
	assembler := &fakeAssembler{}
	pipeline, outputRoot := newTestPipeline(t, synthesizer, assembler)

	briefing := domain.Briefing{Topics: []domain.Topic{
		{ID: "ai", Items: []domain.NewsItem{{Title: "GPT-5 Released", Source: "TechCrunch"}}},
	}}

	_, err := pipeline.GenerateBriefing(context.Background(), inbound.GenerateBriefingParams{Briefing: briefing})
	if err == nil {
		t.Fatal("expected pipeline failure")
	}

	stage, ok := domain.StageOf(err)
	if !ok || stage != domain.StageSynthesis {
		t.Fatalf("expected synthesis stage, got %v (err: %v)", stage, err)
	}
	if assembler.got != nil {
		t.Fatal("assembly started despite missing audio track")
	}

	matches, globErr := filepath.Glob(filepath.Join(outputRoot, "*", "briefing.mp4"))
	if globErr != nil {
		t.Fatal(globErr)
	}
	if len(matches) != 0 {
		t.Fatalf("artifact published despite failure: %v", matches)
	}
}

func TestBriefingPipeline_RemovesIntermediates(t *testing.T) {
	synthesizer := &fakeSynthesizer{payload: []byte("mp3")}
	assembler := &fakeAssembler{}
	pipeline, outputRoot := newTestPipeline(t, synthesizer, assembler)

	briefing := domain.Briefing{Topics: []domain.Topic{
		{ID: "ai", Items: []domain.NewsItem{{Title: "GPT-5 Released", Source: "TechCrunch"}}},
	}}

	_, err := pipeline.GenerateBriefing(context.Background(), inbound.GenerateBriefingParams{Briefing: briefing})
	if err != nil {
		t.Fatal("pipeline failed:", err)
	}

	leftovers, globErr := filepath.Glob(filepath.Join(outputRoot, "*", "slide_*.png"))
	if globErr != nil {
		t.Fatal(globErr)
	}
	if len(leftovers) != 0 {
		t.Fatalf("slide intermediates not cleaned up: %v", leftovers)
	}
	audio, globErr := filepath.Glob(filepath.Join(outputRoot, "*", "voiceover.mp3"))
	if globErr != nil {
		t.Fatal(globErr)
	}
	if len(audio) != 0 {
		t.Fatalf("audio intermediate not cleaned up: %v", audio)
	}
}

type noopLogger struct{}

func (noopLogger) Info(string)                                           {}
func (noopLogger) InfoWithFields(string, map[string]interface{})         {}
func (noopLogger) Error(error, string)                                   {}
func (noopLogger) ErrorWithFields(error, string, map[string]interface{}) {}
func (noopLogger) Debug(string)                                          {}
func (noopLogger) DebugWithFields(string, map[string]interface{})        {}
func (noopLogger) Warn(string)                                           {}
func (noopLogger) WarnWithFields(string, map[string]interface{})         {}
