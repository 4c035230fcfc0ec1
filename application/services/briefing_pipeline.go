package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"generate-briefing-video/application/ports/inbound"
	"generate-briefing-video/application/ports/outbound"
	"generate-briefing-video/channel_utils"
	"generate-briefing-video/domain"

	"github.com/google/uuid"
)

// PipelineOptions carries the run-scoped settings the pipeline needs;
// there is no process-wide state behind it.
type PipelineOptions struct {
	OutputRoot       string
	VoiceID          string
	SynthesisTimeout time.Duration
}

type briefingPipeline struct {
	logger       outbound.LoggerPort
	workerPool   outbound.TaskDispatcher
	composer     inbound.ScriptComposerPort
	planner      inbound.SlidePlannerPort
	deckRenderer inbound.SlideDeckRendererPort
	synthesizer  outbound.SpeechSynthesizerPort
	assembler    outbound.VideoAssemblerPort
	publisher    outbound.VideoPublisherPort
	recorder     outbound.BriefingRecordPort
	options      PipelineOptions
}

// NewBriefingPipeline wires the whole run. publisher and recorder may
// be nil when the deployment keeps artifacts local only.
func NewBriefingPipeline(
	logger outbound.LoggerPort,
	workerPool outbound.TaskDispatcher,
	composer inbound.ScriptComposerPort,
	planner inbound.SlidePlannerPort,
	deckRenderer inbound.SlideDeckRendererPort,
	synthesizer outbound.SpeechSynthesizerPort,
	assembler outbound.VideoAssemblerPort,
	publisher outbound.VideoPublisherPort,
	recorder outbound.BriefingRecordPort,
	options PipelineOptions) inbound.BriefingPipelinePort {
	return &briefingPipeline{
		logger:       logger,
		workerPool:   workerPool,
		composer:     composer,
		planner:      planner,
		deckRenderer: deckRenderer,
		synthesizer:  synthesizer,
		assembler:    assembler,
		publisher:    publisher,
		recorder:     recorder,
		options:      options,
	}
}

// GenerateBriefing runs one complete generation: compose, then slide
// rendering and speech synthesis side by side, then duration-reconciled
// assembly. Either exactly one valid artifact appears under the run
// directory or the run fails with nothing published.
func (p *briefingPipeline) GenerateBriefing(ctx context.Context, params inbound.GenerateBriefingParams) (*inbound.GenerateBriefingResult, error) {
	briefingID := uuid.NewString()
	runDir := filepath.Join(p.options.OutputRoot, briefingID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}

	script := p.composer.Compose(params.Briefing)
	slides := p.planner.Plan(params.Briefing)

	p.logger.InfoWithFields("starting briefing run", map[string]interface{}{
		"briefing_id":   briefingID,
		"topics":        len(params.Briefing.Topics),
		"slides":        len(slides),
		"script_length": len(script),
	})

	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	slideFileCh, renderErrCh := p.deckRenderer.RenderDeck(newCtx, slides, runDir)

	audioCh := make(chan string, 1)
	synthErrCh := make(chan error, 1)
	err := p.workerPool.Submit(func() {
		defer close(audioCh)
		defer close(synthErrCh)

		audioFileName, err := p.synthesizeVoiceover(newCtx, script, runDir)
		if err != nil {
			synthErrCh <- domain.NewPipelineError(domain.StageSynthesis, err)
			cancel()
			return
		}
		audioCh <- audioFileName
	})
	if err != nil {
		return nil, domain.NewPipelineError(domain.StageSynthesis, err)
	}

	mergedErrCh, err := channel_utils.MergeChannels(p.workerPool, renderErrCh, synthErrCh)
	if err != nil {
		return nil, err
	}

	deck, audioFileName, err := p.collectArtifacts(newCtx, slideFileCh, audioCh, mergedErrCh)
	defer p.removeIntermediates(deck, audioFileName)
	if err != nil {
		return nil, err
	}
	if len(deck) == 0 {
		return nil, domain.NewPipelineError(domain.StageRender, errors.New("no slides rendered"))
	}

	sort.Sort(domain.SlideFilesAscByOrdinal(deck))

	assembled, err := p.assembler.Assemble(newCtx, outbound.AssembleVideoRequest{
		Slides:         deck,
		AudioFileName:  audioFileName,
		OutputFileName: filepath.Join(runDir, "briefing.mp4"),
	})
	if err != nil {
		return nil, err
	}

	result := &inbound.GenerateBriefingResult{
		BriefingID:    briefingID,
		VideoFileName: assembled.FileName,
		Duration:      assembled.Duration,
		SlideCount:    len(deck),
	}

	if p.publisher != nil {
		published, err := p.publisher.Publish(ctx, outbound.PublishVideoRequest{
			VideoFileName: assembled.FileName,
			BriefingID:    briefingID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to publish briefing video: %w", err)
		}
		result.VideoKey = published.VideoKey
		result.VideoRegion = published.StoreRegion
	}

	if p.recorder != nil {
		err := p.recorder.Save(ctx, outbound.BriefingRecord{
			BriefingID: briefingID,
			VideoKey:   result.VideoKey,
			Duration:   result.Duration,
			SlideCount: result.SlideCount,
		})
		if err != nil {
			// The video exists and is the product; a lost metadata row
			// is not worth failing the run over.
			p.logger.ErrorWithFields(err, "failed to record briefing run", map[string]interface{}{
				"briefing_id": briefingID,
			})
		}
	}

	p.logger.InfoWithFields("briefing run complete", map[string]interface{}{
		"briefing_id": briefingID,
		"video":       result.VideoFileName,
		"duration":    result.Duration,
		"slides":      result.SlideCount,
	})

	return result, nil
}

func (p *briefingPipeline) synthesizeVoiceover(ctx context.Context, script string, dir string) (string, error) {
	synthCtx, cancel := context.WithTimeout(ctx, p.options.SynthesisTimeout)
	defer cancel()

	payload, err := p.synthesizer.Synthesize(synthCtx, outbound.SynthesizeSpeechRequest{
		Script:  script,
		VoiceID: p.options.VoiceID,
	})
	if err != nil {
		return "", err
	}

	audioFileName := filepath.Join(dir, "voiceover.mp3")
	if err := os.WriteFile(audioFileName, payload, 0o644); err != nil {
		return "", err
	}
	return audioFileName, nil
}

// collectArtifacts drains the renderer and synthesizer outputs until
// both complete, failing fast on the first pipeline error. Assembly
// must never start on a partial deck or a missing audio track.
func (p *briefingPipeline) collectArtifacts(ctx context.Context, slideFileCh <-chan domain.SlideFile,
	audioCh <-chan string, errCh <-chan error) ([]domain.SlideFile, string, error) {
	deck := make([]domain.SlideFile, 0)
	var audioFileName string

	for slideFileCh != nil || audioCh != nil {
		select {
		case <-ctx.Done():
			// Cancellation usually means a stage already reported its
			// failure; prefer that error over the bare context error.
			// Every producer bails out on this context, so the merged
			// channel is guaranteed to close.
			if errCh != nil {
				if err, ok := <-errCh; ok {
					return deck, audioFileName, err
				}
			}
			return deck, audioFileName, ctx.Err()
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			return deck, audioFileName, err
		case slideFile, ok := <-slideFileCh:
			if !ok {
				slideFileCh = nil
				continue
			}
			deck = append(deck, slideFile)
		case fileName, ok := <-audioCh:
			if !ok {
				audioCh = nil
				continue
			}
			audioFileName = fileName
		}
	}

	// The error channels may close after the output channels; one more
	// receive catches a failure that raced the last output.
	if errCh != nil {
		if err, ok := <-errCh; ok {
			return deck, audioFileName, err
		}
	}

	if audioFileName == "" {
		return deck, audioFileName, domain.NewPipelineError(domain.StageSynthesis, errors.New("no audio track produced"))
	}

	return deck, audioFileName, nil
}

func (p *briefingPipeline) removeIntermediates(deck []domain.SlideFile, audioFileName string) {
	for _, slideFile := range deck {
		if err := os.Remove(slideFile.FileName); err != nil {
			p.logger.Warn("failed to remove slide file: " + err.Error())
		}
	}
	if audioFileName != "" {
		if err := os.Remove(audioFileName); err != nil {
			p.logger.Warn("failed to remove audio file: " + err.Error())
		}
	}
}
