package services

import (
	"context"
	"errors"
	"sync"
	"syscall"

	"generate-briefing-video/application/ports/inbound"
	"generate-briefing-video/application/ports/outbound"
	"generate-briefing-video/domain"
)

type slideDeckRenderer struct {
	logger     outbound.LoggerPort
	renderer   outbound.SlideRendererPort
	workerPool outbound.TaskDispatcher
}

func NewSlideDeckRenderer(logger outbound.LoggerPort, renderer outbound.SlideRendererPort,
	workerPool outbound.TaskDispatcher) inbound.SlideDeckRendererPort {
	return &slideDeckRenderer{
		logger:     logger,
		renderer:   renderer,
		workerPool: workerPool,
	}
}

// RenderDeck rasterizes all slides concurrently. A slide that fails to
// render is dropped with a warning; only unrecoverable I/O conditions
// abort the deck.
func (s *slideDeckRenderer) RenderDeck(ctx context.Context, slides []domain.Slide, dir string) (<-chan domain.SlideFile, <-chan error) {
	out := make(chan domain.SlideFile)
	errCh := make(chan error, 1)

	newCtx, cancel := context.WithCancel(ctx)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		var wg sync.WaitGroup

		for _, sl := range slides {
			select {
			case <-newCtx.Done():
				return
			default:
			}

			slide := sl
			wg.Add(1)
			err := s.workerPool.Submit(func() {
				defer wg.Done()

				fileName, err := s.renderer.Render(slide, dir)
				if err != nil {
					if isFatalRenderError(err) {
						select {
						case errCh <- domain.NewPipelineError(domain.StageRender, err):
						case <-newCtx.Done():
						}
						cancel()
						return
					}
					s.logger.WarnWithFields("skipping slide that failed to render", map[string]interface{}{
						"ordinal": slide.Ordinal,
						"title":   slide.Title,
						"error":   err.Error(),
					})
					return
				}

				select {
				case out <- domain.SlideFile{FileName: fileName, Slide: slide}:
				case <-newCtx.Done():
				}
			})
			if err != nil {
				wg.Done()
				select {
				case errCh <- domain.NewPipelineError(domain.StageRender, err):
				case <-newCtx.Done():
				}
				return
			}
		}

		wg.Wait()
	})
	if err != nil {
		errCh <- domain.NewPipelineError(domain.StageRender, err)
	}

	return out, errCh
}

func isFatalRenderError(err error) bool {
	return errors.Is(err, syscall.ENOSPC)
}
