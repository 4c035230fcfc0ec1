package adapters

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"generate-briefing-video/application/ports/outbound"
	"generate-briefing-video/config"
	"generate-briefing-video/domain"

	"github.com/google/uuid"
)

type ffmpegAssembler struct {
	logger outbound.LoggerPort
	fps    int
}

func NewFFmpegAssembler(videoConfig *config.VideoConfig, logger outbound.LoggerPort) outbound.VideoAssemblerPort {
	return &ffmpegAssembler{
		logger: logger,
		fps:    videoConfig.FPS,
	}
}

// Assemble builds the final artifact: probe the audio track, reconcile
// the slide timeline against it, encode the concatenated frames with
// the audio attached, and move the result into place only once the
// encode succeeded. The visual track's length always ends up equal to
// the audio's.
func (a *ffmpegAssembler) Assemble(ctx context.Context, req outbound.AssembleVideoRequest) (*outbound.AssembleVideoResponse, error) {
	if len(req.Slides) == 0 {
		return nil, domain.NewPipelineError(domain.StageAssembly, errors.New("no slides to assemble"))
	}

	audioDuration, err := a.probeDuration(ctx, req.AudioFileName)
	if err != nil {
		return nil, domain.NewPipelineError(domain.StageAssembly, fmt.Errorf("failed to measure audio duration: %w", err))
	}
	if audioDuration <= 0 {
		return nil, domain.NewPipelineError(domain.StageAssembly, fmt.Errorf("audio track has no duration: %s", req.AudioFileName))
	}

	durations := make([]float64, len(req.Slides))
	for i, slide := range req.Slides {
		durations[i] = slide.Duration
	}
	reconciled := reconcileDurations(durations, audioDuration)

	a.logger.DebugWithFields("reconciled visual timeline", map[string]interface{}{
		"slides_planned": len(req.Slides),
		"slides_kept":    len(reconciled),
		"audio_duration": audioDuration,
	})

	listFileName, err := a.writeConcatList(req.Slides[:len(reconciled)], reconciled)
	if err != nil {
		return nil, domain.NewPipelineError(domain.StageAssembly, err)
	}
	defer func() {
		if err := os.Remove(listFileName); err != nil {
			a.logger.Error(err, "Failed to remove slide list file")
		}
	}()

	// Encode into a temporary name so a cancelled or failed run never
	// leaves a partial artifact at the published path.
	tempFileName := filepath.Join(filepath.Dir(req.OutputFileName), "."+filepath.Base(req.OutputFileName)+".tmp.mp4")

	args := []string{
		"-y",
		"-f", "concat", "-safe", "0", "-i", listFileName,
		"-i", req.AudioFileName,
		"-c:v", "libx264", "-tune", "stillimage", "-preset", "ultrafast",
		"-c:a", "aac", "-b:a", "192k",
		"-pix_fmt", "yuv420p",
		"-r", strconv.Itoa(a.fps),
		"-t", formatSeconds(audioDuration),
		"-movflags", "faststart",
		tempFileName,
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if removeErr := os.Remove(tempFileName); removeErr != nil && !os.IsNotExist(removeErr) {
			a.logger.Error(removeErr, "Failed to remove partial video file")
		}
		return nil, domain.NewPipelineError(domain.StageEncoding, fmt.Errorf("ffmpeg: %w: %s", err, lastLines(stderr.String(), 4)))
	}

	if err := os.Rename(tempFileName, req.OutputFileName); err != nil {
		return nil, domain.NewPipelineError(domain.StageEncoding, err)
	}

	duration, err := a.probeDuration(ctx, req.OutputFileName)
	if err != nil {
		a.logger.Warn("failed to probe encoded video, reporting audio duration: " + err.Error())
		duration = audioDuration
	}

	return &outbound.AssembleVideoResponse{
		FileName: req.OutputFileName,
		Duration: duration,
	}, nil
}

// reconcileDurations forces the visual timeline to total exactly
// audioDuration. A short timeline holds its last slide for the
// remainder; a long one is cut at slide boundaries with the last kept
// slide clipped to the target.
func reconcileDurations(durations []float64, audioDuration float64) []float64 {
	if len(durations) == 0 || audioDuration <= 0 {
		return nil
	}

	reconciled := make([]float64, 0, len(durations))
	elapsed := 0.0
	for _, d := range durations {
		if elapsed >= audioDuration {
			break
		}
		if elapsed+d > audioDuration {
			d = audioDuration - elapsed
		}
		reconciled = append(reconciled, d)
		elapsed += d
	}

	if elapsed < audioDuration {
		reconciled[len(reconciled)-1] += audioDuration - elapsed
	}

	return reconciled
}

func (a *ffmpegAssembler) writeConcatList(slides []domain.SlideFile, durations []float64) (string, error) {
	listFileName := filepath.Join(filepath.Dir(slides[0].FileName), "slides-"+uuid.NewString()+".txt")
	fileList, err := os.Create(listFileName)
	if err != nil {
		return "", err
	}
	defer func(fileList *os.File) {
		err := fileList.Close()
		if err != nil {
			a.logger.Error(err, "Failed to close slide list file")
		}
	}(fileList)

	writer := bufio.NewWriter(fileList)
	for i, slide := range slides {
		if _, err := writer.WriteString("file '" + slide.FileName + "'\n"); err != nil {
			return "", err
		}
		if _, err := writer.WriteString("duration " + formatSeconds(durations[i]) + "\n"); err != nil {
			return "", err
		}
	}
	// The concat demuxer ignores the last duration directive unless the
	// final file is listed once more.
	if _, err := writer.WriteString("file '" + slides[len(slides)-1].FileName + "'\n"); err != nil {
		return "", err
	}
	if err := writer.Flush(); err != nil {
		return "", err
	}

	return listFileName, nil
}

func (a *ffmpegAssembler) probeDuration(ctx context.Context, fileName string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1", fileName)

	out, err := cmd.Output()
	if err != nil {
		return 0, err
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output %q: %w", strings.TrimSpace(string(out)), err)
	}

	return duration, nil
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
