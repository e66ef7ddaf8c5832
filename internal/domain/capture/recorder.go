package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"echominds-server-go/internal/domain/audio"
	"echominds-server-go/internal/platform/errors"
	"echominds-server-go/internal/platform/logging"
)

// maxPollInterval caps how long the recorder sleeps between queue polls
// so stop and cancel requests are observed promptly.
const maxPollInterval = 100 * time.Millisecond

// Options configures a Recorder.
type Options struct {
	SampleRate   int
	Channels     int
	PollInterval time.Duration
	TempDir      string
	Logger       *logging.Logger
}

// Result is the outcome of a completed recording. Elapsed is the wall
// clock the recorder spent draining, not the audio duration.
type Result struct {
	Asset   *audio.Asset
	Path    string
	Frames  int
	Elapsed time.Duration
}

// Recorder drains a frame queue on a wall-clock schedule and assembles
// the frames, in arrival order, into a single audio asset.
type Recorder struct {
	queue *FrameQueue
	opts  Options
}

func NewRecorder(queue *FrameQueue, opts Options) *Recorder {
	if opts.PollInterval <= 0 || opts.PollInterval > maxPollInterval {
		opts.PollInterval = maxPollInterval
	}
	return &Recorder{queue: queue, opts: opts}
}

// Record captures for up to maxDuration, then writes the assembled asset
// to a timestamped WAV file under the temp directory. A session that
// yields no frames at all fails with no_signal.
func (r *Recorder) Record(ctx context.Context, session *Session, maxDuration time.Duration) (*Result, error) {
	if err := session.Start(); err != nil {
		return nil, err
	}

	if r.opts.Logger != nil {
		r.opts.Logger.InfoTag("Capture", "recording started, ceiling %s", maxDuration)
	}

	var frames []Frame
	start := time.Now()
	deadline := start.Add(maxDuration)
	defer func() { session.setElapsed(time.Since(start)) }()

	for {
		if ctx.Err() != nil {
			session.Fail(FailDeviceError)
			return nil, errors.Wrap(errors.KindCapture, "record",
				"capture interrupted", ctx.Err())
		}
		if session.Cancelled() {
			break
		}

		for {
			frame, ok := r.queue.TryDequeue()
			if !ok {
				break
			}
			frames = append(frames, frame)
		}

		if time.Now().After(deadline) {
			break
		}
		if r.queue.Closed() && r.queue.Len() == 0 {
			break
		}
		time.Sleep(r.opts.PollInterval)
	}

	// Final drain picks up frames that arrived during the last sleep.
	for {
		frame, ok := r.queue.TryDequeue()
		if !ok {
			break
		}
		frames = append(frames, frame)
	}

	if len(frames) == 0 {
		session.Fail(FailNoSignal)
		return nil, errors.New(errors.KindCapture, "record",
			"no audio frames received")
	}

	total := 0
	for _, f := range frames {
		total += len(f)
	}
	samples := make([]int16, 0, total)
	for _, f := range frames {
		samples = append(samples, f...)
	}

	asset := audio.NewAsset(samples, r.opts.SampleRate, r.opts.Channels)
	path, err := r.writeWAV(asset)
	if err != nil {
		session.Fail(FailDeviceError)
		return nil, err
	}

	session.Stop()
	if r.opts.Logger != nil {
		r.opts.Logger.InfoTag("Capture", "recording stopped, %d frames, %.2fs, %s",
			len(frames), asset.Seconds(), path)
	}

	return &Result{
		Asset:   asset,
		Path:    path,
		Frames:  len(frames),
		Elapsed: time.Since(start),
	}, nil
}

func (r *Recorder) writeWAV(asset *audio.Asset) (string, error) {
	if err := os.MkdirAll(r.opts.TempDir, 0o755); err != nil {
		return "", errors.Wrap(errors.KindCapture, "record",
			"failed to create temp directory", err)
	}

	name := fmt.Sprintf("recording_%d.wav", time.Now().UnixNano())
	path := filepath.Join(r.opts.TempDir, name)

	data, err := audio.EncodeWAV(asset)
	if err != nil {
		return "", errors.Wrap(errors.KindCapture, "record",
			"failed to encode recording", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(errors.KindCapture, "record",
			"failed to write recording", err)
	}
	return path, nil
}
