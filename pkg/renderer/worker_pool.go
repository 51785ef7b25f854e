package renderer

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"golang.org/x/sync/errgroup"
)

// ErrWorkerPoolClosed is returned when the result channel closes mid-render
var ErrWorkerPoolClosed = errors.New("worker pool closed unexpectedly")

// PixelTask is one pixel coordinate sent to a worker
type PixelTask struct {
	X, Y int
}

// PixelResult carries the summed color a worker computed for its task
type PixelResult struct {
	WorkerID int
	Task     PixelTask
	Color    core.Vec3
}

// PixelShader computes the summed color of all samples of one pixel.
// Implementations are shared by every worker and must not mutate state;
// all randomness has to come from the supplied source.
type PixelShader interface {
	SamplePixel(x, y int, random core.Random) core.Vec3
}

// WorkerPoolConfig contains configuration for the worker pool
type WorkerPoolConfig struct {
	Width      int    // Image width in pixels
	Height     int    // Image height in pixels
	NumWorkers int    // Number of parallel workers (0 = use CPU count)
	Seed       uint64 // Base seed; each pixel gets its own stream
}

// WorkerPool renders a frame by handing out one pixel at a time to a fixed
// set of workers and collecting the results into a FrameBuffer.
type WorkerPool struct {
	shader     PixelShader
	width      int
	height     int
	numWorkers int
	seed       uint64
	progress   ProgressReporter
	logger     core.Logger
}

// worker owns an inbound task channel and writes to the shared result channel
type worker struct {
	id      int
	width   int
	seed    uint64
	shader  PixelShader
	tasks   chan PixelTask
	results chan<- PixelResult
	source  *rand.PCG
	random  *rand.Rand
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(shader PixelShader, config WorkerPoolConfig, logger core.Logger) *WorkerPool {
	numWorkers := config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &WorkerPool{
		shader:     shader,
		width:      config.Width,
		height:     config.Height,
		numWorkers: numWorkers,
		seed:       config.Seed,
		progress:   nopProgress{},
		logger:     logger,
	}
}

// SetProgressReporter installs a reporter notified as pixels complete
func (wp *WorkerPool) SetProgressReporter(progress ProgressReporter) {
	if progress == nil {
		progress = nopProgress{}
	}
	wp.progress = progress
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Render runs the whole frame and returns the accumulated buffer.
//
// Every worker has at most one task in flight. A worker's next pixel is only
// dispatched after its previous result has been written to the buffer, and
// each pixel is dispatched exactly once in row-major order. A worker failure
// or context cancellation aborts the run; no partial buffer is returned.
func (wp *WorkerPool) Render(ctx context.Context) (*FrameBuffer, RenderStats, error) {
	startTime := time.Now()
	fb := NewFrameBuffer(wp.width, wp.height)
	totalPixels := wp.width * wp.height

	stats := RenderStats{
		TotalPixels: totalPixels,
		Workers:     wp.numWorkers,
	}

	g, gctx := errgroup.WithContext(ctx)

	// Capacity numWorkers: one in-flight result per worker never blocks a send
	results := make(chan PixelResult, wp.numWorkers)
	workers := make([]*worker, wp.numWorkers)
	for i := range workers {
		w := wp.newWorker(i, results)
		workers[i] = w
		g.Go(func() error { return w.run(gctx) })
	}

	assigned := make([]PixelTask, wp.numWorkers)
	active := make([]bool, wp.numWorkers)
	activeCount := 0
	cursor := 0

	// dispatch hands the pixel under the cursor to worker id, if any remain
	dispatch := func(id int) bool {
		if cursor >= totalPixels {
			return false
		}
		task := PixelTask{X: cursor % wp.width, Y: cursor / wp.width}
		cursor++
		assigned[id] = task
		workers[id].tasks <- task
		stats.TasksDispatched++
		return true
	}

	retire := func(id int) {
		active[id] = false
		activeCount--
		close(workers[id].tasks)
	}

	wp.logger.Printf("Sending rays to %d workers\n", wp.numWorkers)
	for id := range workers {
		if dispatch(id) {
			active[id] = true
			activeCount++
		} else {
			close(workers[id].tasks)
		}
	}

	completed := 0
	var runErr error
	for activeCount > 0 && runErr == nil {
		select {
		case result, ok := <-results:
			if !ok {
				runErr = ErrWorkerPoolClosed
				break
			}

			task := assigned[result.WorkerID]
			fb.Accumulate(task.X, task.Y, result.Color)
			completed++
			if completed%wp.width == 0 || completed == totalPixels {
				wp.progress.Update(completed, totalPixels)
			}

			if !dispatch(result.WorkerID) {
				retire(result.WorkerID)
			}
		case <-gctx.Done():
			runErr = gctx.Err()
		}
	}

	// Release any worker still waiting for work
	for id := range workers {
		if active[id] {
			retire(id)
		}
	}

	if err := g.Wait(); err != nil {
		runErr = err
	}
	wp.progress.Finish()
	stats.Elapsed = time.Since(startTime)

	if runErr != nil {
		return nil, stats, fmt.Errorf("render aborted after %d of %d pixels: %w", completed, totalPixels, runErr)
	}

	wp.logger.Printf("Done: %d pixels in %v\n", completed, stats.Elapsed)
	return fb, stats, nil
}

func (wp *WorkerPool) newWorker(id int, results chan<- PixelResult) *worker {
	source := rand.NewPCG(wp.seed, 0)
	return &worker{
		id:      id,
		width:   wp.width,
		seed:    wp.seed,
		shader:  wp.shader,
		tasks:   make(chan PixelTask, 1),
		results: results,
		source:  source,
		random:  rand.New(source),
	}
}

// run is the main worker loop
func (w *worker) run(ctx context.Context) error {
	for {
		select {
		case task, ok := <-w.tasks:
			if !ok {
				return nil
			}

			color, err := w.shade(task)
			if err != nil {
				return err
			}
			w.results <- PixelResult{WorkerID: w.id, Task: task, Color: color}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// shade renders one pixel, turning a panic into an error. The random stream
// is derived from the pixel index so output does not depend on which worker
// rendered the pixel.
func (w *worker) shade(task PixelTask) (color core.Vec3, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker %d panicked on pixel (%d, %d): %v", w.id, task.X, task.Y, r)
		}
	}()

	w.source.Seed(w.seed, pixelStream(task.Y*w.width+task.X))
	return w.shader.SamplePixel(task.X, task.Y, w.random), nil
}

// pixelStream spreads consecutive pixel indices across the PCG state space
func pixelStream(index int) uint64 {
	return uint64(index+1) * 0x9E3779B97F4A7C15
}
