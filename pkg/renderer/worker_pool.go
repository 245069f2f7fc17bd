package renderer

import (
	"image"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderTask is a rectangle of pixels rendered by one worker
type RenderTask struct {
	TaskID int
	Bounds image.Rectangle
}

// TaskResult reports a finished task
type TaskResult struct {
	TaskID  int
	Pixels  int
	Samples int
}

// WorkerPool manages parallel rendering of tasks into a shared frame buffer
type WorkerPool struct {
	taskQueue   chan RenderTask
	resultQueue chan TaskResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders tasks with its own generator, reseeded for every pixel
type Worker struct {
	ID          int
	sampler     *pixelSampler
	frame       *FrameBuffer
	seed        uint64
	pcg         *rand.PCG
	random      *rand.Rand
	taskQueue   chan RenderTask
	resultQueue chan TaskResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Both queues are buffered for maxTasks entries so submitting never blocks.
func NewWorkerPool(sampler *pixelSampler, frame *FrameBuffer, seed uint64, maxTasks, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RenderTask, maxTasks),
		resultQueue: make(chan TaskResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		pcg := rand.NewPCG(seed, 0)
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			sampler:     sampler,
			frame:       frame,
			seed:        seed,
			pcg:         pcg,
			random:      rand.New(pcg),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a task to the worker pool
func (wp *WorkerPool) SubmitTask(task RenderTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed task result
func (wp *WorkerPool) GetResult() (TaskResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Tasks never overlap, so every frame buffer cell has a single writer
		for y := task.Bounds.Min.Y; y < task.Bounds.Max.Y; y++ {
			for x := task.Bounds.Min.X; x < task.Bounds.Max.X; x++ {
				w.pcg.Seed(w.seed, core.PixelStream(uint64(y*w.frame.Width+x)))
				w.frame.Set(x, y, w.sampler.SamplePixel(x, y, w.random))
			}
		}

		pixels := task.Bounds.Dx() * task.Bounds.Dy()
		w.resultQueue <- TaskResult{
			TaskID:  task.TaskID,
			Pixels:  pixels,
			Samples: pixels * w.sampler.samples,
		}
	}
}
