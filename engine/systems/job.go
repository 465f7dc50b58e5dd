package systems

import (
	"errors"
	"sync"

	"github.com/spaghettifunk/brushwork/engine/containers"
	"github.com/spaghettifunk/brushwork/engine/core"
)

/** @brief The max number of job results that can wait for Update at once. */
const MAX_JOB_RESULTS int = 512

/**
 * @brief Describes a job to be run. Run executes on a worker goroutine; the
 * callbacks are invoked from Update on the goroutine driving the frame loop,
 * so they may touch the graphics context.
 */
type JobTask struct {
	/** @brief Invoked on a worker. Required. */
	Run func() (interface{}, error)
	/** @brief Invoked with the result of Run when it succeeded. Optional. */
	OnComplete func(result interface{})
	/** @brief Invoked with the error of Run when it failed. Optional. */
	OnFailure func(err error)
}

type jobResult struct {
	task   JobTask
	result interface{}
	err    error
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup

	mu      sync.Mutex
	drained *sync.Cond
	results *containers.RingQueue[jobResult]
	closed  bool
}

var (
	ErrNoWorkers           = errors.New("attempting to create worker pool with less than 1 worker")
	ErrNegativeChannelSize = errors.New("attempting to create worker pool with a negative channel size")
	ErrJobSystemClosed     = errors.New("job system is shut down")
)

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
		results:    containers.NewRingQueue[jobResult](MAX_JOB_RESULTS),
	}
	js.drained = sync.NewCond(&js.mu)

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				result, err := job.Run()
				if err != nil {
					core.LogDebug("job failed: %s", err)
				}
				js.publish(jobResult{task: job, result: result, err: err})
			}
		}()
	}
}

// publish waits for room in the result queue. Results are dropped after Shutdown.
func (js *JobSystem) publish(r jobResult) {
	js.mu.Lock()
	defer js.mu.Unlock()

	for js.results.IsFull() && !js.closed {
		js.drained.Wait()
	}
	if js.closed {
		return
	}
	_ = js.results.Enqueue(r)
}

/**
 * @brief Dispatches the callbacks of every finished job. Should happen once an
 * update cycle.
 * @return The number of jobs dispatched.
 */
func (js *JobSystem) Update() int {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return 0
	}
	var finished []jobResult
	for !js.results.IsEmpty() {
		r, _ := js.results.Dequeue()
		finished = append(finished, r)
	}
	js.drained.Broadcast()
	js.mu.Unlock()

	for _, r := range finished {
		if r.err != nil {
			if r.task.OnFailure != nil {
				r.task.OnFailure(r.err)
			}
			continue
		}
		if r.task.OnComplete != nil {
			r.task.OnComplete(r.result)
		}
	}
	return len(finished)
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while the
 * queue is full. Submit and Shutdown must be called from the same goroutine.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	js.mu.Lock()
	closed := js.closed
	js.mu.Unlock()
	if closed {
		return ErrJobSystemClosed
	}
	js.jobQueue <- jt
	return nil
}

/**
 * @brief Shuts the job system down. Jobs still queued run to completion but
 * their callbacks are never dispatched.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return nil
	}
	js.closed = true
	js.drained.Broadcast()
	js.mu.Unlock()

	close(js.jobQueue)
	js.wg.Wait()
	return nil
}
