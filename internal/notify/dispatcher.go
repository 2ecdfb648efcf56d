package notify

import (
	"log"
	"sync"

	"github.com/jambohub/jambohub/internal/models"
)

// Job carries everything a worker needs so it never re-reads the message or
// channel: the post is already committed by the time the job is queued.
type Job struct {
	Message models.Message
	Channel models.Channel
	Author  models.User
}

// Dispatcher decouples notification delivery from the post-message request
// path. Enqueue never blocks and never fails the post: a stopped dispatcher
// or a full queue drops the job with a log line.
type Dispatcher struct {
	fanout  *Fanout
	jobs    chan Job
	workers int
	wg      sync.WaitGroup

	// mu orders Enqueue sends against Stop closing the queue: Stop flips
	// stopped under the write lock, so no Enqueue can be mid-send on a
	// closed channel.
	mu      sync.RWMutex
	stopped bool
}

func NewDispatcher(fanout *Fanout, workers, queueSize int) *Dispatcher {
	return &Dispatcher{
		fanout:  fanout,
		jobs:    make(chan Job, queueSize),
		workers: workers,
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)

		go func() {
			defer d.wg.Done()

			for job := range d.jobs {
				d.run(job)
			}
		}()
	}

	log.Printf("Notification dispatcher started with %d workers", d.workers)
}

// Stop drains queued jobs and waits for in-flight deliveries. Jobs enqueued
// after Stop are dropped, never delivered.
func (d *Dispatcher) Stop() {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}

	d.stopped = true
	d.mu.Unlock()

	close(d.jobs)
	d.wg.Wait()
	log.Println("Notification dispatcher stopped")
}

func (d *Dispatcher) Enqueue(job Job) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		log.Printf("Dispatcher stopped, dropping notifications for message %d", job.Message.ID)
		return
	}

	select {
	case d.jobs <- job:
	default:
		log.Printf("Notification queue full, dropping notifications for message %d", job.Message.ID)
	}
}

func (d *Dispatcher) run(job Job) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in notification fan-out for message %d: %v", job.Message.ID, r)
		}
	}()

	d.fanout.NotifyNewMessage(job.Message, job.Channel, job.Author)
}
