package service

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"ga4-report-service/internal/model"
	"ga4-report-service/internal/repository"
)

type SnapshotWorker interface {
	Enqueue(snapshot model.Snapshot)
	Shutdown()
}

// snapshotWorker batches snapshots and flushes them to the repository
// when the batch is full, on every tick, and on shutdown.
type snapshotWorker struct {
	repo          repository.SnapshotRepository
	queue         chan model.Snapshot
	batchSize     int
	flushInterval time.Duration
	flushTimeout  time.Duration
	wg            sync.WaitGroup

	// mu guards closed; Enqueue holds it for reading while sending.
	mu     sync.RWMutex
	closed bool
}

// NewSnapshotWorker starts a worker loop.
func NewSnapshotWorker(repo repository.SnapshotRepository, bufferSize int, batchSize int, interval time.Duration) *snapshotWorker {
	worker := &snapshotWorker{
		repo:          repo,
		queue:         make(chan model.Snapshot, bufferSize),
		batchSize:     batchSize,
		flushInterval: interval,
		flushTimeout:  5 * time.Second,
	}
	worker.wg.Add(1)
	go worker.startLoop()
	return worker
}

// Enqueue never blocks; a snapshot is dropped when the queue is full or
// the worker has been shut down.
func (w *snapshotWorker) Enqueue(snapshot model.Snapshot) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		log.Warnf("snapshot worker stopped, dropping snapshot %s", snapshot.ID)
		return
	}

	select {
	case w.queue <- snapshot:
	default:
		log.Warnf("snapshot queue full, dropping snapshot %s", snapshot.ID)
	}
}

// Shutdown stops accepting snapshots and waits for the last flush.
func (w *snapshotWorker) Shutdown() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	log.Info("snapshot worker shutting down, draining queue")
	w.wg.Wait()
	log.Info("snapshot worker stopped")
}

func (w *snapshotWorker) startLoop() {
	defer w.wg.Done()

	var batch []model.Snapshot
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case snapshot, ok := <-w.queue:
			if !ok {
				if len(batch) > 0 {
					w.flush(batch)
				}
				return
			}

			batch = append(batch, snapshot)
			if len(batch) >= w.batchSize {
				w.flush(batch)
				batch = nil
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.flush(batch)
				batch = nil
			}
		}
	}
}

func (w *snapshotWorker) flush(snapshots []model.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), w.flushTimeout)
	defer cancel()

	if err := w.repo.CreateBatch(ctx, snapshots); err != nil {
		log.Errorf("snapshot flush failed: %v", err)
		return
	}
	log.Infof("%d snapshots flushed", len(snapshots))
}
