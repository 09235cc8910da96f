package scheduler

import (
	"errors"
	"log"
	"sync"
	"time"
)

// HistoryStore is the part of the analysis repository the pruner needs
type HistoryStore interface {
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// HistoryPruner deletes analysis history past the retention window once a day
type HistoryPruner struct {
	Store         HistoryStore
	RetentionDays int

	mu     sync.Mutex
	timer  *time.Timer
	ticker *time.Ticker
	done   chan struct{}
}

func NewHistoryPruner(store HistoryStore, retentionDays int) *HistoryPruner {
	return &HistoryPruner{
		Store:         store,
		RetentionDays: retentionDays,
		done:          make(chan struct{}),
	}
}

// Start schedules the first prune for the next local midnight and then
// every 24 hours. A retention of zero days disables pruning.
func (p *HistoryPruner) Start() {
	if p.RetentionDays <= 0 {
		log.Println("History pruning disabled")
		return
	}

	now := time.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	durationUntilMidnight := nextMidnight.Sub(now)

	log.Printf("History pruner started. Keeping %d days, next run in %v", p.RetentionDays, durationUntilMidnight)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.timer = time.AfterFunc(durationUntilMidnight, func() {
		p.run()

		ticker := p.startTicker()
		if ticker == nil {
			return
		}

		go func() {
			for {
				select {
				case <-ticker.C:
					p.run()
				case <-p.done:
					return
				}
			}
		}()
	})
}

// startTicker creates the daily ticker unless Stop has already run
func (p *HistoryPruner) startTicker() *time.Ticker {
	p.mu.Lock()
	defer p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	default:
	}

	p.ticker = time.NewTicker(24 * time.Hour)
	return p.ticker
}

// Stop cancels any scheduled runs. It is safe to call more than once.
func (p *HistoryPruner) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
	}
	if p.ticker != nil {
		p.ticker.Stop()
	}
	select {
	case <-p.done:
	default:
		close(p.done)
		log.Println("History pruner stopped")
	}
}

func (p *HistoryPruner) run() {
	if _, err := p.PruneOnce(time.Now()); err != nil {
		log.Printf("Error pruning analysis history: %v", err)
	}
}

// PruneOnce deletes history created more than RetentionDays before now
func (p *HistoryPruner) PruneOnce(now time.Time) (int64, error) {
	if p.RetentionDays <= 0 {
		return 0, errors.New("history retention is disabled")
	}

	cutoff := now.AddDate(0, 0, -p.RetentionDays)
	deleted, err := p.Store.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, err
	}

	log.Printf("Pruned %d analyses created before %s", deleted, cutoff.Format("2006-01-02"))
	return deleted, nil
}
