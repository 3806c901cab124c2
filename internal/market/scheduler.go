package market

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultSchedule matches the 30 second refresh of the quote screen
const DefaultSchedule = "@every 30s"

// Scheduler ticks a board on a cron schedule
type Scheduler struct {
	cron  *cron.Cron
	board *Board
	log   logrus.FieldLogger
}

func NewScheduler(board *Board, schedule string, log logrus.FieldLogger) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	s := &Scheduler{
		cron:  cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		board: board,
		log:   log,
	}
	if _, err := s.cron.AddFunc(schedule, s.tick); err != nil {
		return nil, fmt.Errorf("invalid market schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) tick() {
	quotes := s.board.Tick()
	s.log.WithField("quotes", len(quotes)).Debug("market ticked")
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running tick to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
