package internal

type Scheduler struct {
	// incremented after each flush pass
	clock int

	scheduled bool
	running   bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Run calls pass until no more work gets scheduled. Work scheduled from inside a pass
// is picked up by the next one. Reports whether anything ran.
func (s *Scheduler) Run(pass func()) bool {
	if s.running || !s.scheduled {
		return false
	}

	s.running = true
	defer func() { s.running = false }()

	for s.scheduled {
		s.scheduled = false
		pass()
		s.clock++
	}

	return true
}

func (s *Scheduler) Schedule() {
	s.scheduled = true
}

func (s *Scheduler) IsRunning() bool {
	return s.running
}

func (s *Scheduler) Time() int {
	return s.clock
}
