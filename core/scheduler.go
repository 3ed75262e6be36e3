package core

// Sleeper is a delayed task waiting for a tick count.
type Sleeper struct {
	WakeTick uint32
	Task     uint8
	Next     *Sleeper
}

// MaxTasks is the number of tasks the reference scheduler can track.
const MaxTasks = 8

// TickScheduler is a small round-robin scheduler used by the firmware
// targets. It implements Scheduler: AdvanceTick wakes due sleepers and
// counts down the time slice; a decision is due when either happened.
type TickScheduler struct {
	tasks   uint8
	quantum uint32
	slice   uint32
	current uint8
	asleep  uint8 // bit per task
	sleep   *Sleeper
}

// NewTickScheduler creates a scheduler for tasks tasks, switching every
// quantum ticks. A zero quantum disables time slicing.
func NewTickScheduler(tasks uint8, quantum uint32) *TickScheduler {
	if tasks == 0 || tasks > MaxTasks {
		panic("tick scheduler: task count out of range")
	}
	return &TickScheduler{tasks: tasks, quantum: quantum}
}

// Current returns the running task.
func (s *TickScheduler) Current() uint8 {
	return s.current
}

// Asleep reports whether task is waiting on a delay.
func (s *TickScheduler) Asleep(task uint8) bool {
	return s.asleep&(1<<task) != 0
}

// Delay puts task to sleep for ticks ticks using the caller-owned
// Sleeper. Safe to call from task context. A Sleeper that is still queued
// is re-armed with the new wake tick.
func (s *TickScheduler) Delay(sl *Sleeper, task uint8, ticks uint32) {
	if task >= s.tasks {
		panic("tick scheduler: task out of range")
	}

	state := disableInterrupts()
	defer restoreInterrupts(state)

	if s.removeSleeper(sl) {
		s.asleep &^= 1 << sl.Task
	}
	sl.Task = task
	sl.WakeTick = GetTicks() + ticks
	s.asleep |= 1 << task
	s.insertSleeper(sl)
}

// insertSleeper keeps the list sorted by WakeTick
func (s *TickScheduler) insertSleeper(sl *Sleeper) {
	now := GetTicks()
	if s.sleep == nil || sl.WakeTick-now < s.sleep.WakeTick-now {
		sl.Next = s.sleep
		s.sleep = sl
		return
	}

	current := s.sleep
	for current.Next != nil && current.Next.WakeTick-now <= sl.WakeTick-now {
		current = current.Next
	}

	sl.Next = current.Next
	current.Next = sl
}

// removeSleeper unlinks sl and reports whether it was queued.
func (s *TickScheduler) removeSleeper(sl *Sleeper) bool {
	for link := &s.sleep; *link != nil; link = &(*link).Next {
		if *link == sl {
			*link = sl.Next
			sl.Next = nil
			return true
		}
	}
	return false
}

// AdvanceTick runs in the tick interrupt.
func (s *TickScheduler) AdvanceTick() bool {
	now := incSystemTicks()
	due := false

	for s.sleep != nil && tickReached(now, s.sleep.WakeTick) {
		sl := s.sleep
		s.sleep = sl.Next
		sl.Next = nil
		s.asleep &^= 1 << sl.Task
		RecordTiming(EvtSleeperWake, 0, uint32(sl.Task), 0)
		due = true
	}

	if s.quantum > 0 {
		s.slice++
		if s.slice >= s.quantum {
			s.slice = 0
			due = true
		}
	}
	return due
}

// SelectNextTask moves to the next task that is not asleep. When every
// other task sleeps the current one keeps running.
func (s *TickScheduler) SelectNextTask() {
	from := s.current
	for i := uint8(1); i <= s.tasks; i++ {
		next := (from + i) % s.tasks
		if !s.Asleep(next) {
			s.current = next
			break
		}
	}
	s.slice = 0
	RecordTiming(EvtTaskSwitch, 0, uint32(from), uint32(s.current))
}
