package core

// Scheduler is the part of the task scheduler the tick source drives.
// Both methods are called from the tick interrupt and must not block.
type Scheduler interface {
	// AdvanceTick increments the tick counter and reports whether a
	// scheduling decision is due.
	AdvanceTick() bool

	// SelectNextTask picks the task whose context will be restored.
	SelectNextTask()
}

// TickHandler is the body of the timer overflow interrupt.
type TickHandler interface {
	HandleTick()
}

// Cooperative only advances time. Task switches happen on explicit
// yields elsewhere. The overflow flag is cleared by hardware on vector
// entry, so there is nothing to acknowledge.
type Cooperative struct {
	Scheduler Scheduler
}

func (c *Cooperative) HandleTick() {
	c.Scheduler.AdvanceTick()
}

// Preemptive saves the interrupted context, advances time, lets the
// scheduler pick a new task when one is due and resumes whichever task
// is current.
//
// HandleTick must be the only code the vector runs; nothing may touch
// task state between vector entry and Context.Save.
// Panics from the scheduler are not recovered: a fault here leaves the
// saved context in an unknown state and halts the device.
type Preemptive struct {
	Scheduler Scheduler
	Context   ContextSwitcher
}

func (p *Preemptive) HandleTick() {
	p.Context.Save()

	if p.Scheduler.AdvanceTick() {
		p.Scheduler.SelectNextTask()
	}

	// Same restore on both paths; only the current task may differ
	p.Context.Restore()
	p.Context.Return()
}

// NewTickHandler returns the handler matching cfg.Preemptive. ctx is only
// used, and must be non-nil, in preemptive mode.
func NewTickHandler(cfg Config, sched Scheduler, ctx ContextSwitcher) TickHandler {
	if !cfg.Preemptive {
		return &Cooperative{Scheduler: sched}
	}
	if ctx == nil {
		panic("preemptive tick requires a context switcher")
	}
	return &Preemptive{Scheduler: sched, Context: ctx}
}
