package service

import "sync"

// FlightLocks provides per-flight mutual exclusion. Seat-count checks,
// seat-code numbering and the decrement/insert pair all run under the
// lock of the flight they touch, so two bookings against the same flight
// can never interleave. Entries are kept for the life of the process,
// one mutex per flight ever touched.
type FlightLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFlightLocks() *FlightLocks {
	return &FlightLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *FlightLocks) Lock(flightID string) (unlock func()) {
	l.mu.Lock()
	m, ok := l.locks[flightID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[flightID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
