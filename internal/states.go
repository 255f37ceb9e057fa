package internal

import (
	"sync"
	"time"
)

const (
	InstanceStateRunning  = "RUNNING"
	InstanceStateStarting = "STARTING"
	InstanceStateShutdown = "SHUTDOWN"
	InstanceStateStopped  = "STOPPED"
	InstanceStateNotFound = "NOT_FOUND"
)

type InstanceState struct {
	ID           string `json:"id"`
	CurrentState string `json:"current_state"`
	TargetState  string `json:"target_state"`
}

// StateTracker keeps track of current and target states for all configured
// instances, used during startup, shutdown and config reloads.
type StateTracker struct {
	states []InstanceState
	mux    *sync.RWMutex
}

func NewStateTracker() *StateTracker {
	return &StateTracker{mux: &sync.RWMutex{}}
}

func (t *StateTracker) SetInstanceTargetState(entryID, state string) {
	t.mux.Lock()
	defer t.mux.Unlock()
	st := t.getInstanceState(entryID)
	if st.CurrentState == InstanceStateNotFound {
		t.states = append(t.states, InstanceState{ID: entryID, TargetState: state})
	} else {
		st.TargetState = state
	}
}

func (t *StateTracker) SetInstanceCurrentState(entryID, state string) {
	t.mux.Lock()
	defer t.mux.Unlock()
	st := t.getInstanceState(entryID)
	if st.CurrentState == InstanceStateNotFound {
		t.states = append(t.states, InstanceState{ID: entryID, CurrentState: state})
	} else {
		st.CurrentState = state
	}
}

// getInstanceState returns instance state, the method is for internal use only
func (t *StateTracker) getInstanceState(entryID string) *InstanceState {
	for i := range t.states {
		if t.states[i].ID == entryID {
			return &t.states[i]
		}
	}
	return &InstanceState{ID: entryID, CurrentState: InstanceStateNotFound, TargetState: InstanceStateNotFound}
}

// States returns a copy of all tracked instance states, reported on the
// health endpoint.
func (t *StateTracker) States() []InstanceState {
	t.mux.RLock()
	defer t.mux.RUnlock()
	return append([]InstanceState(nil), t.states...)
}

// GetInstanceState public version of getInstanceState
func (t *StateTracker) GetInstanceState(entryID string) *InstanceState {
	t.mux.RLock()
	defer t.mux.RUnlock()
	return t.getInstanceState(entryID)
}

// WaitForInstanceTargetState blocks execution untill the instance reaches its
// target state or the wait operation times out.
func (t *StateTracker) WaitForInstanceTargetState(entryID string, timeout time.Duration) bool {
	endTime := time.Now().Add(timeout)
	for {
		if time.Now().After(endTime) {
			return false
		}
		st := t.GetInstanceState(entryID)
		if st.CurrentState == st.TargetState {
			return true
		}
		time.Sleep(time.Second * 1)
	}
}
