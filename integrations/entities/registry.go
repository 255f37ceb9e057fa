package entities

import "sync"

// Registry tracks the entity managers of all running config entries so the
// API can look entity state up by device id alone.
type Registry struct {
	mux      sync.RWMutex
	managers map[string]*Manager
}

func NewRegistry() *Registry {
	return &Registry{managers: map[string]*Manager{}}
}

func (r *Registry) Add(manager *Manager) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.managers[manager.entryID] = manager
}

func (r *Registry) Remove(entryID string) *Manager {
	r.mux.Lock()
	defer r.mux.Unlock()
	manager := r.managers[entryID]
	delete(r.managers, entryID)
	return manager
}

// GroupForDevice scans all managers for the device's entity group.
func (r *Registry) GroupForDevice(deviceID string) *Group {
	r.mux.RLock()
	defer r.mux.RUnlock()
	for _, manager := range r.managers {
		if group := manager.Group(deviceID); group != nil {
			return group
		}
	}
	return nil
}
