package services

import (
	"sync"

	"appshell/internal/logger"
)

// DataService is the example business service: a string-keyed in-memory
// cache with the standard lifecycle. It demonstrates how concrete services
// plug into the scaffold.
type DataService struct {
	mu    sync.RWMutex
	cache map[string]interface{}
	log   logger.Logger
}

var _ Service = (*DataService)(nil)

func NewDataService(log logger.Logger) *DataService {
	if log == nil {
		log = logger.Nop{}
	}
	return &DataService{
		cache: make(map[string]interface{}),
		log:   log,
	}
}

func (d *DataService) Name() string { return "DataService" }

func (d *DataService) Initialize() error {
	d.log.Info(d.Name(), "service initialized", nil)
	return nil
}

// Get returns the cached value for key and whether it was present.
func (d *DataService) Get(key string) (interface{}, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	value, ok := d.cache[key]
	d.log.Debug(d.Name(), "get data", map[string]interface{}{"key": key, "found": ok})
	return value, ok
}

// Set stores value under key.
func (d *DataService) Set(key string, value interface{}) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cache[key] = value
	d.log.Debug(d.Name(), "set data", map[string]interface{}{"key": key})
	return true
}

// All returns a copy of the entire cache.
func (d *DataService) All() map[string]interface{} {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snapshot := make(map[string]interface{}, len(d.cache))
	for k, v := range d.cache {
		snapshot[k] = v
	}
	return snapshot
}

// Clear empties the cache.
func (d *DataService) Clear() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cache = make(map[string]interface{})
	d.log.Debug(d.Name(), "cache cleared", nil)
	return true
}

// Shutdown clears the cache and releases the service.
func (d *DataService) Shutdown() error {
	d.Clear()
	d.log.Info(d.Name(), "service shut down", nil)
	return nil
}
