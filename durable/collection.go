package durable

import (
	"errors"
	"sync"

	"github.com/emirpasic/gods/lists/arraylist"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrRecordConflict = errors.New("record conflict")
)

// Collection is an ordered in-memory record sequence. Values are stored as
// given; callers own copying before handing records out.
type Collection struct {
	name  string
	mutex sync.RWMutex
	list  *arraylist.List
}

func NewCollection(name string) *Collection {
	return &Collection{
		name: name,
		list: arraylist.New(),
	}
}

func (c *Collection) Name() string {
	return c.name
}

func (c *Collection) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.list.Size()
}

func (c *Collection) Values() []interface{} {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.list.Values()
}

func (c *Collection) Find(match func(interface{}) bool) (interface{}, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	index, value := c.list.Find(func(_ int, v interface{}) bool {
		return match(v)
	})
	return value, index >= 0
}

// Insert appends value unless an existing record satisfies conflict.
// A nil conflict never rejects.
func (c *Collection) Insert(value interface{}, conflict func(interface{}) bool) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if conflict != nil && c.list.Any(func(_ int, v interface{}) bool { return conflict(v) }) {
		return false
	}
	c.list.Add(value)
	return true
}

// Update replaces the first record satisfying match with apply(record) and
// returns the replacement. The update is rejected when any other record
// satisfies conflict. A nil conflict never rejects.
func (c *Collection) Update(match, conflict func(interface{}) bool, apply func(interface{}) interface{}) (interface{}, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if conflict != nil && c.list.Any(func(_ int, v interface{}) bool { return !match(v) && conflict(v) }) {
		return nil, ErrRecordConflict
	}
	index, value := c.list.Find(func(_ int, v interface{}) bool {
		return match(v)
	})
	if index < 0 {
		return nil, ErrRecordNotFound
	}
	updated := apply(value)
	c.list.Set(index, updated)
	return updated, nil
}

func (c *Collection) Remove(match func(interface{}) bool) (interface{}, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	index, value := c.list.Find(func(_ int, v interface{}) bool {
		return match(v)
	})
	if index < 0 {
		return nil, false
	}
	c.list.Remove(index)
	return value, true
}

func (c *Collection) Reset(values []interface{}) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.list.Clear()
	c.list.Add(values...)
}
