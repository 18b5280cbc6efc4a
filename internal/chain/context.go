package chain

import "fmt"

// Context is the accumulated state of one run: the raw customer query
// plus each completed stage's output, keyed by the stage's context key.
// Keys are only ever added, never overwritten.
type Context map[string]string

// NewContext seeds a run context with the raw customer query.
func NewContext(customerQuery string) Context {
	return Context{KeyCustomerQuery: customerQuery}
}

// Get returns the value stored under key.
func (c Context) Get(key string) (string, bool) {
	v, ok := c[key]
	return v, ok
}

// add stores a new key. Overwriting is rejected: the chain is
// append-only and a duplicate key means a stage table bug.
func (c Context) add(key, value string) error {
	if _, exists := c[key]; exists {
		return fmt.Errorf("context key %q already set", key)
	}
	c[key] = value
	return nil
}
