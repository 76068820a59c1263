package smc

import (
	"fmt"
	"strings"

	"github.com/danmuck/smcctl/internal/smc/wire"
)

// StepError is the failure of one enumeration step. Its optional
// fields are populated progressively as the step advances: a failure
// during index lookup carries only the index, a failure during the
// metadata lookup adds the key, and a failure during the payload read
// adds the key's declared size and type.
type StepError struct {
	Err   error
	Index uint32

	Key      wire.Key
	KeyKnown bool

	Info      wire.KeyInfo
	InfoKnown bool
}

func (e *StepError) Error() string {
	var b strings.Builder
	if e.KeyKnown {
		fmt.Fprintf(&b, "%s ", e.Key)
	}
	if e.InfoKnown {
		fmt.Fprintf(&b, "%s size: %d ", e.Info.Type, e.Info.Size)
	}
	fmt.Fprintf(&b, "index: %d, error: %v", e.Index, e.Err)
	return b.String()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ValueIter is a lazy, forward-only, single-pass sequence over all keys
// by index. The total count is fixed at construction; every step yields
// either a value or a StepError, the cursor always advances by exactly
// one, and a failed step never ends the sequence early.
//
// The cursor is plain mutable state: an iterator must not be shared for
// concurrent iteration.
type ValueIter struct {
	c       *Client
	total   uint32
	next    uint32
	val     KeyValue
	stepErr *StepError
}

// Values returns an iterator over all keys. Fails if the key count
// cannot be read.
func (c *Client) Values() (*ValueIter, error) {
	total, err := c.KeysCount()
	if err != nil {
		return nil, err
	}
	return &ValueIter{c: c, total: total}, nil
}

// Total is the fixed number of steps the iterator will yield.
func (it *ValueIter) Total() uint32 {
	return it.total
}

// Next advances to the next key, returning false once all indices are
// exhausted. After a true return, exactly one of Value or StepErr holds
// the step's outcome.
func (it *ValueIter) Next() bool {
	it.stepErr = nil
	it.val = KeyValue{}
	if it.next >= it.total {
		return false
	}
	index := it.next
	it.next++

	var in, out wire.Record
	if err := it.c.readIndexPhase(index, &in, &out); err != nil {
		it.stepErr = &StepError{Err: err, Index: index}
		return true
	}
	in.Key = out.Key
	if err := it.c.keyInfoPhase(&in, &out); err != nil {
		it.stepErr = &StepError{Err: err, Index: index, Key: in.Key, KeyKnown: true}
		return true
	}
	kv, err := it.c.readPhase(&in, &out)
	if err != nil {
		it.stepErr = &StepError{
			Err:       err,
			Index:     index,
			Key:       in.Key,
			KeyKnown:  true,
			Info:      in.Info,
			InfoKnown: true,
		}
		return true
	}
	it.val = kv
	return true
}

// Value is the current step's key value; only meaningful when StepErr
// returns nil.
func (it *ValueIter) Value() KeyValue {
	return it.val
}

// StepErr is the current step's failure, or nil if the step succeeded.
func (it *ValueIter) StepErr() *StepError {
	return it.stepErr
}
