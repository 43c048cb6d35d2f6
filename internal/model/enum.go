package model

import (
	"fmt"
	"strings"
)

// enumNames maps ordinals to the lower-case names used on disk. Ordinals
// start at 1 so the zero value is never a valid member.
type enumNames []string

func (n enumNames) name(kind string, v int) (string, error) {
	if v < 1 || v > len(n) {
		return "", fmt.Errorf("%w: %s %d", ErrInvalidEnum, kind, v)
	}
	return n[v-1], nil
}

func (n enumNames) parse(kind, s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range n {
		if name == s {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrInvalidEnum, kind, s)
}

// Priority ranks a task. Higher ordinals mean more urgent.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

var priorityNames = enumNames{"low", "medium", "high"}

// Priorities lists every declared priority in ordinal order.
func Priorities() []Priority { return []Priority{PriorityLow, PriorityMedium, PriorityHigh} }

func ParsePriority(s string) (Priority, error) {
	v, err := priorityNames.parse("priority", s)
	return Priority(v), err
}

func (p Priority) String() string {
	s, err := priorityNames.name("priority", int(p))
	if err != nil {
		return fmt.Sprintf("Priority(%d)", int(p))
	}
	return s
}

func (p Priority) MarshalText() ([]byte, error) {
	s, err := priorityNames.name("priority", int(p))
	return []byte(s), err
}

func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Completion is the done/not-done state of a task.
type Completion int

const (
	Completed Completion = iota + 1
	Pending
)

var completionNames = enumNames{"completed", "pending"}

func ParseCompletion(s string) (Completion, error) {
	v, err := completionNames.parse("completion", s)
	return Completion(v), err
}

func (c Completion) String() string {
	s, err := completionNames.name("completion", int(c))
	if err != nil {
		return fmt.Sprintf("Completion(%d)", int(c))
	}
	return s
}

func (c Completion) MarshalText() ([]byte, error) {
	s, err := completionNames.name("completion", int(c))
	return []byte(s), err
}

func (c *Completion) UnmarshalText(b []byte) error {
	v, err := ParseCompletion(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Toggle flips between Completed and Pending.
func (c Completion) Toggle() Completion {
	if c == Completed {
		return Pending
	}
	return Completed
}

// ReadStatus records whether a library item has been read.
type ReadStatus int

const (
	Read ReadStatus = iota + 1
	Unread
)

var readStatusNames = enumNames{"read", "unread"}

func ParseReadStatus(s string) (ReadStatus, error) {
	v, err := readStatusNames.parse("read status", s)
	return ReadStatus(v), err
}

func (r ReadStatus) String() string {
	s, err := readStatusNames.name("read status", int(r))
	if err != nil {
		return fmt.Sprintf("ReadStatus(%d)", int(r))
	}
	return s
}

func (r ReadStatus) MarshalText() ([]byte, error) {
	s, err := readStatusNames.name("read status", int(r))
	return []byte(s), err
}

func (r *ReadStatus) UnmarshalText(b []byte) error {
	v, err := ParseReadStatus(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Toggle flips between Read and Unread.
func (r ReadStatus) Toggle() ReadStatus {
	if r == Read {
		return Unread
	}
	return Read
}
