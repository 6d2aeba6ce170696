package pipeline

import (
	"fmt"
	"strings"
)

// Stages is the ordered hiring process of one job. Order defines progression;
// names are unique by convention only.
type Stages []string

// DefaultStages is used for new jobs when neither the recruiter nor the
// pipeline config supplies a list.
var DefaultStages = Stages{
	"Applied",
	"HR Screening",
	"Technical Interview",
	"Client Interview",
	"Offer Letter",
	"Hired",
}

// DefaultOfferStage is the conventional stage quick-add shortcuts insert before.
const DefaultOfferStage = "Offer Letter"

// Clone returns a copy that shares no backing array with s.
func (s Stages) Clone() Stages {
	if s == nil {
		return nil
	}
	out := make(Stages, len(s))
	copy(out, s)
	return out
}

// Index returns the position of the first stage called name, or -1.
func (s Stages) Index(name string) int {
	for i, stage := range s {
		if stage == name {
			return i
		}
	}
	return -1
}

func (s Stages) Contains(name string) bool {
	return s.Index(name) >= 0
}

// Append adds name at the end. Blank names are ignored.
func (s Stages) Append(name string) Stages {
	name = strings.TrimSpace(name)
	out := s.Clone()
	if name == "" {
		return out
	}
	return append(out, name)
}

// RemoveAt drops the stage at index. Applications sitting in the removed
// stage are not migrated; the board regroups them under the first stage.
func (s Stages) RemoveAt(index int) (Stages, error) {
	if index < 0 || index >= len(s) {
		return s.Clone(), fmt.Errorf("remove stage: index %d out of range [0,%d)", index, len(s))
	}
	out := make(Stages, 0, len(s)-1)
	out = append(out, s[:index]...)
	return append(out, s[index+1:]...), nil
}

// InsertBefore places name immediately before the first stage called target,
// or appends it when target is not present.
func (s Stages) InsertBefore(target, name string) Stages {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.Clone()
	}
	idx := s.Index(target)
	if idx < 0 {
		return s.Append(name)
	}
	out := make(Stages, 0, len(s)+1)
	out = append(out, s[:idx]...)
	out = append(out, name)
	return append(out, s[idx:]...)
}

// QuickAdd inserts a preset stage before the offer stage unless it is
// already part of the list.
func (s Stages) QuickAdd(name, offerStage string) Stages {
	if s.Contains(strings.TrimSpace(name)) {
		return s.Clone()
	}
	return s.InsertBefore(offerStage, name)
}

// Normalize trims names and drops blanks, keeping order.
func (s Stages) Normalize() Stages {
	out := make(Stages, 0, len(s))
	for _, stage := range s {
		if stage = strings.TrimSpace(stage); stage != "" {
			out = append(out, stage)
		}
	}
	return out
}

// OrDefault returns s, or a copy of DefaultStages when s is empty.
func (s Stages) OrDefault() Stages {
	if len(s) == 0 {
		return DefaultStages.Clone()
	}
	return s
}
