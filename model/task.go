package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TaskKey identifies one of the four fixed post-production tasks.
type TaskKey string

const (
	TaskCull        TaskKey = "cull"
	TaskSpeeches    TaskKey = "speeches"
	TaskFeatureFilm TaskKey = "featureFilm"
	TaskShortFilm   TaskKey = "shortFilm"
)

// TaskCount is the size of the closed task set.
const TaskCount = 4

// AllTaskKeys lists the task keys in display order.
var AllTaskKeys = []TaskKey{TaskCull, TaskSpeeches, TaskFeatureFilm, TaskShortFilm}

// ParseTaskKey validates a caller-supplied task key.
func ParseTaskKey(s string) (TaskKey, error) {
	for _, k := range AllTaskKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", &InvalidTaskKeyError{Key: s}
}

// Label returns a human readable label, e.g. "Feature Film".
func (k TaskKey) Label(tag language.Tag) string {
	var words []string
	start := 0
	s := string(k)
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return cases.Title(tag).String(strings.Join(words, " "))
}

// Tasks is the per-project checklist. The struct shape keeps the key set closed.
type Tasks struct {
	Cull        bool `json:"cull" yaml:"cull"`
	Speeches    bool `json:"speeches" yaml:"speeches"`
	FeatureFilm bool `json:"featureFilm" yaml:"featureFilm"`
	ShortFilm   bool `json:"shortFilm" yaml:"shortFilm"`
}

// Get returns the state of a single task.
func (t Tasks) Get(key TaskKey) (bool, error) {
	switch key {
	case TaskCull:
		return t.Cull, nil
	case TaskSpeeches:
		return t.Speeches, nil
	case TaskFeatureFilm:
		return t.FeatureFilm, nil
	case TaskShortFilm:
		return t.ShortFilm, nil
	}
	return false, &InvalidTaskKeyError{Key: string(key)}
}

// Set updates a single task.
func (t *Tasks) Set(key TaskKey, done bool) error {
	switch key {
	case TaskCull:
		t.Cull = done
	case TaskSpeeches:
		t.Speeches = done
	case TaskFeatureFilm:
		t.FeatureFilm = done
	case TaskShortFilm:
		t.ShortFilm = done
	default:
		return &InvalidTaskKeyError{Key: string(key)}
	}
	return nil
}

// CompletedCount counts the tasks marked done.
func (t Tasks) CompletedCount() int {
	n := 0
	for _, done := range []bool{t.Cull, t.Speeches, t.FeatureFilm, t.ShortFilm} {
		if done {
			n++
		}
	}
	return n
}

// Percent returns round(100*part/whole) with halves rounded up, or 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}
