// Package tasks loads the Secret Life task base: a JSON object of tasks
// keyed by id, kept in file order.
package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// MaxDescLines bounds how many lines of a task description are shown.
const MaxDescLines = 7

// ErrEmpty is returned when a task base holds no tasks.
var ErrEmpty = errors.New("tasks: no tasks")

// Difficulty grades a task.
type Difficulty int

const (
	Normal Difficulty = iota
	Hard
	Red
	Shiny
)

var difficulties = [...]struct {
	name   string
	hex    string
	reward int
}{
	Normal: {"Normal", "#28c878", 6},
	Hard:   {"Hard", "#e0a526", 17},
	Red:    {"Red", "#c82843", 3},
	Shiny:  {"Shiny", "#2861c9", 13},
}

func (d Difficulty) valid() bool {
	return d >= 0 && int(d) < len(difficulties)
}

func (d Difficulty) String() string {
	if !d.valid() {
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
	return difficulties[d].name
}

// Hex returns the display colour of the difficulty as #rrggbb.
func (d Difficulty) Hex() string {
	if !d.valid() {
		return "#ffffff"
	}
	return difficulties[d].hex
}

// Task is one entry of the task base.
type Task struct {
	Key         string
	Name        string
	Description string
	Difficulty  Difficulty
	Reward      int
}

// EffectiveReward returns the task reward in tokens. Early task bases left
// the reward out; those fall back to a per-difficulty default.
func (t Task) EffectiveReward() int {
	if t.Reward != 0 || !t.Difficulty.valid() {
		return t.Reward
	}
	return difficulties[t.Difficulty].reward
}

// DescriptionLines word-wraps the description to width columns and keeps
// at most MaxDescLines lines, ending a cut description with "...".
func (t Task) DescriptionLines(width int) []string {
	return Wrap(t.Description, width, MaxDescLines)
}

// jsonTask is the on-disk JSON format.
type jsonTask struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Difficulty  int    `json:"difficulty"`
	Reward      int    `json:"reward"`
}

// Parse reads a task base. Tasks are returned in the order they appear.
func Parse(r io.Reader) ([]Task, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("parse tasks: expected object, got %v", tok)
	}

	var out []Task
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse tasks: %w", err)
		}
		key, _ := tok.(string)

		var jt jsonTask
		if err := dec.Decode(&jt); err != nil {
			return nil, fmt.Errorf("parse task %q: %w", key, err)
		}
		out = append(out, Task{
			Key:         key,
			Name:        jt.Name,
			Description: jt.Description,
			Difficulty:  Difficulty(jt.Difficulty),
			Reward:      jt.Reward,
		})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}

	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// Load reads a task base file from disk.
func Load(path string) ([]Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Wrap breaks text into lines of at most width runes on word boundaries.
// Words longer than width are split. Past maxLines the text is cut and the
// last line ends with "...". maxLines <= 0 means no limit.
func Wrap(text string, width, maxLines int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	var cur []rune
	flush := func() {
		lines = append(lines, string(cur))
		cur = cur[:0]
	}
	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > width {
			if len(cur) > 0 {
				flush()
			}
			cur = append(cur, w[:width]...)
			flush()
			w = w[width:]
		}
		if len(cur) > 0 && len(cur)+1+len(w) > width {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, w...)
	}
	if len(cur) > 0 {
		flush()
	}

	if maxLines <= 0 || len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	last := []rune(lines[maxLines-1])
	if len(last)+3 > width {
		last = last[:max(0, width-3)]
	}
	lines[maxLines-1] = strings.TrimRight(string(last), " ") + "..."
	return lines
}
