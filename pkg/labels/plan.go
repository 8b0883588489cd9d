package labels

import (
	"errors"
	"fmt"
)

// MaxLevel is the number of printable positions on a key.
const MaxLevel = 4

var ErrLevelOutOfRange = errors.New("level out of range")

// Assignment is the text drawn at one level of a key. Labels always stay on
// their level; none is ever moved to a neighbouring one.
type Assignment struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
}

// Plan holds the text of each level of one key. Setting a level twice keeps
// the last text.
type Plan struct {
	texts [MaxLevel]string
	set   [MaxLevel]bool
}

func (p *Plan) Set(level int, text string) error {
	if level < 1 || level > MaxLevel {
		return fmt.Errorf("%w: %d", ErrLevelOutOfRange, level)
	}
	p.texts[level-1] = text
	p.set[level-1] = true
	return nil
}

func (p *Plan) Get(level int) (string, bool) {
	if level < 1 || level > MaxLevel {
		return "", false
	}
	return p.texts[level-1], p.set[level-1]
}

// Assignments lists the set levels in ascending order.
func (p *Plan) Assignments() []Assignment {
	var out []Assignment
	for i := range p.texts {
		if p.set[i] {
			out = append(out, Assignment{Level: i + 1, Text: p.texts[i]})
		}
	}
	return out
}

func (p *Plan) Empty() bool {
	return p.set == [MaxLevel]bool{}
}
