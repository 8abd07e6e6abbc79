package carwash

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/colindecarlo/carwash/faker"
)

// Fixed replaces a column with the same value on every row, for example
// to give every user the same known password hash
type Fixed struct {
	Value any
}

// Format returns the fixed value
func (r Fixed) Format(f *faker.Faker, column string) (any, error) {
	return r.Value, nil
}

// Cycle replaces a column with lines read from a source, one per row.
// When the lines are exhausted it starts from the first line again
type Cycle struct {
	Replacements []string
	next         int
}

// NewCycle reads the replacement lines from r
func NewCycle(r io.Reader) (*Cycle, error) {

	c := &Cycle{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		c.Replacements = append(c.Replacements, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return c, err
	}
	if len(c.Replacements) == 0 {
		return c, errors.New("cycle replacer: source has no lines")
	}
	return c, nil
}

// NewCycleFile reads the replacement lines from the file at path
func NewCycleFile(path string) (*Cycle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewCycle(f)
}

// Format returns the next replacement line
func (c *Cycle) Format(f *faker.Faker, column string) (any, error) {
	if len(c.Replacements) == 0 {
		return nil, errors.New("cycle replacer: no replacements")
	}
	v := c.Replacements[c.next%len(c.Replacements)]
	c.next++
	return v, nil
}
