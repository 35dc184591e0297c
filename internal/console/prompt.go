// Package console drives the interactive recipe session: prompts with
// validation loops, a renderer for text, JSON or YAML output, and the demo
// sequence that exercises every catalog operation.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/recipe"
)

// ErrInvalidChoice is returned by SearchQuery for a menu answer other than
// 1, 2 or 3.
var ErrInvalidChoice = errors.New("invalid choice: pick 1, 2 or 3")

// Prompter reads answers line by line. Prompts go to out; io.EOF from the
// input is returned as is so callers can stop cleanly.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// String prints label and returns the next line without its newline.
func (p *Prompter) String(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.in.Text(), nil
}

// NonEmpty repeats the prompt until the answer has a non-blank character.
func (p *Prompter) NonEmpty(label string) (string, error) {
	for {
		s, err := p.String(label)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(s) != "" {
			return s, nil
		}
		fmt.Fprintln(p.out, "A value is required. Try again.")
	}
}

// PositiveInt repeats the prompt until the answer parses as an integer
// greater than zero.
func (p *Prompter) PositiveInt(label string) (int, error) {
	for {
		s, err := p.String(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		switch {
		case err != nil:
			fmt.Fprintln(p.out, "Enter a valid number. Try again.")
		case n <= 0:
			fmt.Fprintln(p.out, "The number must be greater than 0. Try again.")
		default:
			return n, nil
		}
	}
}

// Ingredients reads one comma-separated line.
func (p *Prompter) Ingredients(label string) ([]string, error) {
	s, err := p.String(label)
	if err != nil {
		return nil, err
	}
	return recipe.SplitIngredients(s), nil
}

// SearchQuery shows the criterion menu and builds a single-field query.
func (p *Prompter) SearchQuery() (recipe.Query, error) {
	fmt.Fprintln(p.out, "Search criteria:")
	fmt.Fprintln(p.out, "1. Name")
	fmt.Fprintln(p.out, "2. Ingredient")
	fmt.Fprintln(p.out, "3. Duration")
	choice, err := p.String("Choose a criterion (1/2/3): ")
	if err != nil {
		return recipe.Query{}, err
	}
	switch strings.TrimSpace(choice) {
	case "1":
		name, err := p.String("Recipe name to search for: ")
		return recipe.Query{Name: name}, err
	case "2":
		ing, err := p.String("Ingredient to search for: ")
		return recipe.Query{Ingredient: ing}, err
	case "3":
		d, err := p.PositiveInt("Duration in minutes to search for: ")
		return recipe.Query{DurationMinutes: d}, err
	default:
		return recipe.Query{}, ErrInvalidChoice
	}
}
