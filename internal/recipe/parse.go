package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrNormalization is returned by ParseCompletion when the model output cannot
// be turned into a usable recipe. Normalize never lets it escape.
var ErrNormalization = errors.New("could not normalize model output")

// FallbackTitle is the title of the placeholder recipe used when parsing fails.
const FallbackTitle = "AI-Generated Recipe"

var (
	fencedJSON  = regexp.MustCompile("(?s)```json\\r?\\n(.*?)\\r?\\n```")
	braceSpan   = regexp.MustCompile(`(?s)\{.*\}`)
	stepMinutes = regexp.MustCompile(`(\d+)\s*min`)

	fallbackSteps = []string{
		"Prepare all ingredients",
		"Combine ingredients according to your preference",
		"Cook until done",
		"Season to taste",
		"Serve and enjoy!",
	}
)

// completion mirrors Recipe with pointer fields so absent keys can be told
// apart from zero values.
type completion struct {
	Title        *string       `json:"title"`
	Ingredients  *[]Ingredient `json:"ingredients"`
	Instructions *[]Step       `json:"instructions"`
	Calories     *float64      `json:"calories"`
	Macros       *Macros       `json:"macros"`
	CookTime     *string       `json:"cookTime"`
	Servings     *int          `json:"servings"`
	PrepTime     string        `json:"prepTime"`
	TotalTime    string        `json:"totalTime"`
	Difficulty   Difficulty    `json:"difficulty"`
	Cuisine      string        `json:"cuisine"`
	Equipment    []string      `json:"equipment"`
	Tips         []string      `json:"tips"`
}

// ExtractJSON picks the part of raw model output most likely to hold the
// recipe object: a ```json fence, else the widest {...} span, else raw itself.
func ExtractJSON(raw string) string {
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := braceSpan.FindString(raw); m != "" {
		return m
	}
	return raw
}

// ParseCompletion decodes model output into a Recipe and checks that every
// required field is present and usable.
func ParseCompletion(raw string) (*Recipe, error) {
	var c completion
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNormalization, err)
	}

	switch {
	case c.Title == nil || strings.TrimSpace(*c.Title) == "":
		return nil, fmt.Errorf("%w: missing title", ErrNormalization)
	case c.Ingredients == nil || len(*c.Ingredients) == 0:
		return nil, fmt.Errorf("%w: missing ingredients", ErrNormalization)
	case c.Instructions == nil || len(*c.Instructions) == 0:
		return nil, fmt.Errorf("%w: missing instructions", ErrNormalization)
	case c.Calories == nil || *c.Calories < 0:
		return nil, fmt.Errorf("%w: missing calories", ErrNormalization)
	case c.Macros == nil:
		return nil, fmt.Errorf("%w: missing macros", ErrNormalization)
	case c.CookTime == nil:
		return nil, fmt.Errorf("%w: missing cookTime", ErrNormalization)
	case c.Servings == nil || *c.Servings < 1:
		return nil, fmt.Errorf("%w: missing servings", ErrNormalization)
	}
	if err := checkEntries(*c.Ingredients, *c.Instructions, *c.Macros); err != nil {
		return nil, err
	}

	r := &Recipe{
		Title:        *c.Title,
		Ingredients:  *c.Ingredients,
		Instructions: numberSteps(*c.Instructions),
		Calories:     *c.Calories,
		Macros:       *c.Macros,
		CookTime:     *c.CookTime,
		Servings:     *c.Servings,
		PrepTime:     c.PrepTime,
		TotalTime:    c.TotalTime,
		Cuisine:      c.Cuisine,
		Equipment:    c.Equipment,
		Tips:         c.Tips,
	}
	switch c.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		r.Difficulty = c.Difficulty
	}
	return r, nil
}

// checkEntries rejects blank ingredients or steps and negative macro values.
func checkEntries(ingredients []Ingredient, steps []Step, m Macros) error {
	for i, ing := range ingredients {
		if (ing.Kind == FreeText && strings.TrimSpace(ing.Text) == "") ||
			(ing.Kind == Structured && strings.TrimSpace(ing.Name) == "") {
			return fmt.Errorf("%w: ingredient %d is blank", ErrNormalization, i+1)
		}
	}
	for i, s := range steps {
		if strings.TrimSpace(s.Instruction) == "" {
			return fmt.Errorf("%w: instruction %d is blank", ErrNormalization, i+1)
		}
	}
	if m.Protein < 0 || m.Carbs < 0 || m.Fat < 0 || m.Fiber < 0 ||
		(m.Sugar != nil && *m.Sugar < 0) || (m.Sodium != nil && *m.Sodium < 0) {
		return fmt.Errorf("%w: negative macro value", ErrNormalization)
	}
	return nil
}

// Normalize turns model output into a Recipe. When the output is unusable it
// returns the Fallback recipe for the requested ingredients and reports
// false; it never fails.
func Normalize(raw string, ingredients []string) (*Recipe, bool) {
	r, err := ParseCompletion(raw)
	if err != nil {
		return Fallback(ingredients), false
	}
	return r, true
}

// Fallback builds the deterministic placeholder recipe for the given ingredients.
func Fallback(ingredients []string) *Recipe {
	r := &Recipe{
		Title:    FallbackTitle,
		Calories: 300,
		Macros: Macros{
			Protein: 20,
			Carbs:   25,
			Fat:     15,
			Fiber:   5,
		},
		CookTime: "20 minutes",
		Servings: 2,
	}
	for _, ing := range ingredients {
		r.Ingredients = append(r.Ingredients, Line("1 portion "+ing))
	}
	for i, text := range fallbackSteps {
		r.Instructions = append(r.Instructions, Step{Step: i + 1, Instruction: text, Time: StepMinutes(text)})
	}
	return r
}

// StepMinutes returns the minute count mentioned in a cooking or baking
// instruction ("simmer and cook for 10 min"), or 0 when there is none.
func StepMinutes(instruction string) int {
	lower := strings.ToLower(instruction)
	if !strings.Contains(lower, "cook") && !strings.Contains(lower, "bake") {
		return 0
	}
	m := stepMinutes.FindStringSubmatch(lower)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// numberSteps renumbers steps 1..n and fills in missing times from the text.
func numberSteps(steps []Step) []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		s.Step = i + 1
		if s.Time <= 0 {
			s.Time = StepMinutes(s.Instruction)
		}
		out[i] = s
	}
	return out
}
