// Package generator turns an ingredient list into a recipe by prompting a
// text model and normalizing its answer.
package generator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"pantrychef/internal/metrics"
	"pantrychef/internal/prompt"
	"pantrychef/internal/recipe"
)

// AuthMarker is the substring in a provider error that signals a rejected credential.
const AuthMarker = "API_KEY"

// DefaultCredentialName is the environment variable that holds the API key.
const DefaultCredentialName = "GEMINI_API_KEY"

// Chefs is the roster a result's display name is drawn from.
var Chefs = []string{
	"Chef Marco", "Chef Isabella", "Chef Antonio", "Chef Sofia",
	"Chef Luigi", "Chef Emma", "Chef Oliver", "Chef Maya",
}

// Completer is a text-completion model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config carries the credential the completer needs. An empty APIKey means
// generation is not configured.
type Config struct {
	APIKey         string
	CredentialName string
}

// Request is the generation input.
type Request struct {
	Ingredients  []string `json:"ingredients"`
	HealthFilter string   `json:"healthFilter"`
}

// Result is the generation envelope returned to the caller.
type Result struct {
	Recipe   *recipe.Recipe `json:"recipe"`
	ChefName string         `json:"chefName"`
	Message  string         `json:"message"`
}

// Option configures the service.
type Option func(*Service)

// WithChefPicker overrides the random index used to choose a chef.
func WithChefPicker(pick func(n int) int) Option {
	return func(s *Service) {
		s.pick = pick
	}
}

// WithMetrics records generation outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// Service generates recipes. It holds no per-request state and is safe for
// concurrent use.
type Service struct {
	completer Completer
	cfg       Config
	log       *zap.Logger
	pick      func(n int) int
	metrics   *metrics.Metrics
}

// NewService creates a Service. completer may be nil when cfg.APIKey is empty.
func NewService(completer Completer, cfg Config, log *zap.Logger, opts ...Option) *Service {
	if cfg.CredentialName == "" {
		cfg.CredentialName = DefaultCredentialName
	}
	s := &Service{
		completer: completer,
		cfg:       cfg,
		log:       log,
		pick:      rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate builds a recipe for the requested ingredients. Errors are always
// *Error.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	res, err := s.generate(ctx, req)
	if s.metrics != nil {
		s.metrics.ObserveGeneration(outcome(err), time.Since(start))
	}
	return res, err
}

func (s *Service) generate(ctx context.Context, req Request) (*Result, error) {
	ingredients := cleanIngredients(req.Ingredients)
	if len(ingredients) == 0 {
		return nil, newError(KindInvalidInput, MsgNoIngredients, nil)
	}
	if s.cfg.APIKey == "" || s.completer == nil {
		return nil, newError(KindConfiguration, ConfigurationMessage(s.cfg.CredentialName), nil)
	}

	text := prompt.BuildRecipePrompt(ingredients, req.HealthFilter)

	s.log.Info("generating recipe",
		zap.Strings("ingredients", ingredients),
		zap.String("health_filter", req.HealthFilter),
	)
	raw, err := s.completer.Complete(ctx, text)
	if err != nil {
		s.log.Error("recipe generation failed", zap.Error(err))
		if strings.Contains(err.Error(), AuthMarker) {
			return nil, newError(KindAuth, MsgAuth, err)
		}
		return nil, newError(KindGenerationFailed, MsgGenerationFailed, err)
	}

	r, ok := recipe.Normalize(raw, ingredients)
	if !ok {
		s.log.Warn("model output could not be parsed, using fallback recipe", zap.Int("raw_length", len(raw)))
		if s.metrics != nil {
			s.metrics.FallbackRecipes.Inc()
		}
	}

	chef := Chefs[s.pick(len(Chefs))]
	return &Result{
		Recipe:   r,
		ChefName: chef,
		Message:  fmt.Sprintf("%s has created this delicious recipe just for you using AI! 🍳✨", chef),
	}, nil
}

func cleanIngredients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, ing := range in {
		if ing = strings.TrimSpace(ing); ing != "" {
			out = append(out, ing)
		}
	}
	return out
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	if e, ok := err.(*Error); ok {
		return strings.ToLower(string(e.Kind))
	}
	return "error"
}
