package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fairwaylabs/formats-api/internal/demo"
	"github.com/fairwaylabs/formats-api/internal/logic"
	"github.com/fairwaylabs/formats-api/internal/store"
)

// MaxBodySize limits the size of request bodies to 64KB
const MaxBodySize = 65536

// DefaultSuggestDelay is the debounce window advertised to type-ahead clients
const DefaultSuggestDelay = 200 * time.Millisecond

type Config struct {
	Store  store.Store
	Logger *zap.Logger
	// Services
	Formats    logic.FormatService
	Sessions   logic.SessionService
	Scorecards logic.ScorecardService
	// Client timings, echoed in responses so front ends pace themselves
	SuggestDelay  time.Duration
	DemoStepDelay time.Duration
}

type Handler struct {
	store      store.Store
	logger     *zap.SugaredLogger
	validator  *validator.Validate
	formats    logic.FormatService
	sessions   logic.SessionService
	scorecards logic.ScorecardService

	suggestDelay  time.Duration
	demoStepDelay time.Duration
}

func New(cfg Config) *Handler {
	if cfg.SuggestDelay <= 0 {
		cfg.SuggestDelay = DefaultSuggestDelay
	}
	if cfg.DemoStepDelay <= 0 {
		cfg.DemoStepDelay = demo.DefaultStepDelay
	}
	return &Handler{
		store:      cfg.Store,
		logger:     cfg.Logger.Sugar(),
		validator:  validator.New(),
		formats:    cfg.Formats,
		sessions:   cfg.Sessions,
		scorecards: cfg.Scorecards,

		suggestDelay:  cfg.SuggestDelay,
		demoStepDelay: cfg.DemoStepDelay,
	}
}
