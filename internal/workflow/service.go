// AngelaMos | 2026
// service.go

// Package workflow runs one generation request through validation, the
// daily entitlement check, content generation and persistence.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/viralboost/internal/core"
	"github.com/carterperez-dev/viralboost/internal/entitlement"
	"github.com/carterperez-dev/viralboost/internal/generation"
	"github.com/carterperez-dev/viralboost/internal/generator"
	"github.com/carterperez-dev/viralboost/internal/profile"
)

type State string

const (
	StateIdle                State = "idle"
	StateValidating          State = "validating"
	StateCheckingEntitlement State = "checking_entitlement"
	StateGenerating          State = "generating"
	StatePersisting          State = "persisting"
	StateDone                State = "done"
	StateFailed              State = "failed"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrQuotaExceeded = errors.New("daily generation quota exceeded")
	ErrGeneration    = errors.New("content generation failed")
	ErrPersistence   = core.ErrPersistence
)

// StepError records the state a request failed in.
type StepError struct {
	State State
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.State, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// FailedAt returns the state err was raised in, or "" for foreign errors.
func FailedAt(err error) State {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.State
	}
	return ""
}

type ProfileSource interface {
	GetOrCreate(ctx context.Context, userID string) (*profile.Profile, error)
}

// Session is the per-user state a request runs against. TodayCount is
// advanced locally after each successful request so follow-up calls on the
// same session see the new total without another count query.
type Session struct {
	UserID     string
	Tier       string
	TodayCount int
	Location   *time.Location

	pending bool
}

// NewSession returns a session whose tier and count are loaded on first
// use, after the request has passed validation.
func NewSession(userID string, loc *time.Location) *Session {
	if loc == nil {
		loc = time.UTC
	}
	return &Session{UserID: userID, Location: loc, pending: true}
}

type Result struct {
	State      State
	Content    *generator.Content
	Generation *generation.Generation
	Saved      bool
}

type Service struct {
	profiles  ProfileSource
	repo      generation.Repository
	gen       generator.Generator
	policy    entitlement.Policy
	validator *validator.Validate
	logger    *slog.Logger
}

func NewService(
	profiles ProfileSource,
	repo generation.Repository,
	gen generator.Generator,
	policy entitlement.Policy,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		profiles:  profiles,
		repo:      repo,
		gen:       gen,
		policy:    policy,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
	}
}

// OpenSession loads the user's tier (creating a free profile on first
// access) and today's generation count in loc.
func (s *Service) OpenSession(
	ctx context.Context,
	userID string,
	loc *time.Location,
) (*Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("open session: %w", core.ErrUnauthorized)
	}

	sess := NewSession(userID, loc)
	if err := s.load(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) load(ctx context.Context, sess *Session) error {
	p, err := s.profiles.GetOrCreate(ctx, sess.UserID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	count, err := s.repo.CountToday(ctx, sess.UserID, sess.Location)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	sess.Tier = entitlement.NormalizeTier(p.SubscriptionTier)
	sess.TodayCount = count
	sess.pending = false
	return nil
}

func (s *Service) Usage(sess *Session) entitlement.Usage {
	return s.policy.Usage(sess.Tier, sess.TodayCount)
}

// Generate walks one request from Validating to Done. On a persistence
// failure the generated content is still returned in the result alongside
// the error.
func (s *Service) Generate(
	ctx context.Context,
	sess *Session,
	req GenerateRequest,
) (*Result, error) {
	if sess == nil || sess.UserID == "" {
		return nil, fmt.Errorf("generate: %w", core.ErrUnauthorized)
	}

	ctx, span := core.StartSpan(ctx, "workflow.generate",
		attribute.String("user.id", sess.UserID),
	)
	defer span.End()

	result := &Result{State: StateIdle}

	result.State = StateValidating
	core.AddSpanEvent(ctx, string(StateValidating))
	req = req.normalized()
	if err := s.validator.Struct(req); err != nil {
		return s.fail(result, StateValidating, fmt.Errorf("%w: %w", ErrValidation, err))
	}

	result.State = StateCheckingEntitlement
	if sess.pending {
		if err := s.load(ctx, sess); err != nil {
			return s.fail(result, StateCheckingEntitlement, err)
		}
	}
	core.AddSpanEvent(ctx, string(StateCheckingEntitlement),
		attribute.Int("today_count", sess.TodayCount),
	)
	if !s.policy.CanGenerate(sess.Tier, sess.TodayCount) {
		s.logger.InfoContext(ctx, "daily quota reached",
			"user_id", sess.UserID,
			"today_count", sess.TodayCount,
		)
		return s.fail(result, StateCheckingEntitlement, ErrQuotaExceeded)
	}

	result.State = StateGenerating
	core.AddSpanEvent(ctx, string(StateGenerating))
	content, err := s.runGenerator(ctx, req.toGenerator())
	if err != nil {
		core.SetSpanError(ctx, err)
		s.logger.ErrorContext(ctx, "content generation failed",
			"user_id", sess.UserID,
			"error", err,
		)
		return s.fail(result, StateGenerating, fmt.Errorf("%w: %w", ErrGeneration, err))
	}
	result.Content = content

	result.State = StatePersisting
	core.AddSpanEvent(ctx, string(StatePersisting))
	g, err := s.repo.Insert(ctx, sess.UserID, generation.Fields{
		Niche:       req.Niche,
		Goal:        req.Goal,
		ContentType: req.ContentType,
		Hook:        content.Hook,
		Caption:     content.Caption,
		Hashtags:    content.Hashtags,
		CTA:         content.CTA,
	})
	if err != nil {
		core.SetSpanError(ctx, err)
		s.logger.ErrorContext(ctx, "generation not saved",
			"user_id", sess.UserID,
			"error", err,
		)
		if !errors.Is(err, ErrPersistence) {
			err = fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		return s.fail(result, StatePersisting, err)
	}

	result.Generation = g
	result.Saved = true
	result.State = StateDone
	sess.TodayCount++
	core.AddSpanEvent(ctx, string(StateDone))

	return result, nil
}

// ListToday returns the session user's generations for the current local
// day, newest first.
func (s *Service) ListToday(ctx context.Context, sess *Session) ([]generation.Generation, error) {
	return s.repo.ListToday(ctx, sess.UserID, sess.Location)
}

// History is a pro feature: the most recent generations across all days.
func (s *Service) History(
	ctx context.Context,
	sess *Session,
	limit int,
) ([]generation.Generation, error) {
	if sess.Tier != entitlement.TierPro {
		return nil, fmt.Errorf("generation history: %w", core.ErrForbidden)
	}
	return s.repo.ListRecent(ctx, sess.UserID, limit)
}

func (s *Service) fail(result *Result, state State, err error) (*Result, error) {
	result.State = StateFailed
	return result, &StepError{State: state, Err: err}
}

func (s *Service) runGenerator(
	ctx context.Context,
	req generator.Request,
) (content *generator.Content, err error) {
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("generator panic: %v", r)
		}
	}()

	content, err = s.gen.Generate(ctx, req)
	if err == nil && content == nil {
		err = errors.New("generator returned no content")
	}
	return content, err
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
