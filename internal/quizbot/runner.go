// Package quizbot ties quiz generation to delivery: each tick generates a
// quiz and posts it to the configured chat.
package quizbot

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/abhisek/dsaquiz/internal/quizgen"
	"github.com/abhisek/dsaquiz/internal/telemetry"
)

const tracerName = "dsaquiz/quizbot"

// Sender delivers a quiz and returns the id of the posted message.
type Sender interface {
	SendQuiz(ctx context.Context, q quizgen.Quiz) (int, error)
}

// Recorder receives per-tick counters. *telemetry.Metrics implements it.
type Recorder interface {
	QuizGenerated(source string, attempts int)
	PollSent()
	PollFailed()
	ObserveTick(d time.Duration)
}

// Runner handles scheduler ticks. It owns the last posted question, so
// Tick must not be called concurrently; the scheduler guarantees that.
type Runner struct {
	generator quizgen.Generator
	sender    Sender
	recorder  Recorder
	logger    *slog.Logger
	now       func() time.Time

	lastQuestion string
}

// Option customizes a Runner.
type Option func(*Runner)

// WithRecorder reports tick outcomes to r.
func WithRecorder(r Recorder) Option {
	return func(rn *Runner) { rn.recorder = r }
}

// WithLogger sets the logger. The default is slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(rn *Runner) { rn.logger = l }
}

// New creates a Runner.
func New(gen quizgen.Generator, sender Sender, opts ...Option) *Runner {
	r := &Runner{
		generator: gen,
		sender:    sender,
		recorder:  nopRecorder{},
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LastQuestion returns the question text of the last generated quiz.
func (r *Runner) LastQuestion() string {
	return r.lastQuestion
}

// Tick generates one quiz and sends it. Failures are logged and counted,
// never returned.
func (r *Runner) Tick(ctx context.Context) {
	start := r.now()
	tickID := telemetry.NewCorrelationID()
	ctx = telemetry.WithCorrelation(ctx, tickID)
	ctx, span := telemetry.StartSpan(ctx, tracerName, "quizbot.tick")
	defer span.End()
	logger := telemetry.LoggerFrom(ctx, r.logger)

	res := r.generator.Generate(ctx, r.lastQuestion)
	if !res.Fallback {
		r.lastQuestion = res.Quiz.Question
	}
	r.recorder.QuizGenerated(string(res.Source()), res.Attempts)
	span.SetAttributes(
		attribute.String("quiz.source", string(res.Source())),
		attribute.Int("quiz.attempts", res.Attempts),
	)

	msgID, err := r.sender.SendQuiz(ctx, res.Quiz)
	if err != nil {
		r.recorder.PollFailed()
		telemetry.RecordError(span, err)
		logger.Error("quiz send failed",
			slog.Time("at", r.now()),
			slog.String("question", res.Quiz.Question),
			slog.String("source", string(res.Source())),
			slog.Int("attempts", res.Attempts),
			slog.Any("err", err),
		)
	} else {
		r.recorder.PollSent()
		telemetry.SetSpanSuccess(span)
		logger.Info("quiz sent",
			slog.Time("at", r.now()),
			slog.String("question", res.Quiz.Question),
			slog.String("source", string(res.Source())),
			slog.Int("attempts", res.Attempts),
			slog.Int("message_id", msgID),
		)
	}
	r.recorder.ObserveTick(r.now().Sub(start))
}

type nopRecorder struct{}

func (nopRecorder) QuizGenerated(string, int) {}
func (nopRecorder) PollSent()                 {}
func (nopRecorder) PollFailed()               {}
func (nopRecorder) ObserveTick(time.Duration) {}
