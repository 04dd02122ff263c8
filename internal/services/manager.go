package services

import (
	"log/slog"
	"time"

	"github.com/brightclass/grading-service/internal/cache"
	"github.com/brightclass/grading-service/internal/events"
	"github.com/brightclass/grading-service/internal/grader"
	"github.com/brightclass/grading-service/internal/repositories"
	"github.com/brightclass/grading-service/internal/validator"
)

type serviceManager struct {
	submission SubmissionService
	results    ResultsService
	mastery    MasteryService
	export     ExportService
}

// ManagerConfig bundles the dependencies shared across services.
type ManagerConfig struct {
	Repo               repositories.Repository
	Grader             grader.RubricGrader
	Publisher          events.EventPublisher
	Cache              cache.CacheService
	Logger             *slog.Logger
	Validator          *validator.Validator
	GradingConcurrency int
	ResultsCacheTTL    time.Duration
}

func NewServiceManager(cfg ManagerConfig) ServiceManager {
	scorer := NewAnswerScorer(cfg.Grader)
	results := NewResultsService(cfg.Repo, cfg.Cache, cfg.Logger, cfg.ResultsCacheTTL)

	return &serviceManager{
		submission: NewSubmissionService(
			cfg.Repo, scorer, cfg.Publisher, cfg.Cache,
			cfg.Logger, cfg.Validator, cfg.GradingConcurrency),
		results: results,
		mastery: NewMasteryService(cfg.Repo, cfg.Logger),
		export:  NewExportService(results, cfg.Logger),
	}
}

func (m *serviceManager) Submission() SubmissionService { return m.submission }
func (m *serviceManager) Results() ResultsService       { return m.results }
func (m *serviceManager) Mastery() MasteryService       { return m.mastery }
func (m *serviceManager) Export() ExportService         { return m.export }
