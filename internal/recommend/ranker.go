// Package recommend produces the "For You" ordering: the match score blended
// with a similarity bonus derived from the user's saved and applied history.
package recommend

import (
	"context"
	"sort"
	"strings"

	"internmatch-backend/internal/domain"
	"internmatch-backend/internal/match"
	"internmatch-backend/pkg/logger"
)

// similarity sub-bonuses; the combined bonus is capped regardless of how
// many fire.
const (
	companyBonus  = 20
	locationBonus = 10
	jobTypeBonus  = 15
	bonusCap      = 30

	catalogPageSize = 50
	maxCatalogPages = 40
)

type Ranker struct {
	jobRepo   domain.JobRepository
	userRepo  domain.UserRepository
	savedRepo domain.SavedJobRepository
	appRepo   domain.ApplicationRepository
}

func NewRanker(jobRepo domain.JobRepository, userRepo domain.UserRepository, savedRepo domain.SavedJobRepository, appRepo domain.ApplicationRepository) *Ranker {
	return &Ranker{
		jobRepo:   jobRepo,
		userRepo:  userRepo,
		savedRepo: savedRepo,
		appRepo:   appRepo,
	}
}

// history is the similarity signal extracted from saved/applied jobs.
type history struct {
	companies map[string]bool
	locations []string
	jobTypes  map[string]bool
}

// Recommend ranks the catalog for one user and returns at most limit jobs.
// Failures loading preferences or history degrade to scoring without that
// signal; they are logged, never surfaced.
func (r *Ranker) Recommend(ctx context.Context, userID string, limit int) ([]domain.Job, error) {
	if limit < 1 {
		limit = 20
	}

	catalog, err := r.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	var prefs *domain.UserPreferences
	if userID != "" {
		if user, err := r.userRepo.GetByID(ctx, userID); err != nil {
			logger.Log.Warn("recommend: preferences unavailable, using neutral scores", "error", err)
		} else {
			prefs = &user.Preferences
		}
	}

	hist := r.loadHistory(ctx, userID, catalog)

	type ranked struct {
		job        domain.Job
		finalScore int
	}
	items := make([]ranked, 0, len(catalog))
	for _, job := range catalog {
		items = append(items, ranked{
			job:        job,
			finalScore: match.Score(job, prefs) + similarityBonus(job, hist),
		})
	}

	// Stable: ties keep catalog order
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].finalScore > items[j].finalScore
	})

	if len(items) > limit {
		items = items[:limit]
	}
	jobs := make([]domain.Job, len(items))
	for i, it := range items {
		jobs[i] = it.job
	}
	return jobs, nil
}

func (r *Ranker) loadCatalog(ctx context.Context) ([]domain.Job, error) {
	var catalog []domain.Job
	cursor := ""
	for page := 0; page < maxCatalogPages; page++ {
		jp, err := r.jobRepo.List(ctx, domain.JobFilters{}, cursor, catalogPageSize)
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, jp.Jobs...)
		if jp.Cursor == "" {
			break
		}
		cursor = jp.Cursor
	}
	return catalog, nil
}

// loadHistory resolves the user's saved and applied job IDs against the
// catalog. Jobs that have left the catalog simply contribute no signal.
func (r *Ranker) loadHistory(ctx context.Context, userID string, catalog []domain.Job) history {
	hist := history{
		companies: make(map[string]bool),
		jobTypes:  make(map[string]bool),
	}
	if userID == "" {
		return hist
	}

	byID := make(map[string]domain.Job, len(catalog))
	for _, job := range catalog {
		byID[job.ID] = job
	}

	var historyIDs []string
	if saved, err := r.savedRepo.ListJobIDsByUser(ctx, userID); err != nil {
		logger.Log.Warn("recommend: saved-job history unavailable", "error", err)
	} else {
		historyIDs = append(historyIDs, saved...)
	}
	if apps, err := r.appRepo.ListByUser(ctx, userID); err != nil {
		logger.Log.Warn("recommend: application history unavailable", "error", err)
	} else {
		for _, app := range apps {
			historyIDs = append(historyIDs, app.JobID)
		}
	}

	for _, id := range historyIDs {
		job, ok := byID[id]
		if !ok {
			continue
		}
		if job.Company != "" {
			hist.companies[strings.ToLower(job.Company)] = true
		}
		if job.Location != "" {
			hist.locations = append(hist.locations, strings.ToLower(job.Location))
		}
		if job.JobType != "" {
			hist.jobTypes[job.JobType] = true
		}
	}
	return hist
}

// similarityBonus adds up to 30 points for overlap with the user's history:
// same company +20, overlapping location +10, same job type +15.
func similarityBonus(job domain.Job, hist history) int {
	bonus := 0

	if hist.companies[strings.ToLower(job.Company)] {
		bonus += companyBonus
	}

	jobLoc := strings.ToLower(job.Location)
	for _, loc := range hist.locations {
		if strings.Contains(jobLoc, loc) || strings.Contains(loc, jobLoc) {
			bonus += locationBonus
			break
		}
	}

	if hist.jobTypes[job.JobType] {
		bonus += jobTypeBonus
	}

	if bonus > bonusCap {
		bonus = bonusCap
	}
	return bonus
}
