package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Job is one posted position. Jobs are written by the ingestion pipeline and
// are read-only from this service's perspective.
type Job struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	Description      string    `json:"description"`
	Requirements     string    `json:"requirements"`
	Salary           string    `json:"salary"` // free text, e.g. "$50,000" or "Competitive"
	JobType          string    `json:"job_type"`
	Remote           bool      `json:"remote"`
	SponsorsVisa     bool      `json:"sponsors_visa"`
	Responsibilities []string  `json:"responsibilities"`
	Benefits         []string  `json:"benefits"`
	Source           string    `json:"source"` // "startup" for YC-sourced jobs
	URL              string    `json:"url"`
	PostedDate       string    `json:"posted_date"`
	Thumbnail        string    `json:"thumbnail"`
	CreatedAt        time.Time `json:"created_at"`
}

// SalaryRange bounds are optional; a nil bound means unbounded on that side.
type SalaryRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// JobFilters narrows the discovery query. Nil/empty fields are ignored.
// Location and salary are post-filtered against the fetched page; the other
// fields narrow the store query itself.
type JobFilters struct {
	Remote          *bool        `json:"remote,omitempty"`
	VisaSponsorship *bool        `json:"visa_sponsorship,omitempty"`
	JobType         string       `json:"job_type,omitempty"`
	Locations       []string     `json:"locations,omitempty"`
	SalaryRange     *SalaryRange `json:"salary_range,omitempty"`
}

// JobPage is one page of a cursor-paginated listing. An empty Cursor means
// the listing is exhausted.
type JobPage struct {
	Jobs   []Job  `json:"jobs"`
	Cursor string `json:"cursor,omitempty"`
}

type JobRepository interface {
	// List returns one page of jobs matching filters, newest first.
	// cursor is opaque; pass "" for the first page.
	List(ctx context.Context, filters JobFilters, cursor string, limit int) (*JobPage, error)
	GetByID(ctx context.Context, id string) (*Job, error)
	// ListCreatedSince supports the daily digest.
	ListCreatedSince(ctx context.Context, since time.Time) ([]Job, error)
}

type JobUsecase interface {
	ListJobs(ctx context.Context, subjectID string, filters JobFilters, cursor string) (*ScoredJobPage, error)
	// GetJobDetails returns (nil, nil) when the job does not exist; absence
	// is a normal outcome, not an error.
	GetJobDetails(ctx context.Context, subjectID, id string) (*ScoredJob, error)
}

// ScoredJob annotates a job with the caller's match score and insights.
type ScoredJob struct {
	Job        Job      `json:"job"`
	MatchScore int      `json:"match_score"`
	Insights   []string `json:"insights"`
}

type ScoredJobPage struct {
	Jobs   []ScoredJob `json:"jobs"`
	Cursor string      `json:"cursor,omitempty"`
}
