package domain

import (
	"context"
	"time"
)

// ApplicationStatus values mirror the tracker UI columns.
type ApplicationStatus string

const (
	ApplicationStatusApplied   ApplicationStatus = "Applied"
	ApplicationStatusInterview ApplicationStatus = "Interview"
	ApplicationStatusOffer     ApplicationStatus = "Offer"
	ApplicationStatusRejected  ApplicationStatus = "Rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "Withdrawn"
)

// canonicalTransitions is the expected status graph:
//
//	Applied ──► Interview ──► Offer
//	    │            │
//	    └────────────┴──► Rejected / Withdrawn
//
// The tracker UI allows free transition between any two statuses, so the
// graph is advisory: UpdateStatus logs departures from it but never rejects
// them.
var canonicalTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusApplied:   {ApplicationStatusInterview, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusInterview: {ApplicationStatusOffer, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	// Offer, Rejected and Withdrawn are terminal in the canonical graph
}

// ParseApplicationStatus converts a raw string to an ApplicationStatus,
// returning false for unknown values.
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	st := ApplicationStatus(s)
	switch st {
	case ApplicationStatusApplied, ApplicationStatusInterview, ApplicationStatusOffer,
		ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return st, true
	}
	return "", false
}

// IsCanonicalTransition reports whether from → to follows the expected graph.
func IsCanonicalTransition(from, to ApplicationStatus) bool {
	for _, allowed := range canonicalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// OfferDetails captures the user's notes about an offer.
type OfferDetails struct {
	Salary    string `json:"salary,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Application is a user's self-reported application to a job.
type Application struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	JobID         string            `json:"job_id"`
	Status        ApplicationStatus `json:"status"`
	AppliedAt     time.Time         `json:"applied_at"`
	Notes         string            `json:"notes,omitempty"`
	InterviewDate *time.Time        `json:"interview_date,omitempty"`
	OfferDetails  *OfferDetails     `json:"offer_details,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	ListByUser(ctx context.Context, userID string) ([]Application, error)
	Exists(ctx context.Context, userID, jobID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status ApplicationStatus) error
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, userID, jobID, notes string) (*Application, error)
	UpdateStatus(ctx context.Context, userID, id string, status ApplicationStatus) error
	List(ctx context.Context, userID string) ([]Application, error)
}
