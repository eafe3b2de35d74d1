// Package match computes job/preference compatibility. Score and Insights
// are pure functions over well-typed inputs: they never fail, and a category
// whose preference field is unset is excluded from scoring entirely rather
// than counted against the job.
package match

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"internmatch-backend/internal/domain"
)

// Per-category bonus ceilings. The sum (23) intentionally exceeds the final
// cap of 20: scores stay comparable across differently-specified preference
// sets at the cost of diminishing marginal weight per category.
const (
	weightRemote         = 3
	weightVisa           = 3
	weightLocation       = 4
	weightSalary         = 2
	weightJobType        = 3
	weightSkills         = 4
	weightExperience     = 2
	weightOtherRelevance = 2

	baseScore = 80
	maxScore  = 100
	bonusCap  = 20
)

var salaryDigits = regexp.MustCompile(`\d+`)

// Score returns an integer compatibility score in [80, 100] for one job
// against one preference set. A nil prefs yields the neutral floor of 80:
// no information is not a penalty.
func Score(job domain.Job, prefs *domain.UserPreferences) int {
	if prefs == nil {
		return baseScore
	}

	var bonusPoints, maxBonus float64

	// Remote preference match
	if prefs.RemoteOnly != nil {
		maxBonus += weightRemote
		switch {
		case *prefs.RemoteOnly && job.Remote:
			bonusPoints += weightRemote
		case !*prefs.RemoteOnly && !job.Remote:
			bonusPoints += weightRemote
		case !*prefs.RemoteOnly && job.Remote:
			bonusPoints += 1 // remote job, onsite preferred
		}
	}

	// Visa sponsorship match
	if prefs.VisaSponsorshipRequired != nil {
		maxBonus += weightVisa
		switch {
		case *prefs.VisaSponsorshipRequired && job.SponsorsVisa:
			bonusPoints += weightVisa
		case !*prefs.VisaSponsorshipRequired:
			bonusPoints += 2 // not required, so any job is fine
		default:
			bonusPoints += 0.5 // required but not available
		}
	}

	// Location preference match
	if len(prefs.PreferredLocations) > 0 {
		maxBonus += weightLocation
		jobLocation := strings.ToLower(job.Location)
		matched := false
		for _, loc := range prefs.PreferredLocations {
			if strings.Contains(jobLocation, strings.ToLower(loc)) {
				matched = true
				break
			}
		}
		if matched {
			bonusPoints += weightLocation
		} else {
			bonusPoints += 1
		}
	}

	// Salary range match
	if prefs.SalaryRange != nil {
		maxBonus += weightSalary
		bonusPoints += salaryBonus(job.Salary, prefs.SalaryRange)
	}

	// Job type match
	if len(prefs.JobTypes) > 0 {
		maxBonus += weightJobType
		titleLower := strings.ToLower(job.Title)
		descLower := strings.ToLower(job.Description)
		matched := false
		for _, t := range prefs.JobTypes {
			tLower := strings.ToLower(t)
			if strings.Contains(titleLower, tLower) || strings.Contains(descLower, tLower) || t == job.JobType {
				matched = true
				break
			}
		}
		if matched {
			bonusPoints += weightJobType
		} else {
			bonusPoints += 0.5
		}
	}

	// Skills match, linearly scaled by the matched fraction
	if len(prefs.Skills) > 0 {
		maxBonus += weightSkills
		jobText := strings.ToLower(job.Title + " " + job.Description + " " + job.Requirements)
		matched := 0
		for _, skill := range prefs.Skills {
			if strings.Contains(jobText, strings.ToLower(skill)) {
				matched++
			}
		}
		bonusPoints += weightSkills * float64(matched) / float64(len(prefs.Skills))
	}

	// Experience level match. "Detailed requirements" (long requirements text
	// or an explicit responsibilities list) is the proxy for seniority.
	if prefs.ExperienceLevel != nil {
		maxBonus += weightExperience
		hasDetailedRequirements := len(job.Requirements) > 100
		hasResponsibilities := len(job.Responsibilities) > 0

		switch *prefs.ExperienceLevel {
		case domain.ExperienceNone, domain.ExperienceSome:
			if !hasDetailedRequirements {
				bonusPoints += weightExperience
			} else {
				bonusPoints += 1
			}
		case domain.ExperienceModerate, domain.ExperienceFull:
			if hasDetailedRequirements || hasResponsibilities {
				bonusPoints += weightExperience
			} else {
				bonusPoints += 1
			}
		default:
			bonusPoints += 1
		}
	}

	// Other relevance tags, linearly scaled by the matched fraction
	if len(prefs.OtherRelevance) > 0 {
		maxBonus += weightOtherRelevance
		jobText := strings.ToLower(job.Title + " " + job.Description + " " + job.Company)
		matched := 0
		for _, item := range prefs.OtherRelevance {
			itemLower := strings.ToLower(item)
			if strings.Contains(itemLower, "startup") {
				if job.Source == "startup" || strings.Contains(jobText, "startup") {
					matched++
				}
			} else if strings.Contains(jobText, itemLower) {
				matched++
			}
		}
		bonusPoints += weightOtherRelevance * float64(matched) / float64(len(prefs.OtherRelevance))
	}

	// The accumulated maxBonus can reach 23; the cap stays fixed at 20 so a
	// user with many stated preferences is not graded on a different scale.
	if bonusPoints > maxBonus {
		bonusPoints = maxBonus
	}

	finalScore := baseScore + int(math.Min(math.Round(bonusPoints), bonusCap))
	if finalScore < baseScore {
		return baseScore
	}
	if finalScore > maxScore {
		return maxScore
	}
	return finalScore
}

// salaryBonus grades the job's free-text salary against the preferred range.
// The first run of digits is taken as the figure; unparseable text degrades
// to a small neutral contribution, never an error.
func salaryBonus(salaryText string, r *domain.SalaryRange) float64 {
	digits := salaryDigits.FindString(salaryText)
	if digits == "" {
		return 0.5 // no salary info
	}
	salary, err := strconv.Atoi(digits)
	if err != nil {
		return 0.5
	}
	switch {
	case r.Min != nil && r.Max != nil && salary >= *r.Min && salary <= *r.Max:
		return 2
	case r.Min != nil && salary >= *r.Min:
		return 1.5
	case r.Max != nil && salary <= *r.Max:
		return 1.5
	default:
		return 0.3
	}
}
