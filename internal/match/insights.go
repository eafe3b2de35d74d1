package match

import (
	"strings"

	"internmatch-backend/internal/domain"
)

// Insights derives short human-readable strings, one per matched signal, in
// check order. The full list is returned; display layers typically keep the
// first two. A nil prefs yields an empty list.
func Insights(job domain.Job, prefs *domain.UserPreferences) []string {
	insights := []string{}

	if prefs == nil {
		return insights
	}

	if prefs.RemoteOnly != nil && *prefs.RemoteOnly && job.Remote {
		insights = append(insights, "Matches remote preference")
	}

	if prefs.VisaSponsorshipRequired != nil && *prefs.VisaSponsorshipRequired && job.SponsorsVisa {
		insights = append(insights, "Offers visa sponsorship")
	}

	if len(prefs.PreferredLocations) > 0 {
		jobLocation := strings.ToLower(job.Location)
		for _, loc := range prefs.PreferredLocations {
			if strings.Contains(jobLocation, strings.ToLower(loc)) {
				insights = append(insights, "Matches location preference")
				break
			}
		}
	}

	if len(prefs.Skills) > 0 && job.Requirements != "" {
		jobReq := strings.ToLower(job.Requirements)
		var matching []string
		for _, skill := range prefs.Skills {
			if strings.Contains(jobReq, strings.ToLower(skill)) {
				matching = append(matching, skill)
			}
		}
		if len(matching) > 0 {
			if len(matching) > 2 {
				matching = matching[:2]
			}
			insights = append(insights, "Requires your skills: "+strings.Join(matching, ", "))
		}
	}

	if prefs.StudentStatus != nil && *prefs.StudentStatus == domain.StudentInternational && job.SponsorsVisa {
		insights = append(insights, "Perfect for international students")
	}

	return insights
}
