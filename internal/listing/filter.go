package listing

import "time"

// FilterActive keeps contests whose end time is strictly after now.
// The clock reading is sampled once by the caller so a filtering pass
// is deterministic for a given now.
func FilterActive(contests []Contest, now time.Time) []Contest {
	active := make([]Contest, 0, len(contests))
	for _, c := range contests {
		if c.Active(now) {
			active = append(active, c)
		}
	}
	return active
}

// FilterEligible keeps contests that are active and publicly
// accessible. Private contests need credentials the harvester does not
// hold, so the strict mode skips them up front instead of failing at
// acquisition.
func FilterEligible(contests []Contest, now time.Time) []Contest {
	eligible := make([]Contest, 0, len(contests))
	for _, c := range contests {
		if c.Active(now) && c.CodeAccess() == "public" {
			eligible = append(eligible, c)
		}
	}
	return eligible
}
