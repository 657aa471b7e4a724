package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs is the static job table merged with the cron registry at start.
// The session sweep job self-registers from the session manager wiring in
// storefront.go, so this table only carries config-declared jobs.
var CronJobs = map[string]CronJob{
	// Add more jobs here
}
