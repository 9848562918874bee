package constants

// Reserve stats over a half-open [start, end) window
const (
	CountSightingsBetween = `
	SELECT COUNT(*) FROM sightings WHERE observed_at >= $1 AND observed_at < $2
	`

	CountUrgentSightingsBetween = `
	SELECT COUNT(*) FROM sightings WHERE status = 'urgent' AND observed_at >= $1 AND observed_at < $2
	`

	CountActiveGuidesBetween = `
	SELECT COUNT(*) FROM (
		SELECT DISTINCT reporter_first_name, reporter_last_name
		FROM sightings WHERE observed_at >= $1 AND observed_at < $2
	) AS guides
	`

	CountSpeciesBetween = `
	SELECT COUNT(DISTINCT LOWER(species)) FROM sightings WHERE observed_at >= $1 AND observed_at < $2
	`

	PingQuery = `SELECT 1`
)

// Per-guide figures; $1 and $2 are the first and last name, compared
// case-insensitively
const (
	CountReporterSightings = `
	SELECT COUNT(*) FROM sightings
	WHERE LOWER(reporter_first_name) = LOWER($1) AND LOWER(reporter_last_name) = LOWER($2)
	`

	CountReporterSpecies = `
	SELECT COUNT(DISTINCT LOWER(species)) FROM sightings
	WHERE LOWER(reporter_first_name) = LOWER($1) AND LOWER(reporter_last_name) = LOWER($2)
	`

	CountReporterUrgent = `
	SELECT COUNT(*) FROM sightings
	WHERE LOWER(reporter_first_name) = LOWER($1) AND LOWER(reporter_last_name) = LOWER($2)
	AND status = 'urgent'
	`

	CountReporterSightingsBetween = `
	SELECT COUNT(*) FROM sightings
	WHERE LOWER(reporter_first_name) = LOWER($1) AND LOWER(reporter_last_name) = LOWER($2)
	AND observed_at >= $3 AND observed_at < $4
	`

	SelectRecentReporterSightings = `
	SELECT id, species, reporter_first_name, reporter_last_name, notes, status,
		location_description, latitude, longitude, observed_at
	FROM sightings
	WHERE LOWER(reporter_first_name) = LOWER($1) AND LOWER(reporter_last_name) = LOWER($2)
	ORDER BY observed_at DESC
	LIMIT $3
	`
)
