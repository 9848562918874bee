package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixReserveStats CachePrefix = "RESERVE_STATS_"
)

// Sighting status values
const (
	StatusNormal = "normal"
	StatusUrgent = "urgent"
)

// SpeciesFilterAll is the species filter sentinel matching every record
const SpeciesFilterAll = "all"

// SightingsTable is the remote table holding sighting records
const SightingsTable = "sightings"

// Reserve the client reports from. Submissions carry these fixed values
// until device geolocation is captured.
const (
	ReserveName      = "Maasai Mara National Reserve"
	ReserveShortName = "Maasai Mara"
	ReserveLatitude  = -1.2921
	ReserveLongitude = 34.7516
	ReserveMapZoom   = 12
)

// HomeFeedLimit is how many recent sightings the home screen shows
const HomeFeedLimit = 3

// ProfileRecentLimit is how many of a guide's own reports the profile lists
const ProfileRecentLimit = 5

// PopularSpecies is the quick-pick list on the report form
var PopularSpecies = []string{
	"Lion", "Leopard", "Elephant", "Buffalo", "Rhino",
	"Cheetah", "Zebra", "Giraffe", "Hippo", "Wildebeest",
}

// Alert stream and topic names
const (
	UrgentAlertStream    = "urgent_sighting_alerts"
	UrgentAlertGroup     = "urgent_alert_workers"
	UrgentAlertMQTTTopic = "safaritracker/alerts/urgent"
)
