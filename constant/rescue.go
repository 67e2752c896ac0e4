package constant

type contextKey int

const (
	ActorIDKey contextKey = iota
	ActorRoleKey
)

// Collections known to the remote store.
const (
	CollectionUsers          = "users"
	CollectionSearchEvents   = "search_events"
	CollectionMissingPersons = "missing_persons"
	CollectionHelpContent    = "help_content"
	CollectionMarkers        = "markers"
)

const (
	RoleSearcher    = "searcher"
	RoleCoordinator = "coordinator"
)

// AccountRoles is the set accepted on account forms. Anything else is
// rejected before the gateway is contacted.
var AccountRoles = map[string]bool{
	RoleSearcher:    true,
	RoleCoordinator: true,
}

const EventStatusActive = "active"

// Locales supported by help content and the display-locale preference.
var Locales = []string{"hu", "en", "sk", "ro", "pl"}

func ValidLocale(tag string) bool {
	for _, l := range Locales {
		if l == tag {
			return true
		}
	}
	return false
}

// DefaultLocale is the fallback when no preference has been persisted.
const DefaultLocale = "hu"

// LocalePrefKey is the single key the display locale is persisted under.
const LocalePrefKey = "display_locale"
