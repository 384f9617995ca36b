package domain

// TimeRange is a named, inclusive minute bucket used to filter cards by duration.
type TimeRange struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

// TimeRanges is the canonical bucket set, in display order.
var TimeRanges = []TimeRange{
	{ID: "up-to-2", Label: "до 2 минут", Min: 0, Max: 2},
	{ID: "3-5", Label: "3-5 минут", Min: 3, Max: 5},
	{ID: "5-10", Label: "5-10 минут", Min: 5, Max: 10},
	{ID: "15-20", Label: "15-20 минут", Min: 15, Max: 20},
	{ID: "25-30", Label: "25-30 минут", Min: 25, Max: 30},
	{ID: "full-lesson", Label: "весь урок", Min: 40, Max: 50},
}

// deprecatedTimeRanges belong to an older, denser bucket scheme.
// They are rejected instead of being silently reinterpreted.
var deprecatedTimeRanges = map[string]struct{}{
	"1-5":   {},
	"6-10":  {},
	"11-15": {},
	"16-20": {},
	"21+":   {},
}

// LookupTimeRange returns the bucket named id. Unknown names report false.
func LookupTimeRange(id string) (TimeRange, bool) {
	for _, tr := range TimeRanges {
		if tr.ID == id {
			return tr, true
		}
	}
	return TimeRange{}, false
}

// IsDeprecatedTimeRange reports whether id names a bucket from the retired scheme.
func IsDeprecatedTimeRange(id string) bool {
	_, ok := deprecatedTimeRanges[id]
	return ok
}
