package source

// Format identifies an entry log encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
)

// DiscoveredFile is an entry log found during directory scanning.
type DiscoveredFile struct {
	Path   string
	Format Format
}

// Column aliases, keyed by canonical field. The first alias present in a
// header wins. Older exports use units_completed/feeling/source_id and
// similar names for the same data.
var columnAliases = map[string][]string{
	"id":         {"id", "entry_id"},
	"date":       {"date", "day", "logged_on"},
	"title":      {"title", "task_description", "task_name", "task"},
	"amount":     {"amount", "units", "units_completed", "task_count", "earned"},
	"progress":   {"progress", "progress_percent"},
	"mood":       {"mood", "feeling", "mood_score"},
	"goal":       {"goal", "goal_id"},
	"source":     {"source_id", "income_id"}, // legacy income source id
	"note":       {"note", "reason", "skip_reason", "notes"},
	"created_at": {"created_at", "timestamp"},
}
