package model

// Occurrence is a single textual match of a qualified variant reference
// outside its definition site. Paths are relative to the repository root.
type Occurrence struct {
	Path     Path   `json:"path" yaml:"path"`
	Line     int    `json:"line" yaml:"line"`
	LineText string `json:"line_text" yaml:"line_text"`
}

// UsageRecord collects the occurrences for one (type, variant) pair. The
// usage report holds exactly one record per pair in inventory order. An
// empty Occurrences list is a valid terminal state: the variant is never
// referenced outside its declaring file.
type UsageRecord struct {
	Domain      string       `json:"domain" yaml:"domain"`
	EventType   string       `json:"event_type" yaml:"event_type"`
	Variant     string       `json:"variant" yaml:"variant"`
	Occurrences []Occurrence `json:"occurrences" yaml:"occurrences"`
}

// Dead reports whether the variant has no usage outside its definition site.
func (r UsageRecord) Dead() bool {
	return len(r.Occurrences) == 0
}
