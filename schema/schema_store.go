package schema

// ReferenceDBStatus describes a reference table database.
type ReferenceDBStatus struct {
	Backend   DatabaseBackend `json:"backend"`
	Connected bool            `json:"connected"`
	Version   uint            `json:"version"`
	Dirty     bool            `json:"dirty"`
	TotalRows int             `json:"totalRows"`
	Tables    map[string]int  `json:"tables"` // rows per table key, e.g. height_cdc_male
	Sources   []string        `json:"sources,omitempty"`
}
