package types

// RunSummary records what a single aggregation run did. It is printed in verbose
// mode and returned to callers of the pipeline.
type RunSummary struct {
	RunID string `json:"run_id"`

	StubsLoaded int `json:"stubs_loaded"`
	LocalStubs  int `json:"local_stubs"`
	RemoteStubs int `json:"remote_stubs"`

	BiosFailed     int      `json:"bios_failed"`
	BiosMerged     int      `json:"bios_merged"`
	BiosUnmatched  int      `json:"bios_unmatched"`
	UnmatchedHosts []string `json:"unmatched_hosts,omitempty"`

	ProfileFile    string `json:"profile_file,omitempty"`
	ProfileWritten bool   `json:"profile_written"`

	ShowcaseURLs    int    `json:"showcase_urls"`
	ListingsFetched int    `json:"listings_fetched"`
	ListingsReused  int    `json:"listings_reused"`
	CardsWritten    int    `json:"cards_written"`
	CardsMissed     int    `json:"cards_missed"`
	PagesFailed     int    `json:"pages_failed"`
	ShowcaseFile    string `json:"showcase_file,omitempty"`
	ShowcaseWritten bool   `json:"showcase_written"`
}
