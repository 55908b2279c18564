package models

// VersionResponse is the body of GET /version. It reports the running
// application version so clients can detect a server upgrade.
type VersionResponse struct {
	Version string `json:"version"`
}
