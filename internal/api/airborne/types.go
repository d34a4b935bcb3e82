package airborne

import (
	"encoding/json"
	"time"
)

// ListMeta is the paging envelope used by the list endpoints.
type ListMeta struct {
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
}

// Access lists the permissions a user holds on an organisation or application.
type Access []string

// Application belongs to an organisation.
type Application struct {
	Application  string `json:"application"`
	Organisation string `json:"organisation"`
	Access       Access `json:"access,omitempty"`
}

// Organisation groups applications.
type Organisation struct {
	Name         string        `json:"name"`
	Applications []Application `json:"applications"`
	Access       Access        `json:"access,omitempty"`
}

// DimensionType is standard or cohort.
type DimensionType string

const (
	DimensionStandard DimensionType = "standard"
	DimensionCohort   DimensionType = "cohort"
)

// Dimension is a targeting axis. Position is its priority; lower wins.
type Dimension struct {
	Dimension     string          `json:"dimension"`
	Description   json.RawMessage `json:"description,omitempty"`
	Position      int             `json:"position"`
	Schema        json.RawMessage `json:"schema,omitempty"`
	ChangeReason  string          `json:"change_reason"`
	Mandatory     *bool           `json:"mandatory,omitempty"`
	DimensionType DimensionType   `json:"dimension_type,omitempty"`
	DependsOn     string          `json:"depends_on,omitempty"`
}

// DescriptionText returns the description as plain text whether the server
// sent a JSON string or a document.
func (d Dimension) DescriptionText() string {
	if len(d.Description) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(d.Description, &s); err == nil {
		return s
	}
	return string(d.Description)
}

// DimensionList is a page of dimensions.
type DimensionList struct {
	Data []Dimension `json:"data"`
	ListMeta
}

// ReleaseViewDimension is one key=value filter in a release view.
type ReleaseViewDimension struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// ReleaseView is a saved dimension filter.
type ReleaseView struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Dimensions []ReleaseViewDimension `json:"dimensions"`
	CreatedAt  *time.Time             `json:"created_at,omitempty"`
	UpdatedAt  *time.Time             `json:"updated_at,omitempty"`
}

// ReleaseViewList is a page of release views.
type ReleaseViewList struct {
	Data []ReleaseView `json:"data"`
	ListMeta
}

// File is a file record known to the server.
type File struct {
	ID        string         `json:"id"`
	FilePath  string         `json:"file_path"`
	URL       string         `json:"url"`
	Version   int            `json:"version"`
	Tag       string         `json:"tag,omitempty"`
	Size      int64          `json:"size"`
	Checksum  string         `json:"checksum"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Status    string         `json:"status"`
	CreatedAt string         `json:"created_at"`
}

// FileList is a page of files.
type FileList struct {
	Organisation string `json:"organisation"`
	Application  string `json:"application"`
	Files        []File `json:"files"`
	Total        int64  `json:"total"`
	Page         int64  `json:"page"`
	PerPage      int64  `json:"per_page"`
}

// Package is a versioned set of files with an index.
type Package struct {
	Tag     string   `json:"tag,omitempty"`
	Version int      `json:"version"`
	Index   string   `json:"index"`
	Files   []string `json:"files"`
}

// PackageList is a page of packages.
type PackageList struct {
	Data []Package `json:"data"`
	ListMeta
}

// ServeFile is a file reference inside a served package.
type ServeFile struct {
	FilePath string `json:"file_path"`
	URL      string `json:"url"`
	Checksum string `json:"checksum"`
}

// ServePackage is the package section of a release.
type ServePackage struct {
	Name       string         `json:"name"`
	Version    string         `json:"version"`
	GroupID    string         `json:"group_id,omitempty"`
	Index      ServeFile      `json:"index"`
	Properties map[string]any `json:"properties,omitempty"`
	Important  []ServeFile    `json:"important"`
	Lazy       []ServeFile    `json:"lazy"`
}

// ReleaseConfig is the config section of a release.
type ReleaseConfig struct {
	Version              string         `json:"version"`
	ReleaseConfigTimeout int            `json:"release_config_timeout"`
	BootTimeout          int            `json:"boot_timeout"`
	Properties           map[string]any `json:"properties,omitempty"`
}

// ReleaseExperiment describes the experiment backing a release.
type ReleaseExperiment struct {
	ExperimentID      string `json:"experiment_id"`
	PackageVersion    int    `json:"package_version"`
	ConfigVersion     string `json:"config_version"`
	CreatedAt         string `json:"created_at"`
	TrafficPercentage int    `json:"traffic_percentage"`
	Status            string `json:"status"`
}

// Release is a release as returned by create/get/list.
type Release struct {
	ID         string             `json:"id"`
	CreatedAt  string             `json:"created_at"`
	Config     ReleaseConfig      `json:"config"`
	Package    ServePackage       `json:"package"`
	Resources  []ServeFile        `json:"resources"`
	Experiment *ReleaseExperiment `json:"experiment,omitempty"`
	Dimensions map[string]any     `json:"dimensions,omitempty"`
}

// ReleaseList is a page of releases.
type ReleaseList struct {
	Data []Release `json:"data"`
	ListMeta
}

// ServedRelease is the public payload fetched by devices.
type ServedRelease struct {
	Version   string        `json:"version,omitempty"`
	Config    ReleaseConfig `json:"config"`
	Package   ServePackage  `json:"package"`
	Resources []ServeFile   `json:"resources"`
}

// ReleaseStatus filters release listings.
type ReleaseStatus string

const (
	StatusCreated    ReleaseStatus = "created"
	StatusInProgress ReleaseStatus = "inprogress"
	StatusConcluded  ReleaseStatus = "concluded"
	StatusDiscarded  ReleaseStatus = "discarded"
)

// Valid reports whether s is a known status.
func (s ReleaseStatus) Valid() bool {
	switch s {
	case StatusCreated, StatusInProgress, StatusConcluded, StatusDiscarded:
		return true
	}
	return false
}

// ExperimentActionResponse is returned by ramp, conclude and discard.
type ExperimentActionResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	ExperimentID      string `json:"experiment_id"`
	TrafficPercentage *int   `json:"traffic_percentage,omitempty"`
	ChosenVariant     string `json:"chosen_variant,omitempty"`
}

// UserToken is an issued access token.
type UserToken struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	ExpiresIn        int64  `json:"expires_in"`
	RefreshToken     string `json:"refresh_token"`
	RefreshExpiresIn int64  `json:"refresh_expires_in"`
}

// User is the authenticated principal.
type User struct {
	UserID        string         `json:"user_id"`
	Organisations []Organisation `json:"organisations"`
	UserToken     *UserToken     `json:"user_token,omitempty"`
}

// OrganisationRequestResponse acknowledges an organisation request.
type OrganisationRequestResponse struct {
	OrganisationName string `json:"organisation_name"`
	Message          string `json:"message"`
}
