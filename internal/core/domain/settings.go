package domain

// SourceSettings locates the backing tabular source.
type SourceSettings struct {
	// Path is the CSV, XLSX or SQLite file holding applicant records.
	Path string `validate:"required"`

	// Watch enables warnings when the file is changed by another program.
	Watch bool
}

// ReviewSettings controls the applicant list.
type ReviewSettings struct {
	// PageSize is the number of applicants per page.
	PageSize int `validate:"min=1,max=500"`

	// IncludeApproved is the initial state of the approved filter.
	IncludeApproved bool
}

// ServerSettings controls the HTTP API.
type ServerSettings struct {
	// Addr is the listen address of `reviewdesk serve`.
	Addr string `validate:"required"`
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Source holds backing source settings.
	Source SourceSettings

	// Review holds list settings.
	Review ReviewSettings

	// Server holds HTTP API settings.
	Server ServerSettings
}

// DefaultSourcePath is used when no source has been configured.
const DefaultSourcePath = "applicant_data.xlsx"

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Source: SourceSettings{
			Path:  DefaultSourcePath,
			Watch: true,
		},
		Review: ReviewSettings{
			PageSize:        DefaultPageSize,
			IncludeApproved: true,
		},
		Server: ServerSettings{
			Addr: ":8080",
		},
	}
}
