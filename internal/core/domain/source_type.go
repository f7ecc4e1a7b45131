package domain

// SourceType identifies an ingestion source implementation.
type SourceType string

// Available source types.
const (
	// SourceTypeFilesystem ingests files from a local directory tree.
	SourceTypeFilesystem SourceType = "filesystem"

	// SourceTypeGitHub ingests issues and pull requests from a repository.
	SourceTypeGitHub SourceType = "github"

	// SourceTypeGoogleDrive ingests text files from a Drive folder.
	SourceTypeGoogleDrive SourceType = "gdrive"
)

// IsValid returns true if the source type is recognised.
func (t SourceType) IsValid() bool {
	switch t {
	case SourceTypeFilesystem, SourceTypeGitHub, SourceTypeGoogleDrive:
		return true
	default:
		return false
	}
}

// RequiresToken returns true if the source needs an access token.
func (t SourceType) RequiresToken() bool {
	return t == SourceTypeGoogleDrive
}

// String returns the string representation.
func (t SourceType) String() string {
	return string(t)
}

// Description returns a human-readable description of the source type.
func (t SourceType) Description() string {
	switch t {
	case SourceTypeFilesystem:
		return "Filesystem (local directory)"
	case SourceTypeGitHub:
		return "GitHub (issues and pull requests)"
	case SourceTypeGoogleDrive:
		return "Google Drive (text files in a folder)"
	default:
		return unknownDescription
	}
}

// AllSourceTypes returns all available source types.
func AllSourceTypes() []SourceType {
	return []SourceType{
		SourceTypeFilesystem,
		SourceTypeGitHub,
		SourceTypeGoogleDrive,
	}
}
