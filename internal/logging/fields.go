package logging

// Field names shared by every log call site.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	FieldMaxDepth     = "max_depth"
	FieldMatchTimeout = "match_timeout"
	FieldJobs         = "jobs"
	FieldDryRun       = "dry_run"
	FieldFormat       = "format"

	FieldKind     = "kind"
	FieldSpans    = "spans"
	FieldTemplate = "template"
	FieldEdits    = "edits"

	FieldFilesProcessed = "files_processed"
	FieldFilesModified  = "files_modified"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
