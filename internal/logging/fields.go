package logging

// Structured log keys. Every log call names its fields through these so the
// same value is spelled the same way across commands.
const (
	FieldError      = "error"
	FieldReason     = "reason"
	FieldCount      = "count"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldLine       = "line"
	FieldColumn     = "column"

	FieldConfig = "config"
	FieldFormat = "format"
	FieldJobs   = "jobs"

	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesSkipped     = "files_skipped"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"

	FieldRule        = "rule"
	FieldSeverity    = "severity"
	FieldDescription = "description"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
