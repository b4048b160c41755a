package logging

// Standardized field names for structured logging.
const (
	FieldSource   = "source"
	FieldOutput   = "output"
	FieldScratch  = "scratch_dir"
	FieldTool     = "tool"
	FieldCommand  = "command"
	FieldExitCode = "exit_code"
	FieldStderr   = "stderr"
	FieldDuration = "duration"
	FieldWorker   = "worker"
)

// Log formats accepted by NewLogrusAdapter.
const (
	FormatText = "text"
	FormatJSON = "json"
)
