package settings

// Configuration keys. Each maps to a REEL_* environment variable with
// dots replaced by underscores.
const (
	LogsLevel = "logs.level"
	LogsJSON  = "logs.json"
	LogsFile  = "logs.file"

	CliColored = "cli.colored"

	PlayStepFPS   = "play.step_fps"
	PlayTargetFPS = "play.target_fps"
	PlaySeekStep  = "play.seek_step"

	ServeAddress = "serve.address"
)
