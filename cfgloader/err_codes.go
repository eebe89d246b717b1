package cfgloader

// Error codes for config loading.
const (
	// CodeFileNotFound is returned when the config file does not exist.
	CodeFileNotFound = "CONFIG_FILE_NOT_FOUND"

	// CodeInvalidYAML is returned when the config file cannot be unmarshalled.
	CodeInvalidYAML = "CONFIG_INVALID_YAML"

	// CodeValidationFailed is returned when validate tags reject the loaded values.
	CodeValidationFailed = "CONFIG_VALIDATION_FAILED"

	// CodeInvalidTarget is returned when the config type parameter is a pointer.
	CodeInvalidTarget = "CONFIG_INVALID_TARGET"
)
