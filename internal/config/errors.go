package config

import "github.com/focuslog/focuslog/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid %s duration: %v",
	}

	errShortBreakTooLong = &apperr.Error{
		Message: "short break duration (%v) must be less than focus duration (%v)",
	}

	errLongBreakTooShort = &apperr.Error{
		Message: "long break duration (%v) must be greater than short break duration (%v)",
	}

	errInvalidColor = &apperr.Error{
		Message: "%s color must be a valid hex color code (e.g. #FF0000), got %s",
	}

	errEmptyMsg = &apperr.Error{
		Message: "%s message cannot be empty",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s duration must be between %v and %v",
	}

	errInvalidCustomRange = &apperr.Error{
		Message: "custom duration range %v-%v must lie within %v-%v",
	}

	errInvalidCustomStep = &apperr.Error{
		Message: "custom step (%v) must be positive and no longer than the range",
	}

	errInvalidTickInterval = &apperr.Error{
		Message: "tick interval must be between %v and %v",
	}

	errInvalidAnomalyThreshold = &apperr.Error{
		Message: "anomaly threshold (%v) must be greater than the tick interval (%v)",
	}

	errEmptyProfile = &apperr.Error{
		Message: "profile user_id cannot be empty",
	}
)
