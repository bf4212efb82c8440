package shell

import (
	"strconv"
)

// Metric names emitted by the retry helper and handler instrumentation.
const (
	CommandHandlerRetriesMetric           = "commandhandler_retries_total"
	CommandHandlerRetryDelayMetric        = "commandhandler_retry_delay_seconds"
	CommandHandlerMaxRetriesReachedMetric = "commandhandler_max_retries_reached_total"
	CommandHandlerDurationMetric          = "commandhandler_duration_seconds"
)

// Shared label keys.
const (
	LabelCommandType    = "command_type"
	LabelAttemptNumber  = "attempt_number"
	LabelErrorType      = "error_type"
	LabelFinalErrorType = "final_error_type"
)

// BuildRetryLabels creates the label set for retry attempt metrics.
func BuildRetryLabels(commandType string, attempt int, errorType string) map[string]string {
	return map[string]string{
		LabelCommandType:   commandType,
		LabelAttemptNumber: strconv.Itoa(attempt),
		LabelErrorType:     errorType,
	}
}
