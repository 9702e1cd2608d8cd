package contract

type PlanErrorCode string

const (
	ErrInvalidDuration PlanErrorCode = "INVALID_DURATION"
	ErrInvalidDay      PlanErrorCode = "INVALID_DAY"
	ErrEmptyPlan       PlanErrorCode = "EMPTY_PLAN"
	ErrStoreFailure    PlanErrorCode = "STORE_FAILURE"
	ErrInternalError   PlanErrorCode = "INTERNAL_ERROR"
)

type PlanError struct {
	Code    PlanErrorCode
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
