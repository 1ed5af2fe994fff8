package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/yungbote/quizmind-backend/internal/platform/apierr"
)

var (
	ErrDuplicateUser      = apierr.Conflict("duplicate_user", errors.New("username or email already registered"))
	ErrInvalidCredentials = apierr.New(http.StatusUnauthorized, "invalid_credentials", errors.New("invalid username or password"))
	ErrUnauthorized       = apierr.New(http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid token"))
	ErrQuizNotFound       = apierr.NotFound("quiz_not_found", errors.New("quiz not found"))
	ErrQuestionNotFound   = apierr.NotFound("question_not_found", errors.New("question not found"))
	ErrAlreadyFinalized   = apierr.Conflict("already_finalized", errors.New("quiz already finalized"))
	ErrRateLimited        = apierr.New(http.StatusTooManyRequests, "rate_limited", errors.New("too many quiz generations, try again later"))
)

func invalidArgument(format string, args ...any) error {
	return apierr.BadRequest("invalid_argument", fmt.Errorf(format, args...))
}

type GenerationErrorKind string

const (
	GenerationUpstream  GenerationErrorKind = "upstream"
	GenerationTimeout   GenerationErrorKind = "timeout"
	GenerationMalformed GenerationErrorKind = "malformed_payload"
)

// GenerationError is the failure side of a quiz generation. No drafts accompany it.
type GenerationError struct {
	Kind GenerationErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return "quiz generation failed: " + string(e.Kind)
	}
	return fmt.Sprintf("quiz generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// AsGenerationError returns the first *GenerationError in err's chain.
func AsGenerationError(err error) (*GenerationError, bool) {
	var ge *GenerationError
	if errors.As(err, &ge) && ge != nil {
		return ge, true
	}
	return nil, false
}
