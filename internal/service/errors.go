package service

import (
	"errors"
	"fmt"

	"clubhub/internal/apperrors"
	"clubhub/internal/models"
)

func memberNotInRosterError(username string, group models.Group) *apperrors.AppError {
	return apperrors.New(apperrors.CodeValidation,
		fmt.Sprintf("%q is not on the %s roster", username, group))
}

func emptyFieldError(field string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeValidation, fmt.Sprintf("%s is required", field))
}

func sessionNotFoundError(sessionID string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeNotFound,
		fmt.Sprintf("session %q not found", sessionID))
}

// asAppError passes AppErrors through and wraps anything else as a
// persistence failure.
func asAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(err, apperrors.CodePersistence, "storage operation failed")
}
