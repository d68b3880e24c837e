package employeeerrors

import (
	"net/http"

	"go-hrsuit/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrDuplicateAccount = apperror.New(
		apperror.CodeDuplicateAccount,
		"employee already exists for this user account",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrImageTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"Profile image must be smaller than 2MB",
		http.StatusBadRequest,
	)
	ErrInvalidImage = apperror.New(
		apperror.CodeInvalidInput,
		"Profile image must be a JPEG, PNG or GIF file",
		http.StatusBadRequest,
	)
)
