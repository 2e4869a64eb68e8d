package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime"

	"github.com/MixinNetwork/homes.one/config"
	"github.com/bugsnag/bugsnag-go"
)

const (
	CodeServer                = 500
	CodeTransaction           = 10001
	CodeBadData               = 10002
	CodePropertyNotFound      = 20101
	CodeSavedPropertyNotFound = 20102
	CodeSavedPropertyConflict = 20103
	CodeListingLoadFailure    = 20104
	CodeListingNotReady       = 20105
	CodeListingNotFound       = 20106
)

type Error struct {
	Status      int    `json:"status"`
	Code        int    `json:"code"`
	Description string `json:"description"`
	trace       string
}

func (sessionError Error) Error() string {
	str, err := json.Marshal(sessionError)
	if err != nil {
		log.Panicln(err)
	}
	return string(str)
}

func ParseError(err string) (Error, bool) {
	var sessionErr Error
	json.Unmarshal([]byte(err), &sessionErr)
	return sessionErr, sessionErr.Code > 0 && sessionErr.Description != ""
}

// HasCode reports whether err, or an error it wraps, is a session error
// with the given code.
func HasCode(err error, code int) bool {
	var sessionErr Error
	if errors.As(err, &sessionErr) {
		return sessionErr.Code == code
	}
	return false
}

func BadRequestError(ctx context.Context) Error {
	description := "The request body can’t be parsed as valid data."
	return createError(ctx, http.StatusAccepted, http.StatusBadRequest, description, nil)
}

func NotFoundError(ctx context.Context) Error {
	description := "The endpoint is not found."
	return createError(ctx, http.StatusAccepted, http.StatusNotFound, description, nil)
}

func TooManyRequestsError(ctx context.Context) Error {
	description := http.StatusText(http.StatusTooManyRequests)
	return createError(ctx, http.StatusAccepted, http.StatusTooManyRequests, description, nil)
}

func ServerError(ctx context.Context, err error) Error {
	description := http.StatusText(http.StatusInternalServerError)
	return createError(ctx, http.StatusInternalServerError, CodeServer, description, err)
}

func TransactionError(ctx context.Context, err error) Error {
	description := http.StatusText(http.StatusInternalServerError)
	return createError(ctx, http.StatusInternalServerError, CodeTransaction, description, err)
}

func BadDataError(ctx context.Context) Error {
	description := "The request data has invalid field."
	return createError(ctx, http.StatusAccepted, CodeBadData, description, nil)
}

func PropertyNotFoundError(ctx context.Context, id string) Error {
	description := fmt.Sprintf("Property %s not found.", id)
	return createError(ctx, http.StatusAccepted, CodePropertyNotFound, description, nil)
}

func SavedPropertyNotFoundError(ctx context.Context, id string) Error {
	description := fmt.Sprintf("Saved property %s not found.", id)
	return createError(ctx, http.StatusAccepted, CodeSavedPropertyNotFound, description, nil)
}

func SavedPropertyConflictError(ctx context.Context, propertyId string) Error {
	description := fmt.Sprintf("Property %s is already saved.", propertyId)
	return createError(ctx, http.StatusAccepted, CodeSavedPropertyConflict, description, nil)
}

func ListingLoadFailureError(ctx context.Context, err error) Error {
	description := "Failed to load properties."
	return createError(ctx, http.StatusAccepted, CodeListingLoadFailure, description, err)
}

func ListingNotReadyError(ctx context.Context, state string) Error {
	description := fmt.Sprintf("The listing is %s.", state)
	return createError(ctx, http.StatusAccepted, CodeListingNotReady, description, nil)
}

func ListingNotFoundError(ctx context.Context, id string) Error {
	description := fmt.Sprintf("Listing %s not found.", id)
	return createError(ctx, http.StatusAccepted, CodeListingNotFound, description, nil)
}

func createError(ctx context.Context, status, code int, description string, err error) Error {
	pc, file, line, _ := runtime.Caller(2)
	funcName := runtime.FuncForPC(pc).Name()
	trace := fmt.Sprintf("[ERROR %d] %s\n%s:%d", code, description, file, line)
	if err != nil {
		if sessionError, ok := err.(Error); ok {
			trace = trace + "\n" + sessionError.trace
		} else {
			trace = trace + "\n" + err.Error()
		}
	}

	if ctx != nil {
		if config.BugsnagAPIKey != "" {
			class := bugsnag.ErrorClass{Name: fmt.Sprintf("%s$%d", funcName, code)}
			rawData := []interface{}{bugsnag.SeverityError, class}
			meta := bugsnag.MetaData{}
			if r := Request(ctx); r != nil {
				rawData = append(rawData, r)
				if RequestBody(ctx) != "" {
					meta["body"] = map[string]interface{}{"data": RequestBody(ctx)}
				}
			}
			rawData = append(rawData, meta)
			bugsnag.Notify(errors.New(trace), rawData...)
		}
		if logger := Logger(ctx); logger != nil {
			logger.Error(trace)
		}
	}

	return Error{
		Status:      status,
		Code:        code,
		Description: description,
		trace:       trace,
	}
}
