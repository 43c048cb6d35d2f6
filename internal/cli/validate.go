package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/idilsaglam/shelf/internal/model"
)

// taskInput is the raw text of a task before it becomes a model.Task.
type taskInput struct {
	Title    string `validate:"required"`
	Due      string `validate:"omitempty,datetime=2006-01-02"`
	Priority string `validate:"omitempty,oneof=low medium high"`
	Status   string `validate:"omitempty,oneof=completed pending"`
}

// bookInput is the raw text of a library item.
type bookInput struct {
	Title  string `validate:"required"`
	Author string `validate:"required"`
	Genre  string `validate:"required"`
	Year   int    `validate:"gte=1900,notfuture"`
	Status string `validate:"omitempty,oneof=read unread"`
}

func (in bookInput) item() model.LibraryItem {
	b := model.LibraryItem{Title: in.Title, Author: in.Author, Genre: in.Genre, PublicationYear: in.Year}
	b.IsRead, _ = model.ParseReadStatus(in.Status)
	return b
}

// Edits validate the same way except that nothing is required.
type taskPatch struct {
	Due      string `validate:"omitempty,datetime=2006-01-02"`
	Priority string `validate:"omitempty,oneof=low medium high"`
	Status   string `validate:"omitempty,oneof=completed pending"`
}

type bookPatch struct {
	Year   int    `validate:"omitempty,gte=1900,notfuture"`
	Status string `validate:"omitempty,oneof=read unread"`
}

// newValidator registers notfuture: a year no later than the current one.
func newValidator(now func() time.Time) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(now().Year())
	})
	return v
}

// describe turns validation errors into one readable line.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be a date like YYYY-MM-DD, got %q", field, fe.Value()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be %s or later", field, fe.Param()))
		case "notfuture":
			msgs = append(msgs, fmt.Sprintf("%s %v is in the future", field, fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// lower normalizes enum input before validation.
func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
