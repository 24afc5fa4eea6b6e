package validation

import (
	"net/url"
	"strconv"

	apperrors "pressroom/internal/errors"
	"pressroom/internal/model"
	"pressroom/internal/query"
)

// ParseListFilters normalizes raw query parameters into list filters.
// Missing or non-numeric page and limit fall back to their defaults; a status
// outside the closed enum and a non-numeric authorId are rejected with field
// errors. The search term is free text.
func ParseListFilters(values url.Values) (query.ListFilters, error) {
	f := query.ListFilters{
		Page:   parsePositive(values.Get("page"), query.DefaultPage),
		Limit:  parsePositive(values.Get("limit"), query.DefaultLimit),
		Search: values.Get("search"),
	}

	var fields []apperrors.FieldError

	if raw := values.Get("status"); raw != "" {
		status := model.ArticleStatus(raw)
		if !status.Valid() {
			fields = append(fields, apperrors.FieldError{
				Field:   "status",
				Message: "Status must be one of: DRAFT, PUBLISHED",
			})
		} else {
			f.Status = status
		}
	}

	if raw := values.Get("authorId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			fields = append(fields, apperrors.FieldError{
				Field:   "authorId",
				Message: "AuthorId must be a positive integer",
			})
		} else {
			f.AuthorID = uint(id)
		}
	}

	if len(fields) > 0 {
		return query.ListFilters{}, &apperrors.ValidationError{Fields: fields}
	}
	return f.Normalize(), nil
}

func parsePositive(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
