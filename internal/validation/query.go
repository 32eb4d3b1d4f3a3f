package validation

import (
	"errors"

	"expense-tracker/internal/models"

	"github.com/go-playground/validator/v10"
)

// ListQuery holds the optional filters shared by the transaction list and
// category report endpoints.
type ListQuery struct {
	FromDate string `query:"from_date" json:"from_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	ToDate   string `query:"to_date" json:"to_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Type     string `query:"type" json:"type" validate:"omitempty,transaction_type"`
}

// ValidateListQuery converts raw query values into report filters.
func ValidateListQuery(q ListQuery) (models.ReportFilters, error) {
	var fields []FieldError

	if err := GetValidator().validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.ReportFilters{}, err
		}
		for _, fe := range verrs {
			switch fe.Field() {
			case FieldType:
				fields = append(fields, newFieldError(FieldType, CodeInvalidEnum))
			default:
				fields = append(fields, newFieldError(fe.Field(), CodeInvalidTimestamp))
			}
		}
		return models.ReportFilters{}, &ValidationError{Fields: fields}
	}

	filters := models.ReportFilters{Type: q.Type}

	if q.FromDate != "" {
		from, ok := ParseTimestamp(q.FromDate)
		if !ok {
			fields = append(fields, newFieldError(FieldFromDate, CodeInvalidTimestamp))
		} else {
			filters.FromDate = &from
		}
	}

	if q.ToDate != "" {
		to, ok := ParseTimestamp(q.ToDate)
		if !ok {
			fields = append(fields, newFieldError(FieldToDate, CodeInvalidTimestamp))
		} else {
			filters.ToDate = &to
		}
	}

	if filters.FromDate != nil && filters.ToDate != nil && filters.FromDate.After(*filters.ToDate) {
		fields = append(fields, newFieldError(FieldFromDate, CodeInvalidRange))
	}

	if len(fields) > 0 {
		return models.ReportFilters{}, &ValidationError{Fields: fields}
	}
	return filters, nil
}
