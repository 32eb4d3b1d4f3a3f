package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"time"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInputNotObject = errors.New("request body must be a JSON object")
	ErrTrailingData   = errors.New("request body must contain a single JSON value")
)

// TransactionDraft is a fully validated, normalized create request
type TransactionDraft struct {
	Type       string
	Amount     int64
	CategoryID uuid.UUID
	Note       *string
	OccurredAt time.Time
}

// ToInput renders the draft back into the untyped shape accepted by
// ValidateCreateTransaction.
func (d TransactionDraft) ToInput() map[string]any {
	input := map[string]any{
		FieldType:       d.Type,
		FieldAmount:     d.Amount,
		FieldCategoryID: d.CategoryID.String(),
		FieldOccurredAt: d.OccurredAt.Format(time.RFC3339Nano),
	}
	if d.Note != nil {
		input[FieldNote] = *d.Note
	} else {
		input[FieldNote] = nil
	}
	return input
}

// DecodeInput reads exactly one JSON object, keeping numbers as json.Number
// so that integral checks are exact.
func DecodeInput(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}

	input, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrInputNotObject
	}
	return input, nil
}

// ValidateCreateTransaction checks every field of a create request and
// returns either a draft or a *ValidationError listing all failures.
// Values are never coerced between JSON types.
func ValidateCreateTransaction(input map[string]any) (TransactionDraft, error) {
	var (
		draft  TransactionDraft
		fields []FieldError
	)

	if t, err := validateType(input[FieldType]); err != nil {
		fields = append(fields, newFieldError(FieldType, CodeInvalidEnum))
	} else {
		draft.Type = t
	}

	if amount, err := ValidateAmount(input[FieldAmount]); err != nil {
		fields = append(fields, newFieldError(FieldAmount, CodeInvalidAmount))
	} else {
		draft.Amount = amount
	}

	if id, ok := parseCategoryID(input[FieldCategoryID]); !ok {
		fields = append(fields, newFieldError(FieldCategoryID, CodeInvalidReference))
	} else {
		draft.CategoryID = id
	}

	if note, fe := validateNote(input[FieldNote]); fe != nil {
		fields = append(fields, *fe)
	} else {
		draft.Note = note
	}

	if ts, ok := parseTimestamp(input[FieldOccurredAt]); !ok {
		fields = append(fields, newFieldError(FieldOccurredAt, CodeInvalidTimestamp))
	} else {
		draft.OccurredAt = ts
	}

	if len(fields) > 0 {
		return TransactionDraft{}, &ValidationError{Fields: fields}
	}
	return draft, nil
}

// ValidateAmount accepts any integral numeric value in (0, models.MaxAmount].
// Strings, booleans and fractional values are rejected.
func ValidateAmount(v any) (int64, error) {
	invalid := newFieldError(FieldAmount, CodeInvalidAmount)

	var d decimal.Decimal
	switch n := v.(type) {
	case json.Number:
		parsed, err := decimal.NewFromString(string(n))
		if err != nil {
			return 0, invalid
		}
		d = parsed
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, invalid
		}
		d = decimal.NewFromFloat(n)
	case float32:
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return 0, invalid
		}
		d = decimal.NewFromFloat32(n)
	case int:
		d = decimal.NewFromInt(int64(n))
	case int8:
		d = decimal.NewFromInt(int64(n))
	case int16:
		d = decimal.NewFromInt(int64(n))
	case int32:
		d = decimal.NewFromInt32(n)
	case int64:
		d = decimal.NewFromInt(n)
	case uint8:
		d = decimal.NewFromInt(int64(n))
	case uint16:
		d = decimal.NewFromInt(int64(n))
	case uint32:
		d = decimal.NewFromInt(int64(n))
	case uint:
		d = decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(n)), 0)
	case uint64:
		d = decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0)
	default:
		return 0, invalid
	}

	// Anything scaled past 10^18 cannot fit in an int64.
	if !d.IsPositive() || d.Exponent() > 18 || !d.IsInteger() {
		return 0, invalid
	}

	i := d.BigInt()
	if !i.IsInt64() || i.Int64() > models.MaxAmount {
		return 0, invalid
	}
	return i.Int64(), nil
}

// TypesMatch reports whether a transaction type may be recorded against a
// category of categoryType.
func TypesMatch(transactionType, categoryType string) bool {
	return models.IsValidTransactionType(transactionType) && transactionType == categoryType
}

func validateType(v any) (string, error) {
	s, ok := v.(string)
	if !ok || !models.IsValidTransactionType(s) {
		return "", models.ErrInvalidTransactionType
	}
	return s, nil
}

func parseCategoryID(v any) (uuid.UUID, bool) {
	s, ok := v.(string)
	if !ok || !isCanonicalUUID(s) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// validateNote treats absent, null and empty notes as no note.
func validateNote(v any) (*string, *FieldError) {
	if v == nil {
		return nil, nil
	}

	s, ok := v.(string)
	if !ok {
		fe := newFieldError(FieldNote, CodeInvalidNote)
		return nil, &fe
	}

	if s == "" {
		return nil, nil
	}

	if err := GetValidator().validate.Var(s, fmt.Sprintf("max=%d", models.MaxNoteLength)); err != nil {
		fe := newFieldError(FieldNote, CodeNoteTooLong)
		return nil, &fe
	}

	return &s, nil
}

func parseTimestamp(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	return ParseTimestamp(s)
}

// ParseTimestamp parses an RFC 3339 timestamp (fractional seconds and numeric
// offsets allowed) and normalizes it to UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return ts.UTC(), true
}
