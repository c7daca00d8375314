// auction/schema/schema.go
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/Ftotnem/GO-AUCTIONS/shared/api"
	"github.com/Ftotnem/GO-AUCTIONS/shared/models"
	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps request bodies read by Decode.
const maxBodyBytes = 1 << 20

// Validator decodes request bodies strictly and checks them against the structural rules
// carried in the models' validate tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator that reports fields by their JSON names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// DecodeNewPlayer reads a Player creation payload.
func (v *Validator) DecodeNewPlayer(body io.Reader) (*models.Player, error) {
	var p models.Player
	if err := v.Decode(body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodePlayerUpdate reads a Player PATCH payload.
func (v *Validator) DecodePlayerUpdate(body io.Reader) (*models.PlayerPatch, error) {
	var p models.PlayerPatch
	if err := v.Decode(body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeNewAuction reads an Auction creation payload.
func (v *Validator) DecodeNewAuction(body io.Reader) (*models.Auction, error) {
	var a models.Auction
	if err := v.Decode(body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// DecodeAuctionUpdate reads an Auction PATCH payload.
func (v *Validator) DecodeAuctionUpdate(body io.Reader) (*models.AuctionPatch, error) {
	var a models.AuctionPatch
	if err := v.Decode(body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Decode fills dst from a single JSON object and validates it. Every failure is an
// *api.Error of kind BadRequest; rule violations are joined with ". ".
func (v *Validator) Decode(body io.Reader, dst interface{}) error {
	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes+1))
	if err != nil {
		return api.NewBadRequest(fmt.Sprintf("Could not read request body: %v", err))
	}
	if len(raw) > maxBodyBytes {
		return api.NewBadRequest("Request body is too large")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return api.NewBadRequest("Request body must be a JSON object")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return api.NewBadRequest(describeDecodeError(err))
	}
	if dec.More() {
		return api.NewBadRequest("Request body must contain a single JSON object")
	}

	if err := v.validate.Struct(dst); err != nil {
		var violations validator.ValidationErrors
		if errors.As(err, &violations) {
			return api.NewBadRequest(joinViolations(violations))
		}
		return fmt.Errorf("validating %T: %w", dst, err)
	}
	return nil
}

func joinViolations(violations validator.ValidationErrors) string {
	msgs := make([]string, 0, len(violations))
	for _, fe := range violations {
		msgs = append(msgs, describeViolation(fe))
	}
	return strings.Join(msgs, ". ")
}

func describeViolation(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	default:
		return fmt.Sprintf("%s failed the '%s' rule", field, fe.Tag())
	}
}

// fieldPath drops the root struct name from the validator namespace:
// "Auction.players[0].player" becomes "players[0].player".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describeDecodeError(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("Request body is not valid JSON (at offset %d)", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return "Request body must be a JSON object"
		}
		return fmt.Sprintf("%s must be of type %s", typeErr.Field, jsonTypeName(typeErr.Type))
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "Request body is not valid JSON"
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return fmt.Sprintf("%s is not an allowed field", strings.TrimPrefix(err.Error(), "json: unknown field "))
	default:
		return fmt.Sprintf("Request body is invalid: %v", err)
	}
}

func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}
