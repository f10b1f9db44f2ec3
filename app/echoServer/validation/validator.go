package validation

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"videostore/util/apperr"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FieldErrors lists every problem found in a request body.
type FieldErrors struct {
	Details []string
}

func (e *FieldErrors) Error() string { return strings.Join(e.Details, " ") }

func missing(field string) string { return fmt.Sprintf("Request body must include %s.", field) }
func invalid(field string) string { return fmt.Sprintf("Request body field %s is invalid.", field) }

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Validate reports all failing fields at once, in struct order.
func (v *Validator) Validate(i interface{}) error {
	err := v.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &FieldErrors{}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			out.Details = append(out.Details, missing(fe.Field()))
		} else {
			out.Details = append(out.Details, invalid(fe.Field()))
		}
	}
	return out
}

// Bind decodes the JSON body into dst, a pointer to a request schema. Fields
// whose value has the wrong kind are reported together; absent fields are left
// for Validate. An empty body decodes to an empty schema.
func Bind(c echo.Context, dst any) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}

	var raw map[string]jsoniter.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return &FieldErrors{Details: []string{"Request body must be a JSON object."}}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	typ := reflect.TypeOf(dst).Elem()
	out := &FieldErrors{}
	for _, k := range keys {
		probe := reflect.New(typ).Interface()
		one := []byte("{" + strconv.Quote(k) + ":" + string(raw[k]) + "}")
		if err := json.Unmarshal(one, probe); err != nil {
			out.Details = append(out.Details, invalid(k))
		}
	}
	if len(out.Details) > 0 {
		return out
	}
	return json.Unmarshal(body, dst)
}

// ParseID parses an integer path parameter; label names it in the error.
func ParseID(c echo.Context, param, label string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("%s must be an integer.", label)
	}
	return id, nil
}
