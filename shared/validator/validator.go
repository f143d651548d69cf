package validator

import (
	"encoding/json"
	"fmt"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

const (
	maxBodyBytes = 1 << 20
	sniffBytes   = 512
)

var (
	validate    *val.Validate
	roomTypeExp = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

var customTags = map[string]val.Func{
	"empty":       func(fl val.FieldLevel) bool { return fl.Field().IsZero() },
	"isodate":     isDate,
	"roomtype":    isRoomType,
	"mimetypes":   hasMimeType,
	"maxfilesize": withinFileSize,
}

func isDate(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.DateOnlyFormat, str)

	return err == nil
}

func isRoomType(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)

	return ok && roomTypeExp.MatchString(str)
}

// hasMimeType checks the declared content type and, when the upload is readable, the type
// sniffed from its first bytes. A renamed executable fails the second check.
func hasMimeType(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	allowed := strings.Fields(field.Param())

	if !slices.Contains(allowed, file.Header.Get(constant.RequestHeaderContentType)) {
		return false
	}

	opened, err := file.Open()
	if err != nil {
		return true
	}
	defer opened.Close()

	head := make([]byte, sniffBytes)
	n, _ := io.ReadFull(opened, head)

	sniffed, _, _ := strings.Cut(http.DetectContentType(head[:n]), ";")

	return slices.Contains(allowed, sniffed)
}

func withinFileSize(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return file.Size <= int64(maxSizeMB*(1<<20))
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}

		return name
	})

	for tag, fn := range customTags {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validator: register %s: %v", tag, err))
		}
	}
}

// Validate decodes a JSON body of at most 1 MiB into data and validates it.
// Malformed JSON is a bad request, rule violations are validation failures.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(io.LimitReader(r, maxBodyBytes)).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.Validation(messages(err)...) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.Validation(messages(err)...) //nolint:wrapcheck
	}

	return nil
}
