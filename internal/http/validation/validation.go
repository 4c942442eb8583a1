package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldErrors map[string]string

// FromBindError turns a gin bind error into form-field messages. dst is the
// struct pointer that was bound; its form tags name the fields.
func FromBindError(err error, dst any) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fieldKey(dst, fe.StructField())] = messageForTag(fe.Tag(), fe.Param(), fe.Kind())
		}
		return out
	}

	out["_"] = "The form could not be read."
	return out
}

func fieldKey(dst any, structField string) string {
	t := reflect.TypeOf(dst)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return strings.ToLower(structField)
	}

	f, ok := t.FieldByName(structField)
	if !ok {
		return strings.ToLower(structField)
	}
	tag, _, _ := strings.Cut(f.Tag.Get("form"), ",")
	if tag == "" || tag == "-" {
		return strings.ToLower(structField)
	}
	return tag
}

func messageForTag(tag, param string, kind reflect.Kind) string {
	switch tag {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "numeric", "number":
		return "Must be a number."
	case "gte", "min":
		if kind == reflect.String && tag == "min" {
			return "Must be at least " + param + " characters."
		}
		return "Must be at least " + param + "."
	case "max":
		return "Must be at most " + param + " characters."
	case "url":
		return "Enter a valid URL."
	default:
		return "Invalid value."
	}
}
