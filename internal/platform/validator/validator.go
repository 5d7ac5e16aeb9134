// internal/platform/validator/validator.go
package validator

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel for custom rules.
type FieldLevel = validator.FieldLevel

var (
	once  sync.Once
	valid *validator.Validate
	trans ut.Translator
)

// instance lazily builds the shared validator with english messages and
// yaml tag names, so errors point at config keys.
func instance() (*validator.Validate, ut.Translator) {
	once.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ = uni.GetTranslator("en")

		valid = validator.New(validator.WithRequiredStructEnabled())
		valid.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("yaml")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
		_ = en_translations.RegisterDefaultTranslations(valid, trans)
		_ = valid.RegisterValidation("target", func(fl FieldLevel) bool {
			return IsTarget(fl.Field().String())
		})
	})
	return valid, trans
}

// RegisterValidation adds a custom tag to the shared validator.
func RegisterValidation(tag string, fn func(FieldLevel) bool) error {
	v, _ := instance()
	return v.RegisterValidation(tag, fn)
}

// FieldError is one failed rule, already translated.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Error aggrega los fallos de una validación de struct.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Struct valida s según sus tags `validate`. Devuelve *Error o nil.
func Struct(s any) error {
	v, tr := instance()
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		msg := fe.Translate(tr)
		if msg == "" {
			msg = fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
		}
		out.Fields = append(out.Fields, FieldError{Field: fe.Namespace(), Tag: fe.Tag(), Message: msg})
	}
	return out
}

// Target validators

var hostLike = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,63}(:\d{1,5})?(/\S*)?$`)

// IsTarget verifica si s es una URL absoluta http(s) o un host con ruta
// opcional (example.com/path), que es lo que acepta el índice del archivo.
func IsTarget(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return false
	}
	if strings.Contains(s, "://") {
		return IsURL(s)
	}
	return hostLike.MatchString(s)
}

// IsURL verifica si un string es una URL http(s) válida con host.
func IsURL(urlStr string) bool {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	return (scheme == "http" || scheme == "https") && parsed.Host != ""
}

// NormalizeTarget limpia una entrada de la lista de URLs: espacios, fragmento
// y esquema/host en minúsculas. La ruta se conserva tal cual.
func NormalizeTarget(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	if !strings.Contains(s, "://") {
		host, path, found := strings.Cut(s, "/")
		if found {
			return strings.ToLower(host) + "/" + path
		}
		return strings.ToLower(host)
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return s
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	return parsed.String()
}

// IsEmpty verifica si un string está vacío o solo contiene espacios.
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}
