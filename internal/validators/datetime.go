package validators

import (
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// IsDate and IsTime accept only the canonical zero-padded forms: the
// stored strings sort lexicographically, so "9:30" must not slip past
// time.Parse's lenient hour handling.

func IsDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	return err == nil && t.Format(DateLayout) == s
}

func IsTime(s string) bool {
	t, err := time.Parse(TimeLayout, s)
	return err == nil && t.Format(TimeLayout) == s
}

// RegisterBindings installs the dateonly/hhmm rules into gin's binding
// validator and makes field errors report json names. Safe to call more
// than once.
func RegisterBindings() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		return IsDate(fl.Field().String())
	})

	v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return IsTime(fl.Field().String())
	})
}
