package validatorx

import (
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *gpvalidator.Validate
)

// Init eagerly builds the shared validator so the first request does
// not pay for struct-tag compilation.
func Init() {
	once.Do(func() {
		v = gpvalidator.New()
	})
}

// ValidateStruct runs go-playground/validator struct-tag validation.
func ValidateStruct(s interface{}) error {
	Init()
	return v.Struct(s)
}
