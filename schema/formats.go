package schema

import "github.com/go-playground/validator/v10"

// formats maps a Format name to the go-playground/validator tag that checks
// it. Unknown formats are not checked.
var formats = map[string]string{
	"url":   "url",
	"uri":   "uri",
	"email": "email",
	"uuid":  "uuid",
}

// validate is safe for concurrent use and caches nothing per call.
var validate = validator.New()

// matchesFormat reports whether s satisfies the named format.
func matchesFormat(name, s string) bool {
	tag, ok := formats[name]
	if !ok {
		return true
	}
	return validate.Var(s, tag) == nil
}

