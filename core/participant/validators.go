package participant

import (
	"fmt"
	"strings"
	"unicode"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/darasa/core"
)

var (
	roleTag  = "role"
	roleText = "invalid role"

	// password policy
	pwdMinLen     = 8
	pwdMinLenTag  = "pwdminlen"
	pwdMinLenText = fmt.Sprintf("password must contain at least %d characters", pwdMinLen)

	pwdNotAllNumTag  = "pwdnotallnum"
	pwdNotAllNumText = "password cannot be entirely numeric"

	pwdMaxSim      = .7
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = "password cannot be similar to participant attributes"
)

// InitValidators registers the participant validators and their translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText)

	validate.RegisterStructValidation(newParticipantStructValidation, NewParticipant{})
	core.RegisterCustomTranslation(validate, translator, pwdMinLenTag, pwdMinLenText)
	core.RegisterCustomTranslation(validate, translator, pwdNotAllNumTag, pwdNotAllNumText)
	core.RegisterCustomTranslation(validate, translator, pwdAttrSimTag, pwdAttrSimText)
}

func roleValidation(fl validator.FieldLevel) bool {
	return ValidRole(fl.Field().String())
}

func newParticipantStructValidation(sl validator.StructLevel) {
	np := sl.Current().Interface().(NewParticipant)
	if np.Password == "" {
		return
	}
	if len(np.Password) < pwdMinLen {
		sl.ReportError(np.Password, "password", "Password", pwdMinLenTag, "")
	}
	if isAllNumeric(np.Password) {
		sl.ReportError(np.Password, "password", "Password", pwdNotAllNumTag, "")
	}
	if tooSimilar(np.Password, np.Name, np.Email) {
		sl.ReportError(np.Password, "password", "Password", pwdAttrSimTag, "")
	}
}

func isAllNumeric(pwd string) bool {
	for _, r := range pwd {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// tooSimilar checks the password against participant attributes using
// difflib's ratio; anything above pwdMaxSim is rejected.
func tooSimilar(pwd string, attrs ...string) bool {
	pwd = strings.ToLower(pwd)
	matcher := difflib.NewMatcher(nil, strings.Split(pwd, ""))
	for _, attr := range attrs {
		if attr == "" {
			continue
		}
		matcher.SetSeq1(strings.Split(strings.ToLower(attr), ""))
		if matcher.Ratio() > pwdMaxSim {
			return true
		}
	}
	return false
}
