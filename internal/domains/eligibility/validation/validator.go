// Package validation turns raw eligibility requests into normalized commands.
package validation

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
)

const (
	maxNameLength = 50

	tagRequired   = "required"
	tagMax        = "max"
	tagDatetime   = "datetime"
	tagPersonName = "personname"
	tagNotFuture  = "notfuture"
	tagMaxAge     = "maxage"
)

// personNamePattern accepts letters with their combining marks, so decomposed input such as
// "Jose\u0301" is a valid name.
var personNamePattern = regexp.MustCompile(`^[\p{L}\p{M} '\-]+$`)

// Input carries the raw field values received at the boundary.
type Input struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
}

// fieldRules lists the tags checked for one field, in reporting order. A missing value stops
// the remaining checks; every other rule is evaluated on its own so all violations are reported.
type fieldRules struct {
	field string
	value func(Input) string
	tags  []string
}

var inputRules = []fieldRules{
	{
		field: "firstName",
		value: func(in Input) string { return in.FirstName },
		tags:  []string{tagRequired, tagMax + "=" + strconv.Itoa(maxNameLength), tagPersonName},
	},
	{
		field: "lastName",
		value: func(in Input) string { return in.LastName },
		tags:  []string{tagRequired, tagMax + "=" + strconv.Itoa(maxNameLength), tagPersonName},
	},
	{
		field: "dateOfBirth",
		value: func(in Input) string { return in.DateOfBirth },
		tags:  []string{tagRequired, tagDatetime + "=" + domain.DateLayout, tagNotFuture, tagMaxAge},
	},
}

// Normalize trims surrounding whitespace from every field.
func (in Input) Normalize() Input {
	return Input{
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		DateOfBirth: strings.TrimSpace(in.DateOfBirth),
	}
}

type referenceKey struct{}

// Validator validates eligibility input with english messages keyed by json field names.
// Each field reports one message per violated rule.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New builds a Validator with the name and date rules registered.
func New() *Validator {
	enLoc := en.New()
	uni := ut.New(enLoc, enLoc)
	trans, _ := uni.GetTranslator("en")

	v := validator.New()
	_ = entranslations.RegisterDefaultTranslations(v, trans)

	_ = v.RegisterValidation(tagPersonName, func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidationCtx(tagNotFuture, func(ctx context.Context, fl validator.FieldLevel) bool {
		dob, err := domain.ParseDate(fl.Field().String())
		if err != nil {
			// malformed dates are reported by the datetime rule
			return true
		}
		_, err = domain.Age(dob, referenceTime(ctx))
		return !errors.Is(err, domain.ErrFutureDate)
	})

	_ = v.RegisterValidationCtx(tagMaxAge, func(ctx context.Context, fl validator.FieldLevel) bool {
		dob, err := domain.ParseDate(fl.Field().String())
		if err != nil {
			return true
		}
		age, err := domain.Age(dob, referenceTime(ctx))
		return err != nil || age <= domain.MaxAgeYears
	})

	registerMessage(v, trans, tagRequired, "{0} is required")
	registerMessage(v, trans, tagMax, "{0} must be at most {1} characters")
	registerMessage(v, trans, tagDatetime, "{0} must be a valid calendar date in YYYY-MM-DD format")
	registerMessage(v, trans, tagPersonName, "{0} may only contain letters, spaces, hyphens, and apostrophes")
	registerMessage(v, trans, tagNotFuture, "{0} cannot be in the future")
	registerMessage(v, trans, tagMaxAge, "{0} must be within the last 150 years")

	return &Validator{validate: v, translator: trans}
}

// Validate normalizes input and checks it against now. It returns either a complete command
// or a *domain.ValidationError listing every violated rule in field order.
func (v *Validator) Validate(ctx context.Context, input Input, now time.Time) (domain.Command, error) {
	normalized := input.Normalize()
	ctx = context.WithValue(ctx, referenceKey{}, now)

	var fields []domain.FieldError
	var cause error
	for _, rules := range inputRules {
		value := rules.value(normalized)
		for _, tag := range rules.tags {
			fe, err := v.check(ctx, rules.field, value, tag)
			if err != nil {
				return domain.Command{}, err
			}
			if fe == nil {
				continue
			}
			fields = append(fields, *fe)
			switch fe.Rule {
			case tagDatetime:
				cause = domain.ErrInvalidDate
			case tagNotFuture:
				cause = domain.ErrFutureDate
			}
			if fe.Rule == tagRequired {
				break
			}
		}
	}
	if len(fields) > 0 {
		return domain.Command{}, domain.NewValidationError(fields, cause)
	}

	dob, err := domain.ParseDate(normalized.DateOfBirth)
	if err != nil {
		return domain.Command{}, DateError(err)
	}
	return domain.Command{
		FirstName:   normalized.FirstName,
		LastName:    normalized.LastName,
		DateOfBirth: dob,
	}, nil
}

// check runs one tag against a field value and returns the violation, if any.
func (v *Validator) check(ctx context.Context, field, value, tag string) (*domain.FieldError, error) {
	err := v.validate.VarCtx(ctx, value, tag)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return nil, err
	}
	fe := verrs[0]
	msg, terr := v.translator.T(fe.Tag(), field, fe.Param())
	if terr != nil {
		msg = field + " is invalid"
	}
	return &domain.FieldError{Field: field, Rule: fe.Tag(), Message: msg}, nil
}

// DateError converts an age calculation failure into a dateOfBirth validation error.
func DateError(err error) *domain.ValidationError {
	fe := domain.FieldError{Field: "dateOfBirth", Rule: tagDatetime, Message: "dateOfBirth must be a valid calendar date in YYYY-MM-DD format"}
	if errors.Is(err, domain.ErrFutureDate) {
		fe = domain.FieldError{Field: "dateOfBirth", Rule: tagNotFuture, Message: "dateOfBirth cannot be in the future"}
	}
	return domain.NewValidationError([]domain.FieldError{fe}, err)
}

func referenceTime(ctx context.Context) time.Time {
	if now, ok := ctx.Value(referenceKey{}).(time.Time); ok && !now.IsZero() {
		return now
	}
	return time.Now().UTC()
}

func registerMessage(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}
