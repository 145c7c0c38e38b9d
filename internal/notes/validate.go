package notes

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"weekboard/internal/week"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "weekday", func(fl validator.FieldLevel) bool {
		return week.Day(fl.Field().String()).Valid()
	})
	mustRegister(v, "category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Valid()
	})
	mustRegister(v, "notecolor", func(fl validator.FieldLevel) bool {
		return Color(fl.Field().String()).Valid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// validateCreate checks a create request and returns the note it describes.
func validateCreate(in CreateNoteInput) (*Note, error) {
	verr := &ValidationError{}
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("validate note: %w", err)
		}
		for _, fe := range fieldErrs {
			verr.add(fe.Field(), fieldMessage(fe.Field(), fe))
		}
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	color := Color(in.Color)
	if color == "" {
		color = ColorDefault
	}
	n := &Note{
		Title:      in.Title,
		Content:    in.Content,
		Day:        week.Day(in.Day),
		Category:   Category(in.Category),
		Color:      color,
		Image:      in.Image,
		WeekOffset: in.WeekOffset,
		Repeat:     in.Repeat,
		Position:   in.Position,
	}
	if in.OwnerRef != nil {
		ref := *in.OwnerRef
		n.OwnerRef = &ref
	}
	return n, nil
}

// validatePatch checks the fields present in a partial update with the same
// rules as create and converts them to a Patch.
func validatePatch(in UpdateNoteInput) (Patch, error) {
	verr := &ValidationError{}
	check := func(field string, value any, tag string) bool {
		err := validate.Var(value, tag)
		if err == nil {
			return true
		}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				verr.add(field, fieldMessage(field, fe))
			}
			return false
		}
		verr.add(field, err.Error())
		return false
	}

	var p Patch
	if in.Title != nil && check("title", *in.Title, "required") {
		p.Title = in.Title
	}
	if in.Content != nil && check("content", *in.Content, "required") {
		p.Content = in.Content
	}
	if in.Day != nil && check("day", *in.Day, "required,weekday") {
		d := week.Day(*in.Day)
		p.Day = &d
	}
	if in.Category != nil && check("category", *in.Category, "required,category") {
		c := Category(*in.Category)
		p.Category = &c
	}
	if in.Color != nil && check("color", *in.Color, "required,notecolor") {
		c := Color(*in.Color)
		p.Color = &c
	}
	if in.Position != nil && check("position", *in.Position, "min=0") {
		p.Position = in.Position
	}
	p.Image = in.Image
	p.WeekOffset = in.WeekOffset
	p.Repeat = in.Repeat
	p.OwnerRef = in.OwnerRef

	if err := verr.orNil(); err != nil {
		return Patch{}, err
	}
	return p, nil
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "weekday":
		return fmt.Sprintf("%s must be one of: %s", field, joinDays())
	case "category":
		return fmt.Sprintf("%s must be one of: %s", field, joinCategories())
	case "notecolor":
		return fmt.Sprintf("%s must be one of: %s", field, joinColors())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func joinDays() string {
	s := make([]string, len(week.Days))
	for i, d := range week.Days {
		s[i] = string(d)
	}
	return strings.Join(s, ", ")
}

func joinCategories() string {
	s := make([]string, len(Categories))
	for i, c := range Categories {
		s[i] = string(c)
	}
	return strings.Join(s, ", ")
}

func joinColors() string {
	s := make([]string, len(Colors))
	for i, c := range Colors {
		s[i] = string(c)
	}
	return strings.Join(s, ", ")
}
