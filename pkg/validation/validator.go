package validation

import (
	"sort"

	"github.com/go-playground/validator/v10"
)

// Fields is an untyped candidate keyed by field name. A missing key and a nil value are both "absent".
type Fields map[string]any

// FieldErrors maps a field name to its ordered, distinct violation messages.
type FieldErrors map[string][]string

// Add appends msg to field unless it is already recorded.
func (fe FieldErrors) Add(field, msg string) {
	for _, m := range fe[field] {
		if m == msg {
			return
		}
	}
	fe[field] = append(fe[field], msg)
}

// Empty reports whether no violations were recorded.
func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Fields returns the names of the failing fields, sorted.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for k := range fe {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Field is one entry of a rule table. Rules run in declared order.
type Field struct {
	Name     string
	Optional bool // skipped when absent
	Rules    []Rule
}

// Validator evaluates a rule table against candidates.
// It holds no per-call state and is safe for concurrent use.
type Validator struct {
	engine *validator.Validate
	fields []Field
}

// New builds a Validator with its own go-playground engine.
func New(fields ...Field) *Validator {
	return &Validator{
		engine: validator.New(validator.WithRequiredStructEnabled()),
		fields: append([]Field(nil), fields...),
	}
}

// Validate runs every rule of every field without short-circuiting and returns the violations.
// A nil candidate behaves like one with every field absent. The returned map is never shared.
func (v *Validator) Validate(candidate Fields) FieldErrors {
	errs := FieldErrors{}
	for _, f := range v.fields {
		value, ok := candidate[f.Name]
		if f.Optional && (!ok || isAbsent(value)) {
			continue
		}
		for _, r := range f.Rules {
			if !r.Check(v.engine, value) {
				errs.Add(f.Name, r.Message(f.Name))
			}
		}
	}
	return errs
}
