// Package patch builds parameterized UPDATE statements from the subset of
// fields a caller actually supplied.  Each entity declares its updatable
// columns in a typed patch (see internal/model) and classifies every column
// as scalar, structured or boolean; Build only turns that list into SQL text
// and arguments.  Executing the statement is left to the repository.
package patch

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/trialvo/trialvo-backend/internal/codec"
)

// IdentityColumn is never part of a SET clause, even when supplied.
const IdentityColumn = "id"

// ErrNoFields is returned when nothing updatable remains.  Handlers map it
// to 400.
var ErrNoFields = errors.New("no fields to update")

var columnName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Kind classifies how a value is bound.
type Kind int

const (
	Scalar     Kind = iota // bound unchanged
	Structured             // encoded through the codec
	Boolean                // coerced to 1/0
)

// Field is one column assignment.
type Field struct {
	Column string
	Kind   Kind
	Value  any
}

// Update is the result of Build: a SET clause plus its ordered arguments.
type Update struct {
	Table     string
	SetClause string
	Args      []any
}

// Statement renders the full UPDATE keyed by identity.
func (u Update) Statement() string {
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", u.Table, u.SetClause, IdentityColumn)
}

// ArgsWithID returns Args followed by the identity value, matching Statement.
func (u Update) ArgsWithID(id any) []any {
	out := make([]any, 0, len(u.Args)+1)
	out = append(out, u.Args...)
	return append(out, id)
}

// Columns lists the assigned columns in order.
func (u Update) Columns() []string {
	if u.SetClause == "" {
		return nil
	}
	parts := strings.Split(u.SetClause, ", ")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, " = ?")
	}
	return parts
}

// Build converts fields into a SET clause for table.  The identity column is
// dropped, structured values are encoded and booleans coerced.  When no field
// remains ErrNoFields is returned instead of a zero-column statement.
func Build(table string, fields []Field) (Update, error) {
	if !columnName.MatchString(table) {
		return Update{}, fmt.Errorf("invalid table name %q", table)
	}
	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		if f.Column == IdentityColumn {
			continue
		}
		if !columnName.MatchString(f.Column) {
			return Update{}, fmt.Errorf("invalid column name %q", f.Column)
		}
		v, err := bind(f)
		if err != nil {
			return Update{}, fmt.Errorf("field %s: %w", f.Column, err)
		}
		sets = append(sets, f.Column+" = ?")
		args = append(args, v)
	}
	if len(sets) == 0 {
		return Update{}, ErrNoFields
	}
	return Update{Table: table, SetClause: strings.Join(sets, ", "), Args: args}, nil
}

func bind(f Field) (any, error) {
	switch f.Kind {
	case Structured:
		return codec.Encode(f.Value)
	case Boolean:
		if Truthy(f.Value) {
			return 1, nil
		}
		return 0, nil
	default:
		return f.Value, nil
	}
}

// Truthy reports whether v counts as true for a boolean column: true,
// non-zero numbers and the strings "1", "true", "yes", "on".
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case Flag:
		return bool(t)
	case *bool:
		return t != nil && *t
	case int:
		return t != 0
	case int8:
		return t != 0
	case int16:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint:
		return t != 0
	case uint8:
		return t != 0
	case uint16:
		return t != 0
	case uint32:
		return t != 0
	case uint64:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "yes", "on":
			return true
		}
		if n, err := strconv.ParseFloat(t, 64); err == nil {
			return n != 0
		}
		return false
	}
	return true
}

// Set appends a field for column when v was supplied (non-nil).
func Set[T any](fields []Field, column string, kind Kind, v *T) []Field {
	if v == nil {
		return fields
	}
	return append(fields, Field{Column: column, Kind: kind, Value: *v})
}

// Flag is a boolean request field that also accepts 1/0 and "true"/"1"
// style strings, matching how admin clients send toggles.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Flag(Truthy(v))
	return nil
}
