package fieldcrypt

import (
	"fmt"
	"log/slog"
)

// maxParamNumber is the PostgreSQL maximum parameter number.
const maxParamNumber = 65535

// Field declares how one text column is stored.
type Field struct {
	// Column is the column name. It is interpolated into SQL by
	// SearchCondition and is validated by NewSchema.
	Column string

	// Protected columns are encrypted on write and decrypted on read.
	Protected bool

	// SearchTag makes the column deterministic: equal values always produce
	// equal ciphertext. It must never change once values are stored.
	SearchTag string

	// Normalize, if set, is applied to values before they are protected and
	// before they are searched for. Only valid on protected columns.
	Normalize Normalizer
}

// Schema is a fixed set of field declarations, built once at registration
// time. It is read-only after NewSchema and safe for concurrent use.
type Schema struct {
	fields map[string]Field
	order  []string
}

// NewSchema validates the field declarations and builds a Schema.
func NewSchema(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields: make(map[string]Field, len(fields)),
		order:  make([]string, 0, len(fields)),
	}
	for _, f := range fields {
		if !isValidColumnName(f.Column) {
			return nil, fmt.Errorf("%w: invalid column name %q", ErrInvalidSchema, f.Column)
		}
		if _, dup := s.fields[f.Column]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidSchema, f.Column)
		}
		if !f.Protected && (f.SearchTag != "" || f.Normalize != nil) {
			return nil, fmt.Errorf("%w: column %q is not protected", ErrInvalidSchema, f.Column)
		}
		s.fields[f.Column] = f
		s.order = append(s.order, f.Column)
	}
	return s, nil
}

// Field returns the declaration for column.
func (s *Schema) Field(column string) (Field, bool) {
	f, ok := s.fields[column]
	return f, ok
}

// Columns returns the declared column names in declaration order.
func (s *Schema) Columns() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// ProtectRow returns a copy of row with every protected column encrypted.
// Undeclared and unprotected columns pass through unchanged, as do NULLs.
func (s *Schema) ProtectRow(c *Cipher, row map[string]*string) (map[string]*string, error) {
	return s.transformRow(c, row, "protect", func(f Field, v *string) (*string, error) {
		if v != nil && f.Normalize != nil {
			normalized := f.Normalize(*v)
			v = &normalized
		}
		return c.Protect(v, f.SearchTag)
	})
}

// UnprotectRow returns a copy of row with every protected column decrypted.
func (s *Schema) UnprotectRow(c *Cipher, row map[string]*string) (map[string]*string, error) {
	return s.transformRow(c, row, "unprotect", func(f Field, v *string) (*string, error) {
		return c.Unprotect(v, f.SearchTag)
	})
}

// transformRow applies fn to the protected columns of row in declaration order.
// The first failure aborts the whole row; no partial result is returned.
func (s *Schema) transformRow(c *Cipher, row map[string]*string, op string, fn func(Field, *string) (*string, error)) (map[string]*string, error) {
	if row == nil {
		return nil, nil
	}

	out := make(map[string]*string, len(row))
	for column, value := range row {
		out[column] = value
	}

	for _, column := range s.order {
		f := s.fields[column]
		value, present := row[column]
		if !f.Protected || !present {
			continue
		}
		transformed, err := fn(f, value)
		if err != nil {
			c.config.logger.Debug("fieldcrypt: row "+op+" failed",
				slog.String("column", column),
				slog.String("kind", KindOf(err).String()),
			)
			return nil, fmt.Errorf("fieldcrypt: column %q: %w", column, err)
		}
		out[column] = transformed
	}
	return out, nil
}

// isValidColumnName checks if a column name is safe for SQL interpolation.
// Must start with letter or underscore, followed by alphanumeric/underscore.
func isValidColumnName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		letter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		digit := r >= '0' && r <= '9'
		if !letter && (i == 0 || !digit) {
			return false
		}
	}
	return true
}

// SearchCondition holds a SQL WHERE clause fragment and its arguments
// for an equality search on one column.
type SearchCondition struct {
	SQL  string // SQL fragment like "email = $1"
	Args []any  // The stored form of the searched value
}

// SearchCondition builds an equality condition for column.
//
// Protected columns must be deterministic, either through their SearchTag or
// the cipher's global IV; the argument is then the protected value, which
// matches what ProtectRow stored. Unprotected columns compare the plain value.
// A nil value yields "column IS NULL".
//
// paramOffset specifies the starting parameter number ($1, $2, etc.).
//
// Example:
//
//	email := "alice@example.com"
//	cond, err := schema.SearchCondition(cipher, "email", &email, 1)
//	query := "SELECT * FROM users WHERE " + cond.SQL
//	rows, _ := db.Query(query, cond.Args...)
func (s *Schema) SearchCondition(c *Cipher, column string, value *string, paramOffset int) (*SearchCondition, error) {
	if paramOffset < 1 || paramOffset > maxParamNumber {
		panic(fmt.Sprintf("fieldcrypt: invalid paramOffset (must be 1-%d)", maxParamNumber))
	}

	f, ok := s.fields[column]
	if !ok {
		return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidSchema, column)
	}

	if value == nil {
		return &SearchCondition{SQL: column + " IS NULL"}, nil
	}

	arg := *value
	if f.Protected {
		if !c.IsDeterministic(f.SearchTag) {
			return nil, fmt.Errorf("%w: %q", ErrNotSearchable, column)
		}
		if f.Normalize != nil {
			arg = f.Normalize(arg)
		}
		protected, err := c.Protect(&arg, f.SearchTag)
		if err != nil {
			return nil, fmt.Errorf("fieldcrypt: column %q: %w", column, err)
		}
		if protected == nil {
			// WithEmptyStringAsNull stored this value as NULL
			return &SearchCondition{SQL: column + " IS NULL"}, nil
		}
		arg = *protected
	}

	return &SearchCondition{
		SQL:  fmt.Sprintf("%s = $%d", column, paramOffset),
		Args: []any{arg},
	}, nil
}
