// Package xpgx adapts a pgx pool to squirrel builders and db-tagged struct
// scanning so store code never touches raw SQL strings.
package xpgx

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Pool interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Execx(ctx context.Context, query squirrel.Sqlizer) (pgconn.CommandTag, error)
	Getx(ctx context.Context, dst interface{}, query squirrel.Sqlizer) error
	Selectx(ctx context.Context, dst interface{}, query squirrel.Sqlizer) error
	Close()
}

type pool struct {
	inner *pgxpool.Pool
}

func NewPool(ctx context.Context, dsn string) (Pool, error) {
	inner, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := inner.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &pool{inner: inner}, nil
}

func (p *pool) Close() {
	p.inner.Close()
}

func (p *pool) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return p.inner.Exec(ctx, sql, args...)
}

func (p *pool) Execx(ctx context.Context, query squirrel.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("ToSql: %w", err)
	}

	return p.inner.Exec(ctx, sql, args...)
}

// Getx scans the first row into dst (a pointer to a db-tagged struct) and
// returns pgx.ErrNoRows when the query matches nothing.
func (p *pool) Getx(ctx context.Context, dst interface{}, query squirrel.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	rows, err := p.inner.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		if rows.Err() != nil {
			return rows.Err()
		}
		return pgx.ErrNoRows
	}
	if err := scanRow(rows, dst); err != nil {
		return err
	}

	return rows.Err()
}

// Selectx scans all rows into dst, a pointer to a slice of structs or of
// struct pointers.
func (p *pool) Selectx(ctx context.Context, dst interface{}, query squirrel.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	rows, err := p.inner.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	sliceVal := reflect.ValueOf(dst)
	if sliceVal.Kind() != reflect.Ptr || sliceVal.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("Selectx: dst must be a pointer to a slice, got %T", dst)
	}
	sliceVal = sliceVal.Elem()
	elemType := sliceVal.Type().Elem()

	for rows.Next() {
		var elem reflect.Value
		if elemType.Kind() == reflect.Ptr {
			elem = reflect.New(elemType.Elem())
		} else {
			elem = reflect.New(elemType)
		}
		if err := scanRow(rows, elem.Interface()); err != nil {
			return err
		}
		if elemType.Kind() == reflect.Ptr {
			sliceVal.Set(reflect.Append(sliceVal, elem))
		} else {
			sliceVal.Set(reflect.Append(sliceVal, elem.Elem()))
		}
	}

	return rows.Err()
}

// scanRow maps row columns onto struct fields by `db` tag (falling back to
// the lowercased field name), recursing into embedded structs. Columns with
// no matching field are discarded rather than rejected.
func scanRow(rows pgx.Rows, dst interface{}) error {
	val := reflect.ValueOf(dst)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("scanRow: dst must be a pointer to a struct, got %T", dst)
	}

	fields := map[string]reflect.Value{}
	collectFields(val.Elem(), fields)

	targets := make([]interface{}, 0, len(rows.FieldDescriptions()))
	for _, fd := range rows.FieldDescriptions() {
		if field, ok := fields[string(fd.Name)]; ok {
			targets = append(targets, field.Addr().Interface())
		} else {
			var discard interface{}
			targets = append(targets, &discard)
		}
	}

	return rows.Scan(targets...)
}

func collectFields(val reflect.Value, out map[string]reflect.Value) {
	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			collectFields(val.Field(i), out)
			continue
		}
		if !sf.IsExported() {
			continue
		}

		name := sf.Tag.Get("db")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(sf.Name)
		}
		out[name] = val.Field(i)
	}
}
