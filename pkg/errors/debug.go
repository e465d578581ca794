package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Report is a structured view of an error chain, built for log output. The
// Postgres section is filled only when a driver error sits in the chain.
type Report struct {
	Message string   `json:"message"`
	Code    Code     `json:"code,omitempty"`
	Chain   []string `json:"chain,omitempty"`

	Postgres *PostgresDetails `json:"postgres,omitempty"`
}

// PostgresDetails carries the driver-level fields of a Postgres error,
// normalized across the pgx and lib/pq drivers.
type PostgresDetails struct {
	Code       string `json:"code,omitempty"`
	Constraint string `json:"constraint,omitempty"`
	Table      string `json:"table,omitempty"`
	Column     string `json:"column,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Describe walks the error chain and collects everything worth logging.
func Describe(err error) Report {
	if err == nil {
		return Report{}
	}

	rep := Report{Message: err.Error()}
	if typed := As(err); typed != nil {
		rep.Code = typed.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		rep.Chain = append(rep.Chain, fmt.Sprintf("%T: %v", e, e))
	}
	rep.Postgres = postgresDetails(err)
	return rep
}

func postgresDetails(err error) *PostgresDetails {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return &PostgresDetails{
			Code:       pgxErr.Code,
			Constraint: pgxErr.ConstraintName,
			Table:      pgxErr.TableName,
			Column:     pgxErr.ColumnName,
			Detail:     pgxErr.Detail,
			Message:    pgxErr.Message,
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &PostgresDetails{
			Code:       string(pqErr.Code),
			Constraint: pqErr.Constraint,
			Table:      pqErr.Table,
			Column:     pqErr.Column,
			Detail:     pqErr.Detail,
			Message:    pqErr.Message,
		}
	}
	return nil
}
