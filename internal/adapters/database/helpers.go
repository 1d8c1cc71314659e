package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
	pqInvalidText         = "22P02"
)

// uniqueFields maps unique constraint names to the field reported to callers
var uniqueFields = map[string]string{
	"categories_query_key":           "query",
	"locations_name_key":             "name",
	"amenities_name_key":             "name",
	"places_slug_key":                "slug",
	"users_email_key":                "email",
	"users_username_key":             "username",
	"favorites_place_id_user_id_key": "placeId",
	"reviews_place_id_user_id_key":   "placeId",
	"roles_name_key":                 "name",
}

// foreignKeyFields maps foreign key constraint names to the referencing field
var foreignKeyFields = map[string]string{
	"places_location_id_fkey":         "locationId",
	"places_category_id_fkey":         "categoryId",
	"place_amenities_amenity_id_fkey": "amenityIds",
	"users_role_id_fkey":              "roleId",
	"reviews_place_id_fkey":           "placeId",
	"favorites_place_id_fkey":         "placeId",
	"reviews_user_id_fkey":            "userId",
	"favorites_user_id_fkey":          "userId",
}

// translateError turns driver errors into AppErrors. Unknown errors become
// INTERNAL with message as the caller-facing text.
func translateError(err error, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			field := uniqueFields[pqErr.Constraint]
			if field == "" {
				field = "value"
			}
			return apperrors.NewConflictError(fmt.Sprintf("%s already exists", field))
		case pqForeignKeyViolation:
			if strings.Contains(pqErr.Detail, "is still referenced") {
				return apperrors.NewConflictError("record is still referenced by other records")
			}
			if field, ok := foreignKeyFields[pqErr.Constraint]; ok {
				return apperrors.NewValidationError(fmt.Sprintf("%s references a record that does not exist", field))
			}
			return apperrors.NewValidationError("referenced record does not exist")
		case pqCheckViolation:
			return apperrors.NewValidationError(fmt.Sprintf("value violates %s", pqErr.Constraint))
		case pqInvalidText:
			return apperrors.NewValidationError("malformed identifier")
		}
	}

	return apperrors.NewInternalError(message, err)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// containsAny builds a case-insensitive substring match across columns
func containsAny(search string, columns ...string) exp.ExpressionList {
	pattern := "%" + escapeLike(search) + "%"
	ors := make([]exp.Expression, 0, len(columns))
	for _, col := range columns {
		ors = append(ors, goqu.I(col).ILike(pattern))
	}
	return goqu.Or(ors...)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func paginate(ds *goqu.SelectDataset, page entities.Page) *goqu.SelectDataset {
	return ds.Limit(uint(page.Limit)).Offset(uint(page.Offset()))
}

// execAffectingOne executes a write and reports NOT_FOUND when no row matched
func execAffectingOne(ctx context.Context, client *postgres.Client, query string, args []interface{}, notFound, failure string) error {
	result, err := client.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err, failure)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(notFound)
	}
	return nil
}
