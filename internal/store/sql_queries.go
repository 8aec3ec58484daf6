// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/capability-assessment/models"
)

const (
	usersTable       = "users"
	assessmentsTable = "assessments"
)

var userColumns = []string{"id", "username", "password_hash", "is_admin", "created_at"}

// assessmentColumns lists id, user_id, one column per capability, notes and
// created_at, optionally qualified with a table alias.
func assessmentColumns(alias string) []string {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}

	columns := make([]string, 0, len(models.Capabilities)+4)
	columns = append(columns, prefix+"id", prefix+"user_id")
	for _, c := range models.Capabilities {
		columns = append(columns, prefix+c.Key)
	}
	return append(columns, prefix+"notes", prefix+"created_at")
}

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns("username", "password_hash", "is_admin", "created_at").
		Values(user.Username, user.PasswordHash, user.IsAdmin, user.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
}

func buildUpdateUserAdminQuery(b sq.StatementBuilderType, username string, isAdmin bool) (string, []any, error) {
	return b.Update(usersTable).
		Set("is_admin", isAdmin).
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildInsertAssessmentQuery(b sq.StatementBuilderType, a models.Assessment) (string, []any, error) {
	columns := make([]string, 0, len(models.Capabilities)+3)
	values := make([]any, 0, len(models.Capabilities)+3)

	columns = append(columns, "user_id")
	values = append(values, a.UserID)
	for _, c := range models.Capabilities {
		columns = append(columns, c.Key)
		values = append(values, a.Scores[c.Key])
	}
	columns = append(columns, "notes", "created_at")
	values = append(values, nullString(a.Notes), a.CreatedAt)

	return b.Insert(assessmentsTable).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectRecentForUserQuery(b sq.StatementBuilderType, userID int64, limit uint64) (string, []any, error) {
	return b.Select(assessmentColumns("")...).
		From(assessmentsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSql()
}

func buildSelectRecentAllQuery(b sq.StatementBuilderType, limit uint64) (string, []any, error) {
	return b.Select(append(assessmentColumns("a"), "u.username")...).
		From(assessmentsTable+" a").
		Join(usersTable+" u ON u.id = a.user_id").
		OrderBy("a.created_at DESC", "a.id DESC").
		Limit(limit).
		ToSql()
}

func buildSelectGlobalAveragesQuery(b sq.StatementBuilderType) (string, []any, error) {
	columns := make([]string, 0, len(models.Capabilities)+1)
	columns = append(columns, "COUNT(*)")
	for _, c := range models.Capabilities {
		columns = append(columns, fmt.Sprintf("COALESCE(AVG(CAST(%[1]s AS REAL)), 0) AS %[1]s", c.Key))
	}

	return b.Select(columns...).
		From(assessmentsTable).
		ToSql()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.UserID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)
	user.CreatedAt = user.CreatedAt.UTC()
	return user, err
}

// scanAssessment scans the columns of [assessmentColumns] followed by extra.
func scanAssessment(row scanner, extra ...any) (models.Assessment, error) {
	var (
		a         models.Assessment
		notes     sql.NullString
		createdAt time.Time
	)
	scores := make([]int, len(models.Capabilities))

	dest := make([]any, 0, len(models.Capabilities)+4+len(extra))
	dest = append(dest, &a.ID, &a.UserID)
	for i := range scores {
		dest = append(dest, &scores[i])
	}
	dest = append(dest, &notes, &createdAt)
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return models.Assessment{}, err
	}

	a.Scores = make(models.Scores, len(models.Capabilities))
	for i, c := range models.Capabilities {
		a.Scores[c.Key] = scores[i]
	}
	a.Notes = notes.String
	a.CreatedAt = createdAt.UTC()

	return a, nil
}
