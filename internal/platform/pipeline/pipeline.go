// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pipeline composes denormalised list queries and pages through them.

A [Spec] names a base table and the request-driven pieces of a read view.
[Compose] turns it into an ordered [Pipeline]:

 1. match   equality filters (e.g. one owner), applied first
 2. search  case-insensitive substring match on designated text columns
 3. join    many-to-one joins flattened into embedded columns, and
    one-to-many relations exposed as counts
 4. project the stable output column list
 5. sort    a caller-chosen key from an allow-list, plus a tie-breaker on id

Only values travel as bind parameters. Table, column and sort expressions come
from code, never from the request; an unknown sort key is a VALIDATION_ERROR.

[Paginate] executes a pipeline with a count-then-slice policy and returns a [Page].
*/
package pipeline

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
)

// # Stages

// StageKind names one step of a composed pipeline.
type StageKind string

const (
	StageMatch   StageKind = "match"
	StageSearch  StageKind = "search"
	StageJoin    StageKind = "join"
	StageProject StageKind = "project"
	StageSort    StageKind = "sort"
)

// Direction is a resolved sort direction.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// # Spec

// Column is one projected expression and its output name.
type Column struct {
	Expr string
	As   string
}

// Col projects expr under its own name.
func Col(expr string) Column { return Column{Expr: expr} }

// ColAs projects expr under alias.
func ColAs(expr, alias string) Column { return Column{Expr: expr, As: alias} }

func (c Column) render() string {
	if c.As == "" {
		return c.Expr
	}
	return c.Expr + " AS " + c.As
}

// Eq is an equality filter. Value is always bound as a parameter.
type Eq struct {
	Column string
	Value  any
}

// Search is a case-insensitive substring filter across Columns (OR-ed).
// A blank Term disables the stage.
type Search struct {
	Columns []string
	Term    string
}

// JoinKind selects how a related table is folded into the view.
type JoinKind int

const (
	// JoinOne resolves a many-to-one reference into embedded columns.
	// Rows without a match are dropped.
	JoinOne JoinKind = iota
	// JoinCount exposes a one-to-many relation as a row count.
	JoinCount
)

// Join folds a related table into the view.
type Join struct {
	Kind  JoinKind
	Table string
	Alias string
	// On is the join condition (JoinOne) or the correlation predicate (JoinCount).
	On string
	// Select lists the embedded columns of a JoinOne.
	Select []Column
	// As names the count column of a JoinCount.
	As string
}

// One builds a many-to-one [Join].
func One(table, alias, on string, columns ...Column) Join {
	return Join{Kind: JoinOne, Table: table, Alias: alias, On: on, Select: columns}
}

// Count builds a one-to-many count [Join].
func Count(table, alias, on, as string) Join {
	return Join{Kind: JoinCount, Table: table, Alias: alias, On: on, As: as}
}

// Spec describes a list view. Table, Alias, Project and Sortable are fixed per
// endpoint; Match, Search, SortBy and SortType come from the request.
type Spec struct {
	Table   string
	Alias   string
	Match   []Eq
	Search  Search
	Joins   []Join
	Project []Column

	// Sortable maps public sort keys (e.g. "createdAt") to SQL expressions.
	Sortable map[string]string
	// DefaultSort is the public key used when SortBy is blank.
	DefaultSort string
	SortBy      string
	// SortType is "asc" or "desc" (default "desc").
	SortType string
}

// # Pipeline

// Pipeline is a composed, ready-to-render list query.
//
// The SELECT list is Project, then each Join's columns in declaration order
// (Select for JoinOne, the count for JoinCount). Scanners rely on that order.
type Pipeline struct {
	stages  []StageKind
	from    string
	joins   []string
	where   []string
	args    []any
	columns []string
	orderBy string
}

// Compose validates spec and builds its pipeline.
func Compose(spec Spec) (*Pipeline, error) {
	if spec.Table == "" || spec.Alias == "" {
		return nil, fmt.Errorf("pipeline: table and alias are required")
	}

	pipeline := &Pipeline{from: spec.Table + " " + spec.Alias}

	// 1. Equality matches narrow the working set before anything else.
	for _, eq := range spec.Match {
		pipeline.args = append(pipeline.args, eq.Value)
		pipeline.where = append(pipeline.where, fmt.Sprintf("%s = $%d", eq.Column, len(pipeline.args)))
		pipeline.stages = append(pipeline.stages, StageMatch)
	}

	// 2. Substring search.
	if term := strings.TrimSpace(spec.Search.Term); term != "" && len(spec.Search.Columns) > 0 {
		pipeline.args = append(pipeline.args, "%"+EscapeLike(term)+"%")
		placeholder := len(pipeline.args)

		clauses := make([]string, 0, len(spec.Search.Columns))
		for _, column := range spec.Search.Columns {
			clauses = append(clauses, fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, column, placeholder))
		}
		pipeline.where = append(pipeline.where, "("+strings.Join(clauses, " OR ")+")")
		pipeline.stages = append(pipeline.stages, StageSearch)
	}

	// 3 + 4. Joins feed the projection.
	for _, column := range spec.Project {
		pipeline.columns = append(pipeline.columns, column.render())
	}
	for _, join := range spec.Joins {
		switch join.Kind {
		case JoinOne:
			pipeline.joins = append(pipeline.joins, fmt.Sprintf("INNER JOIN %s %s ON %s", join.Table, join.Alias, join.On))
			for _, column := range join.Select {
				pipeline.columns = append(pipeline.columns, column.render())
			}
		case JoinCount:
			pipeline.columns = append(pipeline.columns,
				fmt.Sprintf("(SELECT COUNT(*) FROM %s %s WHERE %s) AS %s", join.Table, join.Alias, join.On, join.As))
		default:
			return nil, fmt.Errorf("pipeline: unknown join kind %d", join.Kind)
		}
		pipeline.stages = append(pipeline.stages, StageJoin)
	}
	if len(pipeline.columns) == 0 {
		return nil, fmt.Errorf("pipeline: empty projection")
	}
	pipeline.stages = append(pipeline.stages, StageProject)

	// 5. Sort.
	expr, direction, err := resolveSort(spec)
	if err != nil {
		return nil, err
	}
	pipeline.orderBy = fmt.Sprintf("%s %s, %s.id %s", expr, direction, spec.Alias, direction)
	pipeline.stages = append(pipeline.stages, StageSort)

	return pipeline, nil
}

// Stages returns the stage kinds in execution order.
func (pipeline *Pipeline) Stages() []StageKind {
	return append([]StageKind(nil), pipeline.stages...)
}

// Args returns the bind values of the filter stages.
func (pipeline *Pipeline) Args() []any {
	return append([]any(nil), pipeline.args...)
}

// SelectSQL renders the page query. LIMIT and OFFSET are appended as the last two parameters.
func (pipeline *Pipeline) SelectSQL(limit, offset int) (string, []any) {
	var builder strings.Builder
	builder.WriteString("SELECT ")
	builder.WriteString(strings.Join(pipeline.columns, ", "))
	builder.WriteString(" FROM ")
	builder.WriteString(pipeline.from)
	pipeline.writeJoinsAndWhere(&builder)
	builder.WriteString(" ORDER BY ")
	builder.WriteString(pipeline.orderBy)

	args := pipeline.Args()
	args = append(args, limit, offset)
	fmt.Fprintf(&builder, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return builder.String(), args
}

// CountSQL renders the total-count query. Inner joins are kept because they can drop rows.
func (pipeline *Pipeline) CountSQL() (string, []any) {
	var builder strings.Builder
	builder.WriteString("SELECT COUNT(*) FROM ")
	builder.WriteString(pipeline.from)
	pipeline.writeJoinsAndWhere(&builder)
	return builder.String(), pipeline.Args()
}

func (pipeline *Pipeline) writeJoinsAndWhere(builder *strings.Builder) {
	for _, join := range pipeline.joins {
		builder.WriteString(" ")
		builder.WriteString(join)
	}
	if len(pipeline.where) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(pipeline.where, " AND "))
	}
}

// # Helpers

func resolveSort(spec Spec) (string, Direction, error) {
	key := strings.TrimSpace(spec.SortBy)
	if key == "" {
		key = spec.DefaultSort
	}

	expr, ok := spec.Sortable[key]
	if !ok {
		return "", "", apperr.ValidationError("Unsupported sortBy "+quote(key), apperr.FieldError{
			Field:   "sortBy",
			Message: "Must be one of: " + strings.Join(sortedKeys(spec.Sortable), ", "),
		})
	}

	switch strings.ToLower(strings.TrimSpace(spec.SortType)) {
	case "", "desc":
		return expr, Descending, nil
	case "asc":
		return expr, Ascending, nil
	default:
		return "", "", apperr.ValidationError("Unsupported sortType "+quote(spec.SortType), apperr.FieldError{
			Field:   "sortType",
			Message: "Must be one of: asc, desc",
		})
	}
}

// EscapeLike escapes the LIKE metacharacters (%, _ and the escape itself) so
// the term matches literally.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func quote(s string) string { return fmt.Sprintf("%q", s) }

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
