// Package types holds small value types shared across packages: the kind
// of statement surrounding the cursor and cursor positions.
package types

import "strings"

// StatementType represents the kind of SQL statement the cursor sits in.
type StatementType int

const (
	StatementUnknown StatementType = iota
	StatementSelect
	StatementInsert
	StatementUpdate
	StatementDelete
	StatementCreateTable
	StatementAlterTable
	StatementDropTable
	StatementCreateIndex
	StatementDropIndex
	StatementCreateView
	StatementDropView
)

// String returns the string representation of the statement type
func (s StatementType) String() string {
	switch s {
	case StatementSelect:
		return "SELECT"
	case StatementInsert:
		return "INSERT"
	case StatementUpdate:
		return "UPDATE"
	case StatementDelete:
		return "DELETE"
	case StatementCreateTable:
		return "CREATE TABLE"
	case StatementAlterTable:
		return "ALTER TABLE"
	case StatementDropTable:
		return "DROP TABLE"
	case StatementCreateIndex:
		return "CREATE INDEX"
	case StatementDropIndex:
		return "DROP INDEX"
	case StatementCreateView:
		return "CREATE VIEW"
	case StatementDropView:
		return "DROP VIEW"
	default:
		return "UNKNOWN"
	}
}

// MarshalText lets the type render by name in JSON output.
func (s StatementType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsDML returns true if the statement is a Data Manipulation Language statement
func (s StatementType) IsDML() bool {
	switch s {
	case StatementSelect, StatementInsert, StatementUpdate, StatementDelete:
		return true
	default:
		return false
	}
}

// IsDDL returns true if the statement is a Data Definition Language statement
func (s StatementType) IsDDL() bool {
	switch s {
	case StatementCreateTable, StatementAlterTable, StatementDropTable,
		StatementCreateIndex, StatementDropIndex,
		StatementCreateView, StatementDropView:
		return true
	default:
		return false
	}
}

// ClassifyStatement maps the leading words of a statement to its type.
// Only the first two words are consulted; a WITH prefix is treated as a
// query.
func ClassifyStatement(words ...string) StatementType {
	if len(words) == 0 {
		return StatementUnknown
	}

	first := strings.ToUpper(words[0])
	second := ""
	if len(words) > 1 {
		second = strings.ToUpper(words[1])
	}

	switch first {
	case "SELECT", "WITH":
		return StatementSelect
	case "INSERT", "REPLACE":
		return StatementInsert
	case "UPDATE":
		return StatementUpdate
	case "DELETE":
		return StatementDelete
	case "CREATE":
		switch second {
		case "TABLE":
			return StatementCreateTable
		case "INDEX", "UNIQUE":
			return StatementCreateIndex
		case "VIEW":
			return StatementCreateView
		}
	case "ALTER":
		if second == "TABLE" {
			return StatementAlterTable
		}
	case "DROP":
		switch second {
		case "TABLE":
			return StatementDropTable
		case "INDEX":
			return StatementDropIndex
		case "VIEW":
			return StatementDropView
		}
	}
	return StatementUnknown
}
