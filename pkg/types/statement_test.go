package types

import (
	"encoding/json"
	"testing"
)

func TestStatementTypeString(t *testing.T) {
	tests := []struct {
		stmtType StatementType
		want     string
	}{
		{StatementSelect, "SELECT"},
		{StatementInsert, "INSERT"},
		{StatementUpdate, "UPDATE"},
		{StatementDelete, "DELETE"},
		{StatementCreateTable, "CREATE TABLE"},
		{StatementDropView, "DROP VIEW"},
		{StatementUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.stmtType.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatementTypeCategories(t *testing.T) {
	tests := []struct {
		stmtType StatementType
		isDML    bool
		isDDL    bool
	}{
		{StatementSelect, true, false},
		{StatementInsert, true, false},
		{StatementUpdate, true, false},
		{StatementDelete, true, false},
		{StatementCreateTable, false, true},
		{StatementDropIndex, false, true},
		{StatementUnknown, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.stmtType.String(), func(t *testing.T) {
			if got := tt.stmtType.IsDML(); got != tt.isDML {
				t.Errorf("IsDML() = %v, want %v", got, tt.isDML)
			}
			if got := tt.stmtType.IsDDL(); got != tt.isDDL {
				t.Errorf("IsDDL() = %v, want %v", got, tt.isDDL)
			}
		})
	}
}

func TestClassifyStatement(t *testing.T) {
	tests := []struct {
		words []string
		want  StatementType
	}{
		{nil, StatementUnknown},
		{[]string{"select"}, StatementSelect},
		{[]string{"WITH", "x"}, StatementSelect},
		{[]string{"insert", "into"}, StatementInsert},
		{[]string{"Update", "users"}, StatementUpdate},
		{[]string{"DELETE", "FROM"}, StatementDelete},
		{[]string{"create", "table"}, StatementCreateTable},
		{[]string{"create", "unique", "index"}, StatementCreateIndex},
		{[]string{"CREATE"}, StatementUnknown},
		{[]string{"alter", "table"}, StatementAlterTable},
		{[]string{"drop", "view"}, StatementDropView},
		{[]string{"users"}, StatementUnknown},
	}

	for _, tt := range tests {
		if got := ClassifyStatement(tt.words...); got != tt.want {
			t.Errorf("ClassifyStatement(%v) = %v, want %v", tt.words, got, tt.want)
		}
	}
}

func TestStatementTypeJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Statement StatementType `json:"statement"`
	}{StatementUpdate})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"statement":"UPDATE"}` {
		t.Errorf("json = %s", data)
	}
}
