package repository

import (
	"testing"
)

func TestBuildLikeConditionSQLite(t *testing.T) {
	condition, argCount := buildLikeCondition(nil, "slot_key", " ", "name")
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	want := "slot_key LIKE ? OR name LIKE ?"
	if condition != want {
		t.Fatalf("condition mismatch, want %s got %s", want, condition)
	}
}

func TestBuildLikeConditionPostgres(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("postgres", "name")
	if argCount != 1 {
		t.Fatalf("arg count want 1 got %d", argCount)
	}
	if condition != "name ILIKE ?" {
		t.Fatalf("postgres condition mismatch, got %s", condition)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}
