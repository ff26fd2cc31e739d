package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnostic_Message(t *testing.T) {
	tests := []struct {
		diag Diagnostic
		want string
	}{
		{Diagnostic{Kind: KindUnparsableFile}, "unable to parse file"},
		{Diagnostic{Kind: KindFixtureMissingReturnType, FixtureName: "db"}, "fixture db: missing return type"},
		{Diagnostic{Kind: KindMissingArgumentType, FunctionName: "test_x", ArgumentName: "db"}, "db: missing type"},
		{Diagnostic{Kind: KindIncorrectArgumentType, FunctionName: "test_x", ArgumentName: "db",
			ExpectedType: "int", ProvidedType: "str"}, "db: expected int, provided: str"},
		{Diagnostic{Kind: KindFixtureDoesNotExist, FunctionName: "test_x", ArgumentName: "db"}, "db: fixture does not exist"},
	}
	for _, tc := range tests {
		t.Run(string(tc.diag.Kind), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.diag.Message())
		})
	}
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Kind: KindMissingArgumentType, File: "t.py", FunctionName: "test_x", ArgumentName: "db", Line: 4}
	assert.Equal(t, "t.py:4: test_x: db: missing type", d.String())

	f := Diagnostic{Kind: KindFixtureMissingReturnType, File: "t.py", FixtureName: "db", Line: 2}
	assert.Equal(t, "t.py:2: fixture db: missing return type", f.String())
	assert.Equal(t, "db", f.Subject())
}

func TestSortAndCount(t *testing.T) {
	diags := []Diagnostic{
		{Kind: KindMissingArgumentType, File: "b.py", Line: 1},
		{Kind: KindIncorrectArgumentType, File: "a.py", Line: 9},
		{Kind: KindFixtureMissingReturnType, File: "a.py", Line: 2},
	}
	Sort(diags)
	assert.Equal(t, "a.py", diags[0].File)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, "b.py", diags[2].File)

	counts := CountByKind(diags)
	assert.Len(t, counts, len(Kinds))
	assert.Equal(t, 1, counts[KindIncorrectArgumentType])
	assert.Equal(t, 0, counts[KindUnparsableFile])
}
