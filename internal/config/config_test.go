package config

import "testing"

func TestSchemaLikeClausesDefaultsExcludeSystemSchemas(t *testing.T) {
	clause, args := SchemaLikeClauses("n", nil, nil, false, 1)
	if clause == "" {
		t.Fatal("expected a non-empty clause")
	}
	want := 3 // pg_toast, pg_% exclusion, information_schema exclusion
	if len(args) != want {
		t.Fatalf("args = %d, want %d (%v)", len(args), want, args)
	}
}

func TestSchemaLikeClausesIncludeSystemSchemasSkipsDefaultExclusions(t *testing.T) {
	_, args := SchemaLikeClauses("n", nil, nil, true, 1)
	if len(args) != 1 { // only the always-excluded pg_toast
		t.Fatalf("args = %d, want 1 (%v)", len(args), args)
	}
}

func TestSchemaLikeClausesIncludePatternsAppendOrGroup(t *testing.T) {
	clause, args := SchemaLikeClauses("n", []string{"app_%", "tenant_%"}, []string{"legacy_%"}, false, 1)
	wantArgs := 3 + 1 + 2 // defaults + one exclude pattern + two include patterns
	if len(args) != wantArgs {
		t.Fatalf("args = %d, want %d (%v)", len(args), wantArgs, args)
	}
	if clause == "" {
		t.Fatal("expected a non-empty clause")
	}
}

func TestDefaultOptions(t *testing.T) {
	o := Default()
	if o.EnvPrefix != "DB" {
		t.Errorf("EnvPrefix = %q, want DB", o.EnvPrefix)
	}
	if o.RelationNameFunctions != "short" {
		t.Errorf("RelationNameFunctions = %q, want short", o.RelationNameFunctions)
	}
}

func TestToConfigProjectsNamingStrategy(t *testing.T) {
	o := Options{RelationNameFunctions: "optimal", Name: "mydb"}
	cfg := o.ToConfig()
	if cfg.NamingStrategy != "optimal" {
		t.Errorf("NamingStrategy = %q, want optimal", cfg.NamingStrategy)
	}
	if cfg.Name != "mydb" {
		t.Errorf("Name = %q, want mydb", cfg.Name)
	}
}

func TestIsOptionsLikeDetectsRecognizedKey(t *testing.T) {
	if !IsOptionsLike(map[string]any{"keepConnection": true}) {
		t.Error("expected a map carrying a recognized key to be options-like")
	}
	if IsOptionsLike(map[string]any{"host": "localhost"}) {
		t.Error("expected a map with no recognized keys to not be options-like")
	}
}
