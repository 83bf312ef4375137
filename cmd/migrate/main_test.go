package main

import (
	"crypto/sha256"
	"strconv"
	"testing"
)

func TestMigrationFilenamePattern(t *testing.T) {
	tests := []struct {
		filename string
		valid    bool
		version  int
		name     string
	}{
		{"0001_create_etl_runs.sql", true, 1, "create_etl_runs"},
		{"0002_create_sales.sql", true, 2, "create_sales"},
		{"001_invalid.sql", false, 0, ""},       // wrong number format
		{"0001_test", false, 0, ""},             // missing .sql
		{"0001.sql", false, 0, ""},              // missing name
		{"invalid_0001_test.sql", false, 0, ""}, // wrong order
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			matches := migrationFilePattern.FindStringSubmatch(tt.filename)
			if tt.valid {
				if matches == nil {
					t.Fatalf("expected %s to match", tt.filename)
				}
				version, err := strconv.Atoi(matches[1])
				if err != nil || version != tt.version {
					t.Errorf("version = %s, want %d", matches[1], tt.version)
				}
				if matches[2] != tt.name {
					t.Errorf("name = %s, want %s", matches[2], tt.name)
				}
			} else if matches != nil {
				t.Errorf("expected %s not to match, got %v", tt.filename, matches)
			}
		})
	}
}

func TestMigrationChecksumConsistency(t *testing.T) {
	content1 := []byte("CREATE TABLE test (id INT64);")
	content2 := []byte("CREATE TABLE test (id INT64);")
	content3 := []byte("CREATE TABLE different (id INT64);")

	if sha256.Sum256(content1) != sha256.Sum256(content2) {
		t.Error("Same content should produce the same checksum")
	}

	if sha256.Sum256(content1) == sha256.Sum256(content3) {
		t.Error("Different content should produce different checksums")
	}
}
