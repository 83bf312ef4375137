package pipeline

import (
	"os"
	"strings"
)

// Default object prefixes within the sales bucket. A file lands under
// raw/, its cleaned form goes to cleaned/, and the original is archived
// under processed/ once the run succeeds.
const (
	DefaultRawPrefix       = "raw/"
	DefaultCleanedPrefix   = "cleaned/"
	DefaultProcessedPrefix = "processed/"
)

// RawPrefix returns the raw prefix, overridable via RAW_PREFIX.
func RawPrefix() string {
	return prefixFromEnv("RAW_PREFIX", DefaultRawPrefix)
}

// CleanedPrefix returns the cleaned prefix, overridable via CLEANED_PREFIX.
func CleanedPrefix() string {
	return prefixFromEnv("CLEANED_PREFIX", DefaultCleanedPrefix)
}

// ProcessedPrefix returns the processed prefix, overridable via PROCESSED_PREFIX.
func ProcessedPrefix() string {
	return prefixFromEnv("PROCESSED_PREFIX", DefaultProcessedPrefix)
}

func prefixFromEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if !strings.HasSuffix(v, "/") {
		v += "/"
	}
	return v
}
