package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestAllocationFailure_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("translate: %w", AllocationFailure(128, 64))
	if !stderrors.Is(err, ErrAllocation) {
		t.Fatalf("expected ErrAllocation to match, got %v", err)
	}
	if stderrors.Is(err, ErrIO) {
		t.Fatal("allocation failure must not match ErrIO")
	}
	var se *StandardError
	if !stderrors.As(err, &se) {
		t.Fatal("expected StandardError in chain")
	}
	if se.Category != CategoryMemory || se.Code != "OUTPUT_ALLOCATION_FAILED" {
		t.Fatalf("unexpected category/code: %s/%s", se.Category, se.Code)
	}
	if se.Context["required"] != 128 {
		t.Fatalf("context lost: %v", se.Context)
	}
}

func TestIOFailure_UnwrapsCause(t *testing.T) {
	err := IOFailure("open", "missing.k", fs.ErrNotExist)
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Fatal("cause should be reachable through Unwrap")
	}
	if !stderrors.Is(err, ErrIO) {
		t.Fatal("expected ErrIO to match")
	}
	if !strings.Contains(err.Error(), "missing.k") {
		t.Fatalf("message should name the path: %q", err.Error())
	}
}

func TestNewStandardError_RecordsCaller(t *testing.T) {
	err := Usage("no input file")
	if !strings.Contains(err.Caller, "Usage") {
		t.Fatalf("caller=%q", err.Caller)
	}
	if got, want := err.Error(), "[USAGE:BAD_ARGUMENTS] no input file"; got != want {
		t.Fatalf("got=%q want=%q", got, want)
	}
}
