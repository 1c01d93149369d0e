package domain

import (
	"errors"
	"fmt"
)

// ProblemKind classifies a validation problem
type ProblemKind string

const (
	ProblemDuplicateName    ProblemKind = "duplicate-name"
	ProblemPortCollision    ProblemKind = "port-collision"
	ProblemInvalidPort      ProblemKind = "invalid-port"
	ProblemInvalidGlob      ProblemKind = "invalid-glob"
	ProblemEnvironment      ProblemKind = "environment"
	ProblemMisplacedSetting ProblemKind = "misplaced-setting"
	ProblemOverlap          ProblemKind = "overlap"
	ProblemOrphan           ProblemKind = "orphan"
	ProblemPortInUse        ProblemKind = "port-in-use"
	ProblemCatalogDown      ProblemKind = "catalog-unreachable"
)

// Problem is one issue found while validating a workspace
type Problem struct {
	Kind    ProblemKind `json:"kind"`
	Profile string      `json:"profile,omitempty"`
	Subject string      `json:"subject,omitempty"` // file, glob or port the problem refers to
	Message string      `json:"message"`
}

func (p Problem) Error() string {
	if p.Profile != "" {
		return fmt.Sprintf("%s [%s]: %s", p.Kind, p.Profile, p.Message)
	}
	return fmt.Sprintf("%s: %s", p.Kind, p.Message)
}

// Report collects validation problems
type Report struct {
	Profiles int       `json:"profiles"`
	Files    int       `json:"files"`
	Problems []Problem `json:"problems"`
}

// Add records a problem
func (r *Report) Add(kind ProblemKind, profile, subject, format string, args ...any) {
	r.Problems = append(r.Problems, Problem{
		Kind:    kind,
		Profile: profile,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	})
}

// OK reports whether no problems were found
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

// Count returns the number of problems of the given kind
func (r *Report) Count(kind ProblemKind) int {
	n := 0
	for _, p := range r.Problems {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// Err joins all problems into one error, or returns nil
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, 0, len(r.Problems))
	for _, p := range r.Problems {
		errs = append(errs, p)
	}
	return errors.Join(errs...)
}
