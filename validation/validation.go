// Package validation implements the request validation pipeline. Checks are
// pure functions composed in declaration order; Run evaluates every check so
// lookup failures are never masked by an earlier rule.
package validation

import (
	"context"
	"errors"
	"net/http"

	"github.com/akinalp/masterblog/pkg"
)

// Check is a single validation rule. It returns nil on success, a
// validation-classified error on rule failure, or any other error when the
// check itself could not run (a repository lookup failed).
type Check func(ctx context.Context) error

// Run evaluates all checks. An infrastructure failure in any check takes
// precedence over rule failures; otherwise the first rule failure in
// declaration order is returned.
func Run(ctx context.Context, checks ...Check) error {
	var firstRule error
	for _, check := range checks {
		err := check(ctx)
		if err == nil {
			continue
		}
		var appErr *pkg.Error
		if errors.As(err, &appErr) && appErr.Status == http.StatusUnprocessableEntity {
			if firstRule == nil {
				firstRule = err
			}
			continue
		}
		return err
	}
	return firstRule
}
