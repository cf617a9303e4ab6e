package job

import "errors"

// ErrNotFound covers both "does not exist" and "exists but owned by another
// user", so that foreign jobs are indistinguishable from absent ones.
var ErrNotFound = errors.New("job not found")
