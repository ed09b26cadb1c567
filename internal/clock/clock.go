package clock

import (
	"context"
	"time"
)

// Clock abstracts wall time so crediting timestamps, confirmation stamps and
// payroll periods can be pinned in tests.
type Clock interface {
	Now(ctx context.Context) time.Time
}
