package readiness

import (
	"context"
	"fmt"

	rerrors "github.com/Aman-CERP/readycheck/internal/errors"
)

// checkModule runs the item's loader. Importing may execute arbitrary
// top-level code in the target; a panic from the loader is recorded as an
// import failure like any other error.
func (c *Checker) checkModule(ctx context.Context, item RequirementItem) (err error) {
	name := item.Loader
	if name == "" {
		name = DefaultLoader
	}
	l, ok := c.loaders[name]
	if !ok {
		return rerrors.ImportFailure(item.Target, fmt.Errorf("no %s loader available", name))
	}

	defer func() {
		if r := recover(); r != nil {
			err = rerrors.ImportFailure(item.Target, fmt.Errorf("panic: %v", r))
		}
	}()

	if loadErr := l.Load(ctx, item.Target); loadErr != nil {
		return rerrors.ImportFailure(item.Target, loadErr)
	}
	return nil
}
