package readiness

import (
	"os"

	rerrors "github.com/Aman-CERP/readycheck/internal/errors"
)

// checkFile passes when any filesystem entry exists at path. Symlinks are
// not followed and permissions are not inspected; every stat error counts
// as missing.
func (c *Checker) checkFile(path string) error {
	if _, err := os.Lstat(c.resolve(path)); err != nil {
		return rerrors.MissingFile(path, err)
	}
	return nil
}
