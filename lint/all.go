package lint

import (
	"github.com/pkg/errors"
	"io/fs"
	"sync"
)

// Source names a facts file inside a file system
type Source struct {
	FS   fs.FS
	Name string
}

// CheckAll loads and checks every source concurrently. Units do not share typedefs.
//
// The returned units are in the order of sources, with a nil entry for each
// source that failed; the error is the first failure in that order
func CheckAll(sources []Source, settings Settings) ([]*Unit, error) {
	if _, err := settings.enabledRules(); err != nil {
		return nil, err
	}
	units := make([]*Unit, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			units[i], errs[i] = LoadUnit(src.FS, src.Name, settings)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return units, errors.WithMessagef(err, "source %d", i)
		}
	}
	return units, nil
}
