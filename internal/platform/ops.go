package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/lineage/pkg/adapters/fs"
	"github.com/aretw0/lineage/pkg/core"
	"github.com/aretw0/lineage/pkg/fixtures"
)

// Init resolves and initializes the fixture source.
// The 'uri' argument is adapter-specific: a directory for "fs", ignored for "embedded".
// An empty uri with the "fs" adapter falls back to the embedded fixtures.
func Init(uri string, opts ...Option) (core.FixtureSource, error) {
	o := buildOptions(opts)

	// 1. Check for injected repository
	if o.source != nil {
		return o.source, nil
	}

	// 2. Initialize based on Adapter
	var src core.FixtureSource
	switch o.adapter {
	case "fs":
		src = initFS(uri, o)
	case "embedded":
		src = initFS("", o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	// 3. Run Initialization
	if err := src.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return src, nil
}

// initFS builds the filesystem adapter from the parsed options.
func initFS(path string, o *options) *fs.Repository {
	mustExist, _ := o.config["must_exist"].(bool)
	strict, _ := o.config["strict"].(bool)
	peoplePattern, _ := o.config["people_pattern"].(string)
	countriesPattern, _ := o.config["countries_pattern"].(string)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	fsys := o.fsys
	if path == "" && fsys == nil {
		fsys = fixtures.FS()
		if o.logger != nil {
			o.logger.Debug("using embedded fixtures")
		}
	}

	return fs.NewRepository(fs.Config{
		Path:             path,
		FS:               fsys,
		MustExist:        mustExist,
		Strict:           strict,
		PeoplePattern:    peoplePattern,
		CountriesPattern: countriesPattern,
		Logger:           o.logger,
		ErrorHandler:     errorHandler,
	})
}
