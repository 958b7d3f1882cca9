// Package lineage is the Composition Root for the lineage demo.
//
// It connects the core domain (people, countries, actions) with the fixture
// adapters, the event bus and the periodic dispatcher using the Hexagonal
// Architecture pattern.
//
// Features:
//
//   - **Family tree**: people sorted by birthday at every level and rendered as nested lists.
//   - **Event bus**: explicit, injected publish/subscribe with synchronous ordered delivery.
//   - **Periodic dispatcher**: synthetic debug actions on a fixed schedule.
//   - **Index finder**: generic, lazy search over any slice.
//   - **Fixtures**: YAML/JSON files from a directory (watchable) or the embedded defaults.
//
// Usage:
//
//	d, err := lineage.NewDemo("./fixtures", lineage.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	if err := d.Init(ctx); err != nil {
//		return err
//	}
//	err = d.Wait(ctx)
package lineage
