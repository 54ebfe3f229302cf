// Package dispatcher routes editor lifecycle actions through plugins.
//
// Plugins are kept in registration order and every dispatch visits them in
// that order. A dispatch runs in three stages:
//
//  1. While the editor is read-only, only passive actions (highlight,
//     scroll, resize, refresh) proceed. Anything else aborts before any
//     handler runs.
//  2. The system handler runs. If it aborts, the dispatch aborts and no
//     plugin sees the action.
//  3. Every plugin's OnAction runs exactly once. Abort results are OR-ed;
//     a plugin that aborts does not stop later plugins from running.
//
// # Plugins
//
// A plugin implements Plugin and may also implement ConfigUpdater,
// Destroyer or Initializer:
//
//	type Plugin interface {
//	    Name() string
//	    OnAction(a Action) bool
//	}
//
// Plugins are added either prebuilt or through a Factory that receives the
// host editor and the plugin's configuration.
package dispatcher
