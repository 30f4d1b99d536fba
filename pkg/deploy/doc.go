// Package deploy sequences a group deployment: run the group's pre hooks,
// link its Configs, then run its post hooks.
//
// Each group walks the linear State machine Initialize, PreHook, Symlink,
// PostHook. Hook failures are recorded on the group report and never stop
// linking or later hooks.
package deploy
