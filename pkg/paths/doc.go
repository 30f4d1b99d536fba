// Package paths is the path model of dotlink.
//
// It maps between the source tree and the places its files are deployed to:
//
//	<SourceRoot>/Configs/<group>/<rel>   ->  $HOME/<rel>
//	<SourceRoot>/Configs/Root/<rel>      ->  /<rel>
//
// Hooks and Secrets are recognized root categories as well, so any path under
// the source tree can be classified into the group that owns it.
//
// # Platform groups
//
// A group named without an underscore applies everywhere. A group named
// <name>_<os> or <name>_<family> (for example shell_linux, shell_unix,
// shell_windows) applies only on that platform; any other underscore suffix
// excludes the group.
//
// # Source root discovery
//
// LocateSourceRoot checks, in order:
//
//   - DOTFILES_ROOT
//   - $XDG_CONFIG_HOME/dotfiles
//   - ~/.dotfiles
//
// Every component receives a resolved Layout explicitly; nothing in this
// package keeps process-wide state.
package paths
