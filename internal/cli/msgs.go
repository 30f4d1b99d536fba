package cli

// Short messages (one-liners)
const (
	MsgRootShort      = "Link a dotfiles source tree into your home directory"
	MsgStatusShort    = "Show which groups are linked"
	MsgLinkShort      = "Link groups into place"
	MsgUnlinkShort    = "Remove the links of groups"
	MsgDeployShort    = "Run hooks and link groups"
	MsgGenConfigShort = "Print the default configuration"
	MsgVersionShort   = "Print version information"

	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDotfilesRoot = "Path to the dotfiles source tree (default: $DOTFILES_ROOT, $XDG_CONFIG_HOME/dotfiles, ~/.dotfiles)"
	MsgFlagFormat       = "Output format: text, json or yaml"
	MsgFlagColor        = "Color output: auto, always or never"
	MsgFlagForce        = "Replace conflicting files after confirmation"
	MsgFlagAdopt        = "Move conflicting files into the source tree before linking"
	MsgFlagExclude      = "Leave groups out when expanding *"
	MsgFlagYes          = "Answer yes to confirmation prompts"
	MsgFlagWrite        = "Write the configuration to .dotlink.toml in the source tree"

	MsgConfigWritten = "Wrote %s\n"
	MsgConfigExists  = "%s already exists"
)

// Long messages
const (
	MsgRootLong = `dotlink keeps a dotfiles source tree and your system in sync with symlinks.

The source tree has three root directories: Configs, Hooks and Secrets. Each
directory inside Configs is a group; its files are linked into $HOME, or into
/ for the Root group. A group named name_linux, name_darwin, name_unix or
name_windows only applies on that platform.`

	MsgLinkLong = `Link creates a symlink for every file of the given groups. Use * to link
every group that is not linked yet.

Files already present at a target are left alone unless --adopt moves them
into the source tree or --force replaces them.`

	MsgUnlinkLong = `Unlink removes the symlinks of the given groups. Only links that point into
the group's source directory are removed; anything else is left untouched.
Use * to unlink every group with at least one link.`

	MsgDeployLong = `Deploy runs, for each group, the pre hooks from Hooks/<group>, links
Configs/<group>, then runs the post hooks. Use * to deploy every group that
has hooks. A failing hook is reported and does not stop the deployment.`
)

// Examples
const (
	MsgLinkExample = `  dotlink link zsh git         # Link two groups
  dotlink link '*' --exclude work
  dotlink link zsh --adopt      # Keep existing files by moving them into the tree`
	MsgGenConfigExample = `  dotlink genconfig             # Print to stdout
  dotlink genconfig --write     # Write <source>/.dotlink.toml`
)
