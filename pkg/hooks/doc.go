// Package hooks runs the pre and post scripts stored under
// <source>/Hooks/<group>/ around a group deployment.
//
// A hook is any regular file in the group's hook directory whose name starts
// with the phase prefix ("pre" or "post"). Hooks of a phase run in lexical
// order through the configured shell. A failing hook is recorded and the
// remaining hooks still run.
package hooks
