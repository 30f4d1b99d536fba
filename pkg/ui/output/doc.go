// Package output renders command results for the terminal or for machines.
//
// Commands hand a *reconcile.Report, *linker.Result or *deploy.Report to a
// Renderer. The text format styles lines with lipgloss using the semantic
// styles in styles.yaml; json and yaml emit the same view models so scripts
// see a stable shape regardless of format.
package output
