// Package ui provides the styled, non-interactive output shared by
// slability's commands.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Online endpoints, successful operations
//	ColorError     (red)    - Offline endpoints, failures
//	ColorWarning   (yellow) - Endpoints awaiting their first probe
//	ColorMuted     (gray)   - Secondary text, timing info
//
// Use DisableColors() to switch to monochrome output (for --no-color flag).
//
// # Tables
//
// RenderStatusTable renders a one-shot probe report using the Bubbles table
// component. RenderSimpleTable is the generic form.
package ui
