// Package pagemark converts web resources to Markdown. Given a URL it
// fetches the resource and returns a clean, readable Markdown rendition,
// whether the source is a JavaScript-rendered web page or a PDF document.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, readability/, pdf/).
package pagemark
