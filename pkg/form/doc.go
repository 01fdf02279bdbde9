// Package form builds server rendered HTML forms from registered field
// definitions.
//
// Fields are registered in order on a Form and rendered as a complete
// <form> element: validation summary, opening tag, one block per field
// (label, required marker, error class, control) and closing tag. Controls
// that need client-side behaviour (file removal, rich-text editors, date
// pickers) contribute snippets to a script collector, available from
// Form.Scripts.
//
// Request scoped services are injected as narrow interfaces: previously
// submitted input, validation errors, the anti-forgery field, file URL
// resolution, HTML sanitizing and translation. A Form is meant to live for a
// single request and is not safe for concurrent use.
package form
