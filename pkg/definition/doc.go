// Package definition loads declarative form definitions from JSON or YAML
// files, or from the request body schema of an OpenAPI operation, and builds
// form.Form values from them.
//
// A definition file looks like:
//
//	handle: signup
//	action: /signup
//	method: post
//	requireAll: true
//	fields:
//	  - name: email
//	    type: email
//	    label: Email
//	  - name: plan
//	    type: select
//	    options:
//	      - {value: free, label: Free}
//	      - {value: pro, label: Pro}
//	  - type: submit
//	    label: Sign up
package definition
