package policy

// schemaSource constrains CUE policy files. The definition is closed, so
// misspelled fields are reported instead of silently ignored.
const schemaSource = `
#Entry: string & !=""

#Policy: {
	allowPrivate:         *false | bool
	allowUnknownCritical: *false | bool
	allow:                *[] | [...#Entry]
	deny:                 *[] | [...#Entry]
}
`

// schemaPath is the definition policy files are unified with.
const schemaPath = "#Policy"
