package email

// PreviewData holds sample template data for local template previews,
// keyed by template name.
var PreviewData = map[string]map[string]string{
	"welcome": {
		"UserFirstName": "Priya",
	},
}
