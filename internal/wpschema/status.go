package wpschema

import "strings"

// postStatuses lists the PostStatus enum in declaration order. Stored statuses
// use '-' where enum names use '_'.
var postStatuses = []struct {
	name        string
	description string
}{
	{"publish", "A published post or page"},
	{"future", "A post scheduled to be published in the future"},
	{"draft", "A post in draft status"},
	{"pending", "A post pending review"},
	{"private", "A post only visible to logged in users with the right capability"},
	{"trash", "A post in the trash"},
	{"auto_draft", "A newly created post with no content"},
	{"inherit", "A revision or attachment taking its status from the parent"},
}

// statusName maps a stored post_status onto its PostStatus enum name.
func statusName(status string) (string, bool) {
	name := strings.ReplaceAll(status, "-", "_")
	for _, s := range postStatuses {
		if s.name == name {
			return name, true
		}
	}
	return "", false
}
